package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/lovedesignwork/skyrock-sub001/infras/otel"
	catalogDto "github.com/lovedesignwork/skyrock-sub001/internal/domains/catalog/model/dto"
	"github.com/lovedesignwork/skyrock-sub001/internal/domains/catalog/service"
	"github.com/lovedesignwork/skyrock-sub001/shared/constant"
	"github.com/lovedesignwork/skyrock-sub001/transport/http/response"
)

type Handler struct {
	service service.Catalog
	otel    otel.Otel
}

func New(service service.Catalog, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/packages", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetPackages)
		routerGroup.Get("/{id}", handler.GetPackageByID)
	})
	router.Get("/addons", handler.GetAddons)
}

// GetPackages lists the active packages.
// @Summary Get all packages
// @Description Retrieve the active packages available for booking.
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Data[dto.GetPackagesResponse] "List of packages"
// @Failure 500 {object} response.Error
// @Router /v1/packages [get]
func (handler *Handler) GetPackages(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPackages")
	defer scope.End()

	res, err := handler.service.ListPackages(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get packages")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetPackageByID returns a single package.
// @Summary Get a package
// @Description Retrieve a single package by id.
// @Tags Catalog
// @Produce json
// @Param id path string true "Package id"
// @Success 200 {object} response.Data[dto.PackageResponse] "Package detail"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/packages/{id} [get]
func (handler *Handler) GetPackageByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPackageByID")
	defer scope.End()

	pkg, err := handler.service.GetPackage(ctx, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get package")

		response.WithError(writer, err)

		return
	}

	res := catalogDto.PackageResponse{}
	res.FromModel(pkg)

	response.WithJSON(writer, http.StatusOK, res)
}

// GetAddons lists the active add-ons.
// @Summary Get all addons
// @Description Retrieve the active add-ons available for booking.
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Data[dto.GetAddonsResponse] "List of addons"
// @Failure 500 {object} response.Error
// @Router /v1/addons [get]
func (handler *Handler) GetAddons(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAddons")
	defer scope.End()

	res, err := handler.service.ListAddons(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get addons")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}
