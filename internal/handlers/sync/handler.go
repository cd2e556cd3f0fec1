package sync

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/lovedesignwork/skyrock-sub001/infras/otel"
	"github.com/lovedesignwork/skyrock-sub001/internal/domains/sync/model/dto"
	"github.com/lovedesignwork/skyrock-sub001/internal/domains/sync/service"
	"github.com/lovedesignwork/skyrock-sub001/shared/constant"
	"github.com/lovedesignwork/skyrock-sub001/shared/failure"
	"github.com/lovedesignwork/skyrock-sub001/shared/validator"
	"github.com/lovedesignwork/skyrock-sub001/transport/http/middleware"
	"github.com/lovedesignwork/skyrock-sub001/transport/http/response"
)

type Handler struct {
	service service.Sync
	auth    *middleware.Auth
	otel    otel.Otel
}

func New(service service.Sync, auth *middleware.Auth, otel otel.Otel) Handler {
	return Handler{
		service: service,
		auth:    auth,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Post("/webhooks/dashboard", handler.DashboardWebhook)

	router.Group(func(operator chi.Router) {
		operator.Use(handler.auth.APIKey)
		operator.Post("/sync/bookings/{id}", handler.ResyncBooking)
		operator.Post("/sync/bookings", handler.BulkSync)
	})
}

// DashboardWebhook applies a signed update from the central dashboard.
// @Summary Process a dashboard webhook
// @Description Verify the dashboard signature and apply the allow-listed field updates to the local booking.
// @Tags Sync
// @Accept json
// @Produce json
// @Success 200 {object} response.Message "Event processed"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/webhooks/dashboard [post]
func (handler *Handler) DashboardWebhook(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DashboardWebhook")
	defer scope.End()

	rawBody, err := io.ReadAll(io.LimitReader(request.Body, constant.RequestMaxBodyBytes))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to read webhook body")

		response.WithError(writer, failure.BadRequestFromString("failed to read request body"))

		return
	}

	err = handler.service.HandleDashboardWebhook(
		ctx,
		rawBody,
		request.Header.Get(constant.RequestHeaderDashboardSignature),
		request.Header.Get(constant.RequestHeaderDashboardTimestamp),
	)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to process dashboard webhook")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Event processed")
}

// ResyncBooking pushes a single booking to the dashboard again.
// @Summary Resync a booking
// @Description Rebuild the sync payload for the booking and push it to the dashboard. A duplicate on the remote side counts as synced.
// @Tags Sync
// @Produce json
// @Param id path string true "Booking id"
// @Success 200 {object} response.Data[dto.SyncResultResponse] "Sync outcome"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/sync/bookings/{id} [post]
// @Security ApiKeyAuth
func (handler *Handler) ResyncBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ResyncBooking")
	defer scope.End()

	bookingID := chi.URLParam(request, constant.RequestParamID)

	res, err := handler.service.Dispatch(ctx, bookingID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to resync booking")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// BulkSync resyncs a batch of bookings.
// @Summary Bulk resync bookings
// @Description Push a capped batch of bookings to the dashboard with bounded concurrency, reporting each outcome independently.
// @Tags Sync
// @Accept json
// @Produce json
// @Param request body dto.BulkSyncRequest true "Bulk Sync Request"
// @Success 200 {object} response.Data[dto.BulkSyncResponse] "Per-booking outcomes"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/sync/bookings [post]
// @Security ApiKeyAuth
func (handler *Handler) BulkSync(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".BulkSync")
	defer scope.End()

	req := dto.BulkSyncRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.DispatchBulk(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to bulk sync bookings")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}
