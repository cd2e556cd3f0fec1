package booking

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/lovedesignwork/skyrock-sub001/infras/otel"
	"github.com/lovedesignwork/skyrock-sub001/internal/domains/booking/model/dto"
	"github.com/lovedesignwork/skyrock-sub001/internal/domains/booking/service"
	"github.com/lovedesignwork/skyrock-sub001/shared/constant"
	"github.com/lovedesignwork/skyrock-sub001/shared/validator"
	"github.com/lovedesignwork/skyrock-sub001/transport/http/response"
)

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBooking)
		routerGroup.Get("/{reference}", handler.GetBookingByReference)
	})
}

// CreateBooking prices and persists a new booking in pending status.
// @Summary Create a new booking
// @Description Price a package with add-ons, transport and promo code, and persist the booking in pending status.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Create Booking Request"
// @Success 201 {object} response.Data[dto.BookingDetailResponse] "Booking created"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [post]
func (handler *Handler) CreateBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	req := dto.CreateBookingRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create booking")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking created with reference " + res.Reference)

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetBookingByReference looks up a booking by its reference.
// @Summary Get a booking by reference
// @Description Look up a booking by reference. Pending bookings require the checkout session id or payment intent id as proof of possession.
// @Tags Booking
// @Produce json
// @Param reference path string true "Booking reference"
// @Param session_id query string false "Checkout session id"
// @Param payment_intent_id query string false "Payment intent id"
// @Success 200 {object} response.Data[dto.BookingDetailResponse] "Booking detail"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{reference} [get]
func (handler *Handler) GetBookingByReference(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByReference")
	defer scope.End()

	reference := chi.URLParam(request, constant.RequestParamReference)

	proof := request.URL.Query().Get("session_id")
	if proof == constant.Empty {
		proof = request.URL.Query().Get("payment_intent_id")
	}

	res, err := handler.service.GetByReference(ctx, reference, proof)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking by reference")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}
