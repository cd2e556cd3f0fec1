package payment

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/lovedesignwork/skyrock-sub001/infras/otel"
	"github.com/lovedesignwork/skyrock-sub001/internal/domains/payment/model/dto"
	"github.com/lovedesignwork/skyrock-sub001/internal/domains/payment/service"
	"github.com/lovedesignwork/skyrock-sub001/shared/constant"
	"github.com/lovedesignwork/skyrock-sub001/shared/failure"
	"github.com/lovedesignwork/skyrock-sub001/shared/validator"
	"github.com/lovedesignwork/skyrock-sub001/transport/http/middleware"
	"github.com/lovedesignwork/skyrock-sub001/transport/http/response"
)

type Handler struct {
	service service.Payment
	auth    *middleware.Auth
	otel    otel.Otel
}

func New(service service.Payment, auth *middleware.Auth, otel otel.Otel) Handler {
	return Handler{
		service: service,
		auth:    auth,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Post("/bookings/{id}/payment-intent", handler.CreatePaymentIntent)
	router.Post("/webhooks/payment", handler.PaymentWebhook)

	router.Group(func(operator chi.Router) {
		operator.Use(handler.auth.APIKey)
		operator.Post("/bookings/{id}/refunds", handler.CreateRefund)
		operator.Get("/bookings/{id}/refunds", handler.GetRefundHistory)
	})
}

// CreatePaymentIntent issues a Stripe payment intent for a pending booking.
// @Summary Create a payment intent
// @Description Request a payment intent for the booking total and return the client secret.
// @Tags Payment
// @Produce json
// @Param id path string true "Booking id"
// @Success 201 {object} response.Data[dto.CreateIntentResponse] "Payment intent created"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 502 {object} response.Error
// @Router /v1/bookings/{id}/payment-intent [post]
func (handler *Handler) CreatePaymentIntent(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreatePaymentIntent")
	defer scope.End()

	bookingID := chi.URLParam(request, constant.RequestParamID)

	res, err := handler.service.CreateIntent(ctx, bookingID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create payment intent")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusCreated, res)
}

// PaymentWebhook processes asynchronous Stripe callbacks.
// @Summary Process a payment processor webhook
// @Description Verify the Stripe signature over the raw body and apply the event to the booking.
// @Tags Payment
// @Accept json
// @Produce json
// @Success 200 {object} response.Message "Event processed"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/webhooks/payment [post]
func (handler *Handler) PaymentWebhook(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".PaymentWebhook")
	defer scope.End()

	// The signature covers the raw bytes, so the body must not be decoded
	// before verification.
	payload, err := io.ReadAll(io.LimitReader(request.Body, constant.RequestMaxBodyBytes))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to read webhook body")

		response.WithError(writer, failure.BadRequestFromString("failed to read request body"))

		return
	}

	err = handler.service.HandleWebhook(ctx, payload, request.Header.Get(constant.RequestHeaderStripeSignature))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to process payment webhook")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Event processed")
}

// CreateRefund issues a refund against a booking.
// @Summary Refund a booking
// @Description Issue a processor-side refund and append it to the refund ledger.
// @Tags Payment
// @Accept json
// @Produce json
// @Param id path string true "Booking id"
// @Param request body dto.RefundRequest true "Refund Request"
// @Success 201 {object} response.Data[dto.RefundResponse] "Refund recorded"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 502 {object} response.Error
// @Router /v1/bookings/{id}/refunds [post]
// @Security ApiKeyAuth
func (handler *Handler) CreateRefund(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateRefund")
	defer scope.End()

	bookingID := chi.URLParam(request, constant.RequestParamID)

	req := dto.RefundRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	actor, _ := ctx.Value(constant.ContextKeyActor).(string)
	if actor == constant.Empty {
		actor = constant.ActorSystem
	}

	res, err := handler.service.Refund(ctx, bookingID, req, actor)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to refund booking")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetRefundHistory lists the refunds recorded against a booking.
// @Summary Get refund history
// @Description List refunds recorded against the booking, oldest first.
// @Tags Payment
// @Produce json
// @Param id path string true "Booking id"
// @Success 200 {object} response.Data[[]dto.RefundHistoryResponse] "Refund history"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/refunds [get]
// @Security ApiKeyAuth
func (handler *Handler) GetRefundHistory(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRefundHistory")
	defer scope.End()

	bookingID := chi.URLParam(request, constant.RequestParamID)

	res, err := handler.service.GetRefundHistory(ctx, bookingID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get refund history")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}
