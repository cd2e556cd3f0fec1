package stripe

//go:generate go run go.uber.org/mock/mockgen -source=./stripe.go -destination=./mocks/stripe_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	stripeGo "github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/paymentintent"
	"github.com/stripe/stripe-go/v78/refund"
	"github.com/stripe/stripe-go/v78/webhook"

	"github.com/lovedesignwork/skyrock-sub001/config"
	"github.com/lovedesignwork/skyrock-sub001/infras/otel"
	"github.com/lovedesignwork/skyrock-sub001/shared/constant"
	"github.com/lovedesignwork/skyrock-sub001/shared/failure"
)

const (
	// Metadata keys set on every payment intent. They are the only reliable
	// correlation between an asynchronous webhook event and a local booking.
	MetadataKeyBookingID        = "booking_id"
	MetadataKeyBookingReference = "booking_reference"
)

type CreateIntentRequest struct {
	AmountMinor      int64
	Currency         string
	BookingID        string
	BookingReference string
}

type Intent struct {
	ID           string
	ClientSecret string
}

type CreateRefundRequest struct {
	PaymentIntentID string
	AmountMinor     int64
	Reason          string
}

type Refund struct {
	ID string
}

// Gateway wraps the Stripe API surface this service uses. Webhook signature
// verification runs over the raw request bytes, never a re-serialized body.
type Gateway interface {
	CreateIntent(ctx context.Context, req CreateIntentRequest) (Intent, error)
	CreateRefund(ctx context.Context, req CreateRefundRequest) (Refund, error)
	ConstructEvent(payload []byte, sigHeader string) (stripeGo.Event, error)
}

type gatewayImpl struct {
	webhookSecret string
	otel          otel.Otel
}

func New(cfg *config.Config, otl otel.Otel) Gateway {
	stripeGo.Key = cfg.External.Stripe.SecretKey

	return &gatewayImpl{
		webhookSecret: cfg.External.Stripe.WebhookSecret,
		otel:          otl,
	}
}

func (g *gatewayImpl) CreateIntent(ctx context.Context, req CreateIntentRequest) (res Intent, err error) {
	_, scope := g.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".stripe.CreateIntent")
	defer scope.End()
	defer scope.TraceIfError(err)

	params := &stripeGo.PaymentIntentParams{
		Amount:   stripeGo.Int64(req.AmountMinor),
		Currency: stripeGo.String(req.Currency),
		AutomaticPaymentMethods: &stripeGo.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripeGo.Bool(true),
		},
	}
	params.Context = ctx
	params.AddMetadata(MetadataKeyBookingID, req.BookingID)
	params.AddMetadata(MetadataKeyBookingReference, req.BookingReference)

	intent, err := paymentintent.New(params)
	if err != nil {
		log.Error().Err(err).Str("bookingReference", req.BookingReference).Msg("failed to create payment intent")

		return res, failure.UpstreamUnavailable(fmt.Sprintf("payment processor: %v", err)) //nolint:wrapcheck
	}

	return Intent{
		ID:           intent.ID,
		ClientSecret: intent.ClientSecret,
	}, nil
}

func (g *gatewayImpl) CreateRefund(ctx context.Context, req CreateRefundRequest) (res Refund, err error) {
	_, scope := g.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".stripe.CreateRefund")
	defer scope.End()
	defer scope.TraceIfError(err)

	params := &stripeGo.RefundParams{
		PaymentIntent: stripeGo.String(req.PaymentIntentID),
		Amount:        stripeGo.Int64(req.AmountMinor),
	}
	params.Context = ctx

	if req.Reason != "" {
		params.Reason = stripeGo.String(req.Reason)
	}

	ref, err := refund.New(params)
	if err != nil {
		log.Error().Err(err).Str("paymentIntentID", req.PaymentIntentID).Msg("failed to create refund")

		return res, failure.UpstreamUnavailable(fmt.Sprintf("payment processor: %v", err)) //nolint:wrapcheck
	}

	return Refund{ID: ref.ID}, nil
}

func (g *gatewayImpl) ConstructEvent(payload []byte, sigHeader string) (stripeGo.Event, error) {
	event, err := webhook.ConstructEvent(payload, sigHeader, g.webhookSecret)
	if err != nil {
		return stripeGo.Event{}, failure.Unauthorized("invalid webhook signature") //nolint:wrapcheck
	}

	return event, nil
}
