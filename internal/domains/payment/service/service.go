package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	stripeGo "github.com/stripe/stripe-go/v78"

	"github.com/lovedesignwork/skyrock-sub001/config"
	"github.com/lovedesignwork/skyrock-sub001/infras/otel"
	"github.com/lovedesignwork/skyrock-sub001/infras/stripe"
	bookingModel "github.com/lovedesignwork/skyrock-sub001/internal/domains/booking/model"
	bookingService "github.com/lovedesignwork/skyrock-sub001/internal/domains/booking/service"
	notificationService "github.com/lovedesignwork/skyrock-sub001/internal/domains/notification/service"
	"github.com/lovedesignwork/skyrock-sub001/internal/domains/payment/model"
	"github.com/lovedesignwork/skyrock-sub001/internal/domains/payment/model/dto"
	"github.com/lovedesignwork/skyrock-sub001/internal/domains/payment/repository"
	syncService "github.com/lovedesignwork/skyrock-sub001/internal/domains/sync/service"
	"github.com/lovedesignwork/skyrock-sub001/shared/constant"
	"github.com/lovedesignwork/skyrock-sub001/shared/failure"
	sharedModel "github.com/lovedesignwork/skyrock-sub001/shared/model"
	"github.com/lovedesignwork/skyrock-sub001/shared/timezone"
)

// Stripe works in minor currency units, local amounts are whole units.
const minorUnitFactor = 100

type Payment interface {
	CreateIntent(ctx context.Context, bookingID string) (dto.CreateIntentResponse, error)
	HandleWebhook(ctx context.Context, payload []byte, sigHeader string) error
	Refund(ctx context.Context, bookingID string, req dto.RefundRequest, actor string) (dto.RefundResponse, error)
	GetRefundHistory(ctx context.Context, bookingID string) ([]dto.RefundHistoryResponse, error)
}

type serviceImpl struct {
	booking    bookingService.Booking
	refundRepo repository.Refund
	gateway    stripe.Gateway
	notifier   notificationService.Notifier
	sync       syncService.Sync
	cfg        *config.Config
	otel       otel.Otel
}

func New(booking bookingService.Booking, refundRepo repository.Refund, gateway stripe.Gateway, notifier notificationService.Notifier, sync syncService.Sync, cfg *config.Config, otel otel.Otel) Payment {
	return &serviceImpl{
		booking:    booking,
		refundRepo: refundRepo,
		gateway:    gateway,
		notifier:   notifier,
		sync:       sync,
		cfg:        cfg,
		otel:       otel,
	}
}

// CreateIntent asks Stripe for a payment intent covering the booking total
// and stores the intent id on the booking. Creating a new intent for the
// same pending booking is allowed, so a failed attempt can simply be
// retried without a duplicate booking row.
func (s *serviceImpl) CreateIntent(ctx context.Context, bookingID string) (res dto.CreateIntentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".payment.CreateIntent")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.booking.GetByID(ctx, bookingID)
	if err != nil {
		return res, fmt.Errorf("failed to load booking: %w", err)
	}

	if booking.Status != bookingModel.StatusPending {
		return res, failure.InvalidState("booking is not awaiting payment") // nolint:wrapcheck
	}

	intent, err := s.gateway.CreateIntent(ctx, stripe.CreateIntentRequest{
		AmountMinor:      booking.TotalAmount * minorUnitFactor,
		Currency:         booking.Currency,
		BookingID:        booking.ID,
		BookingReference: booking.Reference,
	})
	if err != nil {
		log.Error().Err(err).Str("reference", booking.Reference).Msg("failed to create payment intent")

		return res, fmt.Errorf("failed to create payment intent: %w", err)
	}

	if err = s.booking.SetPaymentReferences(ctx, booking.ID, intent.ID, constant.Empty); err != nil {
		return res, fmt.Errorf("failed to store payment intent id: %w", err)
	}

	return dto.CreateIntentResponse{
		BookingID:       booking.ID,
		Reference:       booking.Reference,
		PaymentIntentID: intent.ID,
		ClientSecret:    intent.ClientSecret,
		Amount:          booking.TotalAmount,
		Currency:        booking.Currency,
	}, nil
}

// HandleWebhook verifies and processes a Stripe event. Status transitions
// are committed before any downstream side effect, and unknown event types
// are accepted without error so new Stripe events never cause retry storms.
func (s *serviceImpl) HandleWebhook(ctx context.Context, payload []byte, sigHeader string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".payment.HandleWebhook")
	defer scope.End()
	defer scope.TraceIfError(err)

	event, err := s.gateway.ConstructEvent(payload, sigHeader)
	if err != nil {
		return fmt.Errorf("failed to verify webhook: %w", err)
	}

	switch event.Type {
	case stripeGo.EventTypeCheckoutSessionCompleted:
		var session stripeGo.CheckoutSession
		if err = json.Unmarshal(event.Data.Raw, &session); err != nil {
			return failure.BadRequest(fmt.Errorf("malformed checkout session payload: %w", err)) // nolint:wrapcheck
		}

		intentID := constant.Empty
		if session.PaymentIntent != nil {
			intentID = session.PaymentIntent.ID
		}

		return s.confirm(ctx, session.Metadata[stripe.MetadataKeyBookingID], intentID, session.ID)

	case stripeGo.EventTypePaymentIntentSucceeded:
		var intent stripeGo.PaymentIntent
		if err = json.Unmarshal(event.Data.Raw, &intent); err != nil {
			return failure.BadRequest(fmt.Errorf("malformed payment intent payload: %w", err)) // nolint:wrapcheck
		}

		return s.confirm(ctx, intent.Metadata[stripe.MetadataKeyBookingID], intent.ID, constant.Empty)

	case stripeGo.EventTypePaymentIntentPaymentFailed:
		var intent stripeGo.PaymentIntent
		if err = json.Unmarshal(event.Data.Raw, &intent); err != nil {
			return failure.BadRequest(fmt.Errorf("malformed payment intent payload: %w", err)) // nolint:wrapcheck
		}

		return s.cancel(ctx, intent.Metadata[stripe.MetadataKeyBookingID])

	case stripeGo.EventTypeChargeRefunded:
		var charge stripeGo.Charge
		if err = json.Unmarshal(event.Data.Raw, &charge); err != nil {
			return failure.BadRequest(fmt.Errorf("malformed charge payload: %w", err)) // nolint:wrapcheck
		}

		intentID := constant.Empty
		if charge.PaymentIntent != nil {
			intentID = charge.PaymentIntent.ID
		}

		// Stripe fires charge.refunded for partial refunds too. Refunded is
		// only true once the whole charge is returned.
		fullyRefunded := charge.Refunded || (charge.Amount > 0 && charge.AmountRefunded >= charge.Amount)

		return s.markRefunded(ctx, intentID, fullyRefunded)

	default:
		log.Info().Str("event_type", string(event.Type)).Msg("ignoring unhandled stripe event")

		return nil
	}
}

func (s *serviceImpl) confirm(ctx context.Context, bookingID, intentID, sessionID string) error {
	if bookingID == constant.Empty {
		return failure.BadRequestFromString("missing booking id in event metadata") // nolint:wrapcheck
	}

	booking, err := s.booking.GetByID(ctx, bookingID)
	if err != nil {
		return fmt.Errorf("failed to load booking for confirmation: %w", err)
	}

	transitioned, err := s.booking.Transition(ctx, booking.ID, bookingModel.StatusConfirmed, constant.ActorWebhook)
	if err != nil {
		return fmt.Errorf("failed to confirm booking: %w", err)
	}

	if !transitioned && booking.Status != bookingModel.StatusConfirmed {
		// Webhook for a booking that already moved past confirmed, a
		// redelivery arriving very late. Nothing to do.
		log.Warn().
			Str("reference", booking.Reference).
			Str("status", booking.Status).
			Msg("ignoring payment confirmation for non-pending booking")

		return nil
	}

	if err = s.booking.SetPaymentReferences(ctx, booking.ID, intentID, sessionID); err != nil {
		return fmt.Errorf("failed to store payment references: %w", err)
	}

	log.Info().Str("reference", booking.Reference).Bool("redelivery", !transitioned).Msg("booking confirmed")

	agg, err := s.booking.GetAggregate(ctx, booking.ID)
	if err != nil {
		log.Error().Err(err).Str("reference", booking.Reference).Msg("failed to load aggregate for downstream actions")

		return nil
	}

	// The confirmation is durable at this point. Emails and dashboard sync
	// run detached so the webhook response returns immediately, and each
	// failure is logged without blocking the others.
	detached := context.WithoutCancel(ctx)

	go s.runDownstreamActions(detached, agg)

	return nil
}

func (s *serviceImpl) runDownstreamActions(ctx context.Context, agg bookingModel.Aggregate) {
	if err := s.notifier.BookingConfirmed(ctx, agg); err != nil {
		log.Error().Err(err).Str("reference", agg.Booking.Reference).Msg("failed to send guest confirmation")
	}

	if err := s.notifier.AdminBookingNotification(ctx, agg); err != nil {
		log.Error().Err(err).Str("reference", agg.Booking.Reference).Msg("failed to send admin notification")
	}

	if _, err := s.sync.Dispatch(ctx, agg.Booking.ID); err != nil {
		log.Error().Err(err).Str("reference", agg.Booking.Reference).Msg("failed to dispatch dashboard sync")
	}
}

func (s *serviceImpl) cancel(ctx context.Context, bookingID string) error {
	if bookingID == constant.Empty {
		return failure.BadRequestFromString("missing booking id in event metadata") // nolint:wrapcheck
	}

	booking, err := s.booking.GetByID(ctx, bookingID)
	if err != nil {
		return fmt.Errorf("failed to load booking for cancellation: %w", err)
	}

	transitioned, err := s.booking.Transition(ctx, booking.ID, bookingModel.StatusCancelled, constant.ActorWebhook)
	if err != nil {
		return fmt.Errorf("failed to cancel booking: %w", err)
	}

	if transitioned {
		log.Info().Str("reference", booking.Reference).Msg("booking cancelled after failed payment")
	}

	return nil
}

func (s *serviceImpl) markRefunded(ctx context.Context, intentID string, fullyRefunded bool) error {
	if intentID == constant.Empty {
		return failure.BadRequestFromString("missing payment intent in event") // nolint:wrapcheck
	}

	booking, err := s.booking.GetByPaymentIntentID(ctx, intentID)
	if err != nil {
		return fmt.Errorf("failed to find booking for refunded charge: %w", err)
	}

	if booking.Status == bookingModel.StatusRefunded {
		return nil
	}

	newStatus := bookingModel.StatusPartiallyRefunded
	if fullyRefunded {
		newStatus = bookingModel.StatusRefunded
	}

	transitioned, err := s.booking.Transition(ctx, booking.ID, newStatus, constant.ActorWebhook)
	if err != nil {
		return fmt.Errorf("failed to mark booking refunded: %w", err)
	}

	if transitioned {
		log.Info().Str("reference", booking.Reference).Str("status", newStatus).Msg("booking refund recorded from processor event")
	}

	return nil
}

// Refund issues a processor-side refund and appends it to the local ledger.
// The two writes are not atomic across systems: a ledger failure after the
// processor succeeds is surfaced for manual reconciliation rather than
// retried, because retrying the processor call risks a double refund.
func (s *serviceImpl) Refund(ctx context.Context, bookingID string, req dto.RefundRequest, actor string) (res dto.RefundResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".payment.Refund")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.booking.GetByID(ctx, bookingID)
	if err != nil {
		return res, fmt.Errorf("failed to load booking: %w", err)
	}

	if !booking.PaymentIntentID.Valid {
		return res, failure.InvalidState("booking has no payment to refund") // nolint:wrapcheck
	}

	if booking.Status != bookingModel.StatusConfirmed && booking.Status != bookingModel.StatusPartiallyRefunded {
		return res, failure.InvalidState(fmt.Sprintf("cannot refund a %s booking", booking.Status)) // nolint:wrapcheck
	}

	alreadyRefunded, err := s.refundRepo.SumRefundedByBookingID(ctx, booking.ID)
	if err != nil {
		return res, fmt.Errorf("failed to compute refunded amount: %w", err)
	}

	remaining := booking.TotalAmount - alreadyRefunded
	if req.Amount > remaining {
		return res, failure.InvalidArgument(fmt.Sprintf("refund exceeds refundable amount, maximum refundable is %d", remaining)) // nolint:wrapcheck
	}

	processorRefund, err := s.gateway.CreateRefund(ctx, stripe.CreateRefundRequest{
		PaymentIntentID: booking.PaymentIntentID.String,
		AmountMinor:     req.Amount * minorUnitFactor,
		Reason:          req.Reason,
	})
	if err != nil {
		log.Error().Err(err).Str("reference", booking.Reference).Msg("failed to create processor refund")

		return res, fmt.Errorf("failed to create refund: %w", err)
	}

	now := timezone.Now()

	record := model.RefundHistory{
		ID:        uuid.NewString(),
		BookingID: booking.ID,
		RefundID:  processorRefund.ID,
		Amount:    req.Amount,
		Reason:    req.Reason,
		Actor:     actor,
		Metadata:  sharedModel.Metadata{CreatedAt: now, ModifiedAt: now, CreatedBy: actor, ModifiedBy: actor},
	}

	if err = s.refundRepo.Insert(ctx, record); err != nil {
		log.Error().Err(err).
			Str("reference", booking.Reference).
			Str("refund_id", processorRefund.ID).
			Int64("amount", req.Amount).
			Msg("processor refund succeeded but ledger write failed, manual reconciliation required")

		return res, fmt.Errorf("failed to record refund: %w", err)
	}

	newStatus := bookingModel.StatusPartiallyRefunded
	if alreadyRefunded+req.Amount == booking.TotalAmount {
		newStatus = bookingModel.StatusRefunded
	}

	if _, err = s.booking.Transition(ctx, booking.ID, newStatus, actor); err != nil {
		return res, fmt.Errorf("failed to update booking status after refund: %w", err)
	}

	log.Info().
		Str("reference", booking.Reference).
		Str("refund_id", processorRefund.ID).
		Int64("amount", req.Amount).
		Str("status", newStatus).
		Msg("refund recorded")

	return dto.RefundResponse{
		RefundID:            processorRefund.ID,
		BookingID:           booking.ID,
		Amount:              req.Amount,
		BookingStatus:       newStatus,
		RemainingRefundable: remaining - req.Amount,
	}, nil
}

func (s *serviceImpl) GetRefundHistory(ctx context.Context, bookingID string) (res []dto.RefundHistoryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".payment.GetRefundHistory")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.booking.GetByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}

	refunds, err := s.refundRepo.GetAllByBookingID(ctx, booking.ID)
	if err != nil {
		log.Error().Err(err).Str("reference", booking.Reference).Msg("failed to get refund history")

		return nil, fmt.Errorf("failed to get refund history: %w", err)
	}

	res = make([]dto.RefundHistoryResponse, len(refunds))
	for i, refund := range refunds {
		res[i].FromModel(refund)
	}

	return res, nil
}
