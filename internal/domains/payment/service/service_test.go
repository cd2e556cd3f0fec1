package service_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	stripeGo "github.com/stripe/stripe-go/v78"
	"go.uber.org/mock/gomock"

	"github.com/lovedesignwork/skyrock-sub001/config"
	otelMocks "github.com/lovedesignwork/skyrock-sub001/infras/otel/mocks"
	"github.com/lovedesignwork/skyrock-sub001/infras/stripe"
	stripeMocks "github.com/lovedesignwork/skyrock-sub001/infras/stripe/mocks"
	bookingMocks "github.com/lovedesignwork/skyrock-sub001/internal/domains/booking/mocks"
	bookingModel "github.com/lovedesignwork/skyrock-sub001/internal/domains/booking/model"
	notificationMocks "github.com/lovedesignwork/skyrock-sub001/internal/domains/notification/mocks"
	paymentMocks "github.com/lovedesignwork/skyrock-sub001/internal/domains/payment/mocks"
	"github.com/lovedesignwork/skyrock-sub001/internal/domains/payment/model/dto"
	"github.com/lovedesignwork/skyrock-sub001/internal/domains/payment/service"
	syncMocks "github.com/lovedesignwork/skyrock-sub001/internal/domains/sync/mocks"
	syncDto "github.com/lovedesignwork/skyrock-sub001/internal/domains/sync/model/dto"
	"github.com/lovedesignwork/skyrock-sub001/shared/constant"
	"github.com/lovedesignwork/skyrock-sub001/shared/failure"
)

const (
	testBookingID = "b6f3d7a0-51c4-4f5e-9a2e-7c8d9e0f1a02"
	testIntentID  = "pi_3PQr5T2eZvKYlo2C1gR8aBcD"
)

type paymentFixture struct {
	booking    *bookingMocks.MockBookingService
	refundRepo *paymentMocks.MockRefund
	gateway    *stripeMocks.MockGateway
	notifier   *notificationMocks.MockNotifier
	sync       *syncMocks.MockSync
	svc        service.Payment
}

func newPaymentFixture(t *testing.T) *paymentFixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	f := &paymentFixture{
		booking:    bookingMocks.NewMockBookingService(ctrl),
		refundRepo: paymentMocks.NewMockRefund(ctrl),
		gateway:    stripeMocks.NewMockGateway(ctrl),
		notifier:   notificationMocks.NewMockNotifier(ctrl),
		sync:       syncMocks.NewMockSync(ctrl),
	}

	f.svc = service.New(f.booking, f.refundRepo, f.gateway, f.notifier, f.sync, &config.Config{}, otelMocks.NewOtel())

	return f
}

func pendingBooking() bookingModel.Booking {
	return bookingModel.Booking{
		ID:          testBookingID,
		Reference:   "SR-100001",
		Status:      bookingModel.StatusPending,
		TotalAmount: 6453,
		Currency:    "thb",
	}
}

func confirmedBooking() bookingModel.Booking {
	booking := pendingBooking()
	booking.Status = bookingModel.StatusConfirmed
	booking.PaymentIntentID = sql.NullString{String: testIntentID, Valid: true}

	return booking
}

func intentSucceededEvent(t *testing.T, bookingID string) stripeGo.Event {
	t.Helper()

	raw, err := json.Marshal(map[string]any{
		"id":       testIntentID,
		"metadata": map[string]string{stripe.MetadataKeyBookingID: bookingID},
	})
	assert.NoError(t, err)

	return stripeGo.Event{
		Type: stripeGo.EventTypePaymentIntentSucceeded,
		Data: &stripeGo.EventData{Raw: raw},
	}
}

// expectDownstream wires the three post-confirmation actions and returns a
// channel that closes once all of them ran.
func (f *paymentFixture) expectDownstream() chan struct{} {
	done := make(chan struct{}, 3)

	f.notifier.EXPECT().BookingConfirmed(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, bookingModel.Aggregate) error {
			done <- struct{}{}

			return nil
		})
	f.notifier.EXPECT().AdminBookingNotification(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, bookingModel.Aggregate) error {
			done <- struct{}{}

			return nil
		})
	f.sync.EXPECT().Dispatch(gomock.Any(), testBookingID).
		DoAndReturn(func(context.Context, string) (syncDto.SyncResultResponse, error) {
			done <- struct{}{}

			return syncDto.SyncResultResponse{Outcome: "synced"}, nil
		})

	return done
}

func waitForDownstream(t *testing.T, done chan struct{}) {
	t.Helper()

	for i := 0; i < 3; i++ {
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("downstream actions did not complete")
		}
	}
}

func TestHandleWebhookConfirmsBooking(t *testing.T) {
	f := newPaymentFixture(t)
	event := intentSucceededEvent(t, testBookingID)

	f.gateway.EXPECT().ConstructEvent(gomock.Any(), "sig").Return(event, nil)
	f.booking.EXPECT().GetByID(gomock.Any(), testBookingID).Return(pendingBooking(), nil)
	f.booking.EXPECT().Transition(gomock.Any(), testBookingID, bookingModel.StatusConfirmed, constant.ActorWebhook).Return(true, nil)
	f.booking.EXPECT().SetPaymentReferences(gomock.Any(), testBookingID, testIntentID, "").Return(nil)
	f.booking.EXPECT().GetAggregate(gomock.Any(), testBookingID).
		Return(bookingModel.Aggregate{Booking: confirmedBooking()}, nil)

	done := f.expectDownstream()

	err := f.svc.HandleWebhook(context.Background(), []byte(`{}`), "sig")

	assert.NoError(t, err)
	waitForDownstream(t, done)
}

func TestHandleWebhookRedeliveryIsIdempotent(t *testing.T) {
	f := newPaymentFixture(t)
	event := intentSucceededEvent(t, testBookingID)

	// The booking is already confirmed, so the conditional transition
	// reports no change. Downstream actions may run again; they are safe
	// to repeat.
	f.gateway.EXPECT().ConstructEvent(gomock.Any(), "sig").Return(event, nil)
	f.booking.EXPECT().GetByID(gomock.Any(), testBookingID).Return(confirmedBooking(), nil)
	f.booking.EXPECT().Transition(gomock.Any(), testBookingID, bookingModel.StatusConfirmed, constant.ActorWebhook).Return(false, nil)
	f.booking.EXPECT().SetPaymentReferences(gomock.Any(), testBookingID, testIntentID, "").Return(nil)
	f.booking.EXPECT().GetAggregate(gomock.Any(), testBookingID).
		Return(bookingModel.Aggregate{Booking: confirmedBooking()}, nil)

	done := f.expectDownstream()

	err := f.svc.HandleWebhook(context.Background(), []byte(`{}`), "sig")

	assert.NoError(t, err)
	waitForDownstream(t, done)
}

func TestHandleWebhookIgnoresLateConfirmationForTerminalBooking(t *testing.T) {
	f := newPaymentFixture(t)
	event := intentSucceededEvent(t, testBookingID)

	booking := pendingBooking()
	booking.Status = bookingModel.StatusRefunded

	f.gateway.EXPECT().ConstructEvent(gomock.Any(), "sig").Return(event, nil)
	f.booking.EXPECT().GetByID(gomock.Any(), testBookingID).Return(booking, nil)
	f.booking.EXPECT().Transition(gomock.Any(), testBookingID, bookingModel.StatusConfirmed, constant.ActorWebhook).Return(false, nil)

	err := f.svc.HandleWebhook(context.Background(), []byte(`{}`), "sig")

	assert.NoError(t, err)
}

func TestHandleWebhookRejectsInvalidSignature(t *testing.T) {
	f := newPaymentFixture(t)

	f.gateway.EXPECT().ConstructEvent(gomock.Any(), "bad").
		Return(stripeGo.Event{}, failure.Unauthorized("invalid webhook signature"))

	err := f.svc.HandleWebhook(context.Background(), []byte(`{}`), "bad")

	assert.Error(t, err)
	assert.Equal(t, 401, failure.GetCode(err))
}

func TestHandleWebhookRejectsMissingMetadata(t *testing.T) {
	f := newPaymentFixture(t)
	event := intentSucceededEvent(t, "")

	f.gateway.EXPECT().ConstructEvent(gomock.Any(), "sig").Return(event, nil)

	err := f.svc.HandleWebhook(context.Background(), []byte(`{}`), "sig")

	assert.Error(t, err)
	assert.Equal(t, 400, failure.GetCode(err))
}

func TestHandleWebhookIgnoresUnknownEventType(t *testing.T) {
	f := newPaymentFixture(t)

	f.gateway.EXPECT().ConstructEvent(gomock.Any(), "sig").
		Return(stripeGo.Event{Type: "customer.created", Data: &stripeGo.EventData{Raw: []byte(`{}`)}}, nil)

	err := f.svc.HandleWebhook(context.Background(), []byte(`{}`), "sig")

	assert.NoError(t, err)
}

func TestHandleWebhookCancelsOnFailedPayment(t *testing.T) {
	f := newPaymentFixture(t)

	raw, err := json.Marshal(map[string]any{
		"id":       testIntentID,
		"metadata": map[string]string{stripe.MetadataKeyBookingID: testBookingID},
	})
	assert.NoError(t, err)

	event := stripeGo.Event{
		Type: stripeGo.EventTypePaymentIntentPaymentFailed,
		Data: &stripeGo.EventData{Raw: raw},
	}

	f.gateway.EXPECT().ConstructEvent(gomock.Any(), "sig").Return(event, nil)
	f.booking.EXPECT().GetByID(gomock.Any(), testBookingID).Return(pendingBooking(), nil)
	f.booking.EXPECT().Transition(gomock.Any(), testBookingID, bookingModel.StatusCancelled, constant.ActorWebhook).Return(true, nil)

	err = f.svc.HandleWebhook(context.Background(), []byte(`{}`), "sig")

	assert.NoError(t, err)
}

func chargeRefundedEvent(t *testing.T, amount, amountRefunded int64, refunded bool) stripeGo.Event {
	t.Helper()

	raw, err := json.Marshal(map[string]any{
		"id":              "ch_123",
		"payment_intent":  testIntentID,
		"amount":          amount,
		"amount_refunded": amountRefunded,
		"refunded":        refunded,
	})
	assert.NoError(t, err)

	return stripeGo.Event{
		Type: stripeGo.EventTypeChargeRefunded,
		Data: &stripeGo.EventData{Raw: raw},
	}
}

func TestHandleWebhookMarksRefundedFromChargeEvent(t *testing.T) {
	tests := []struct {
		name       string
		event      stripeGo.Event
		booking    bookingModel.Booking
		wantStatus string
	}{
		{
			name:       "full refund",
			event:      chargeRefundedEvent(t, 645300, 645300, true),
			booking:    confirmedBooking(),
			wantStatus: bookingModel.StatusRefunded,
		},
		{
			name:  "partial refund keeps booking refundable",
			event: chargeRefundedEvent(t, 645300, 300000, false),
			booking: func() bookingModel.Booking {
				booking := confirmedBooking()
				booking.Status = bookingModel.StatusPartiallyRefunded

				return booking
			}(),
			wantStatus: bookingModel.StatusPartiallyRefunded,
		},
		{
			name:       "refunded amount covering the charge without the flag",
			event:      chargeRefundedEvent(t, 645300, 645300, false),
			booking:    confirmedBooking(),
			wantStatus: bookingModel.StatusRefunded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newPaymentFixture(t)

			f.gateway.EXPECT().ConstructEvent(gomock.Any(), "sig").Return(tt.event, nil)
			f.booking.EXPECT().GetByPaymentIntentID(gomock.Any(), testIntentID).Return(tt.booking, nil)
			f.booking.EXPECT().Transition(gomock.Any(), testBookingID, tt.wantStatus, constant.ActorWebhook).Return(true, nil)

			err := f.svc.HandleWebhook(context.Background(), []byte(`{}`), "sig")

			assert.NoError(t, err)
		})
	}
}

func TestHandleWebhookIgnoresChargeEventForRefundedBooking(t *testing.T) {
	f := newPaymentFixture(t)

	booking := confirmedBooking()
	booking.Status = bookingModel.StatusRefunded

	f.gateway.EXPECT().ConstructEvent(gomock.Any(), "sig").Return(chargeRefundedEvent(t, 645300, 645300, true), nil)
	f.booking.EXPECT().GetByPaymentIntentID(gomock.Any(), testIntentID).Return(booking, nil)

	err := f.svc.HandleWebhook(context.Background(), []byte(`{}`), "sig")

	assert.NoError(t, err)
}

func TestCreateIntent(t *testing.T) {
	f := newPaymentFixture(t)

	f.booking.EXPECT().GetByID(gomock.Any(), testBookingID).Return(pendingBooking(), nil)
	f.gateway.EXPECT().CreateIntent(gomock.Any(), stripe.CreateIntentRequest{
		AmountMinor:      645300,
		Currency:         "thb",
		BookingID:        testBookingID,
		BookingReference: "SR-100001",
	}).Return(stripe.Intent{ID: testIntentID, ClientSecret: "pi_secret"}, nil)
	f.booking.EXPECT().SetPaymentReferences(gomock.Any(), testBookingID, testIntentID, "").Return(nil)

	res, err := f.svc.CreateIntent(context.Background(), testBookingID)

	assert.NoError(t, err)
	assert.Equal(t, testIntentID, res.PaymentIntentID)
	assert.Equal(t, "pi_secret", res.ClientSecret)
	assert.Equal(t, int64(6453), res.Amount)
}

func TestCreateIntentRejectsNonPendingBooking(t *testing.T) {
	f := newPaymentFixture(t)

	f.booking.EXPECT().GetByID(gomock.Any(), testBookingID).Return(confirmedBooking(), nil)

	_, err := f.svc.CreateIntent(context.Background(), testBookingID)

	assert.Error(t, err)
	assert.Equal(t, 409, failure.GetCode(err))
}

func TestRefund(t *testing.T) {
	tests := []struct {
		name            string
		booking         bookingModel.Booking
		alreadyRefunded int64
		amount          int64
		wantCode        int
		wantStatus      string
		wantRemaining   int64
	}{
		{
			name:     "no payment intent",
			booking:  pendingBooking(),
			amount:   1000,
			wantCode: 409,
		},
		{
			name:            "amount exceeds refundable",
			booking:         confirmedBooking(),
			alreadyRefunded: 0,
			amount:          7000,
			wantCode:        400,
		},
		{
			name:          "partial refund",
			booking:       confirmedBooking(),
			amount:        3000,
			wantStatus:    bookingModel.StatusPartiallyRefunded,
			wantRemaining: 3453,
		},
		{
			name: "refund exhausting the balance",
			booking: func() bookingModel.Booking {
				booking := confirmedBooking()
				booking.Status = bookingModel.StatusPartiallyRefunded

				return booking
			}(),
			alreadyRefunded: 3000,
			amount:          3453,
			wantStatus:      bookingModel.StatusRefunded,
			wantRemaining:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newPaymentFixture(t)

			f.booking.EXPECT().GetByID(gomock.Any(), testBookingID).Return(tt.booking, nil)

			if tt.booking.PaymentIntentID.Valid {
				f.refundRepo.EXPECT().SumRefundedByBookingID(gomock.Any(), testBookingID).Return(tt.alreadyRefunded, nil)
			}

			if tt.wantCode == 0 {
				f.gateway.EXPECT().CreateRefund(gomock.Any(), stripe.CreateRefundRequest{
					PaymentIntentID: testIntentID,
					AmountMinor:     tt.amount * 100,
					Reason:          "requested_by_customer",
				}).Return(stripe.Refund{ID: "re_123"}, nil)
				f.refundRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
				f.booking.EXPECT().Transition(gomock.Any(), testBookingID, tt.wantStatus, "operator").Return(true, nil)
			}

			res, err := f.svc.Refund(context.Background(), testBookingID, dto.RefundRequest{
				Amount: tt.amount,
				Reason: "requested_by_customer",
			}, "operator")

			if tt.wantCode != 0 {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "re_123", res.RefundID)
			assert.Equal(t, tt.wantStatus, res.BookingStatus)
			assert.Equal(t, tt.wantRemaining, res.RemainingRefundable)
		})
	}
}

func TestRefundLedgerFailureIsNotRetried(t *testing.T) {
	f := newPaymentFixture(t)

	f.booking.EXPECT().GetByID(gomock.Any(), testBookingID).Return(confirmedBooking(), nil)
	f.refundRepo.EXPECT().SumRefundedByBookingID(gomock.Any(), testBookingID).Return(int64(0), nil)
	f.gateway.EXPECT().CreateRefund(gomock.Any(), gomock.Any()).Return(stripe.Refund{ID: "re_123"}, nil)
	f.refundRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))

	// No second CreateRefund and no status transition: the gap is left for
	// manual reconciliation.
	_, err := f.svc.Refund(context.Background(), testBookingID, dto.RefundRequest{Amount: 1000}, "operator")

	assert.Error(t, err)
}
