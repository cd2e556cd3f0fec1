package service_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/lovedesignwork/skyrock-sub001/config"
	"github.com/lovedesignwork/skyrock-sub001/infras/dashboard"
	dashboardMocks "github.com/lovedesignwork/skyrock-sub001/infras/dashboard/mocks"
	otelMocks "github.com/lovedesignwork/skyrock-sub001/infras/otel/mocks"
	bookingMocks "github.com/lovedesignwork/skyrock-sub001/internal/domains/booking/mocks"
	bookingModel "github.com/lovedesignwork/skyrock-sub001/internal/domains/booking/model"
	catalogMocks "github.com/lovedesignwork/skyrock-sub001/internal/domains/catalog/mocks"
	catalogModel "github.com/lovedesignwork/skyrock-sub001/internal/domains/catalog/model"
	"github.com/lovedesignwork/skyrock-sub001/internal/domains/sync/model/dto"
	"github.com/lovedesignwork/skyrock-sub001/internal/domains/sync/service"
	"github.com/lovedesignwork/skyrock-sub001/shared/constant"
	"github.com/lovedesignwork/skyrock-sub001/shared/failure"
	"github.com/lovedesignwork/skyrock-sub001/shared/signature"
)

const testBookingID = "b6f3d7a0-51c4-4f5e-9a2e-7c8d9e0f1a02"

func syncConfig(configured bool) *config.Config {
	cfg := &config.Config{}
	if configured {
		cfg.External.Dashboard.Endpoint = "https://dashboard.example.com/api/bookings/sync"
		cfg.External.Dashboard.APIKey = "dk_test"
	}

	cfg.External.Dashboard.WebhookSecret = "whsec_dashboard"

	return cfg
}

func confirmedAggregate() bookingModel.Aggregate {
	return bookingModel.Aggregate{
		Booking: bookingModel.Booking{
			ID:              testBookingID,
			Reference:       "SR-100001",
			PackageID:       "pkg-1",
			ActivityDate:    time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC),
			TimeSlot:        "09:00",
			GuestCount:      2,
			Status:          bookingModel.StatusConfirmed,
			TotalAmount:     7170,
			Currency:        "thb",
			PaymentIntentID: sql.NullString{String: "pi_123", Valid: true},
		},
		Customer: bookingModel.Customer{Name: "Ari Tan", Email: "ari@example.com"},
		Transport: bookingModel.Transport{
			Type: bookingModel.TransportTypePrivate,
			Cost: 500,
		},
	}
}

func TestDispatch(t *testing.T) {
	pkg := catalogModel.Package{ID: "pkg-1", Name: "Skyline Rope Course", Price: 2950}

	tests := []struct {
		name        string
		results     []dashboard.PushResult
		wantOutcome string
		wantPushes  int
	}{
		{
			name:        "first push succeeds",
			results:     []dashboard.PushResult{{Outcome: dashboard.OutcomeSuccess, ExternalBookingID: "ext-1"}},
			wantOutcome: "synced",
			wantPushes:  1,
		},
		{
			name:        "duplicate counts as synced",
			results:     []dashboard.PushResult{{Outcome: dashboard.OutcomeDuplicate, ErrorCode: dashboard.ErrorCodeDuplicateBooking}},
			wantOutcome: "synced",
			wantPushes:  1,
		},
		{
			name: "transient then success retries",
			results: []dashboard.PushResult{
				{Outcome: dashboard.OutcomeTransient},
				{Outcome: dashboard.OutcomeSuccess, ExternalBookingID: "ext-1"},
			},
			wantOutcome: "synced",
			wantPushes:  2,
		},
		{
			name:        "permanent failure is not retried",
			results:     []dashboard.PushResult{{Outcome: dashboard.OutcomePermanent, ErrorCode: "VALIDATION_ERROR"}},
			wantOutcome: "failed",
			wantPushes:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			booking := bookingMocks.NewMockBookingService(ctrl)
			catalog := catalogMocks.NewMockCatalog(ctrl)
			client := dashboardMocks.NewMockClient(ctrl)
			svc := service.New(booking, catalog, client, syncConfig(true), otelMocks.NewOtel())

			booking.EXPECT().GetAggregate(gomock.Any(), testBookingID).Return(confirmedAggregate(), nil)
			catalog.EXPECT().GetPackage(gomock.Any(), "pkg-1").Return(pkg, nil)

			calls := 0
			client.EXPECT().PushBooking(gomock.Any(), gomock.Any()).Times(tt.wantPushes).
				DoAndReturn(func(_ context.Context, payload dashboard.BookingPayload) (dashboard.PushResult, error) {
					assert.Equal(t, "SR-100001", payload.Reference)
					assert.Equal(t, testBookingID, payload.SourceBookingID)
					assert.Equal(t, "Skyline Rope Course", payload.PackageName)

					result := tt.results[calls]
					calls++

					return result, nil
				})

			res, err := svc.Dispatch(context.Background(), testBookingID)

			assert.NoError(t, err)
			assert.Equal(t, tt.wantOutcome, res.Outcome)
		})
	}
}

func TestDispatchSkipsWhenNotConfigured(t *testing.T) {
	ctrl := gomock.NewController(t)
	booking := bookingMocks.NewMockBookingService(ctrl)
	catalog := catalogMocks.NewMockCatalog(ctrl)
	client := dashboardMocks.NewMockClient(ctrl)
	svc := service.New(booking, catalog, client, syncConfig(false), otelMocks.NewOtel())

	booking.EXPECT().GetAggregate(gomock.Any(), testBookingID).Return(confirmedAggregate(), nil)

	res, err := svc.Dispatch(context.Background(), testBookingID)

	assert.NoError(t, err)
	assert.Equal(t, "skipped", res.Outcome)
}

func TestDispatchSkipsPendingBooking(t *testing.T) {
	ctrl := gomock.NewController(t)
	booking := bookingMocks.NewMockBookingService(ctrl)
	catalog := catalogMocks.NewMockCatalog(ctrl)
	client := dashboardMocks.NewMockClient(ctrl)
	svc := service.New(booking, catalog, client, syncConfig(true), otelMocks.NewOtel())

	agg := confirmedAggregate()
	agg.Booking.Status = bookingModel.StatusPending

	booking.EXPECT().GetAggregate(gomock.Any(), testBookingID).Return(agg, nil)

	res, err := svc.Dispatch(context.Background(), testBookingID)

	assert.NoError(t, err)
	assert.Equal(t, "skipped", res.Outcome)
}

func TestDispatchAbandonsWhenContextDone(t *testing.T) {
	ctrl := gomock.NewController(t)
	booking := bookingMocks.NewMockBookingService(ctrl)
	catalog := catalogMocks.NewMockCatalog(ctrl)
	client := dashboardMocks.NewMockClient(ctrl)
	svc := service.New(booking, catalog, client, syncConfig(true), otelMocks.NewOtel())

	booking.EXPECT().GetAggregate(gomock.Any(), testBookingID).Return(confirmedAggregate(), nil)
	catalog.EXPECT().GetPackage(gomock.Any(), "pkg-1").Return(catalogModel.Package{ID: "pkg-1"}, nil)
	client.EXPECT().PushBooking(gomock.Any(), gomock.Any()).Return(dashboard.PushResult{Outcome: dashboard.OutcomeTransient}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	res, err := svc.Dispatch(ctx, testBookingID)

	assert.NoError(t, err)
	assert.Equal(t, "failed", res.Outcome)
}

func TestDispatchBulk(t *testing.T) {
	ctrl := gomock.NewController(t)
	booking := bookingMocks.NewMockBookingService(ctrl)
	catalog := catalogMocks.NewMockCatalog(ctrl)
	client := dashboardMocks.NewMockClient(ctrl)
	svc := service.New(booking, catalog, client, syncConfig(true), otelMocks.NewOtel())

	confirmed := confirmedAggregate()
	pending := confirmedAggregate()
	pending.Booking.ID = "booking-2"
	pending.Booking.Status = bookingModel.StatusPending

	booking.EXPECT().GetAggregate(gomock.Any(), testBookingID).Return(confirmed, nil)
	booking.EXPECT().GetAggregate(gomock.Any(), "booking-2").Return(pending, nil)
	booking.EXPECT().GetAggregate(gomock.Any(), "booking-3").Return(bookingModel.Aggregate{}, failure.NotFound("booking not found"))

	catalog.EXPECT().GetPackage(gomock.Any(), "pkg-1").Return(catalogModel.Package{ID: "pkg-1", Name: "Skyline Rope Course"}, nil)
	client.EXPECT().PushBooking(gomock.Any(), gomock.Any()).Return(dashboard.PushResult{Outcome: dashboard.OutcomeSuccess, ExternalBookingID: "ext-1"}, nil)

	res, err := svc.DispatchBulk(context.Background(), dto.BulkSyncRequest{
		BookingIDs: []string{testBookingID, "booking-2", "booking-3"},
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, res.Synced)
	assert.Equal(t, 1, res.Skipped)
	assert.Equal(t, 1, res.Failed)
	assert.Len(t, res.Results, 3)
}

func TestDispatchBulkReportsOverflowAsSkipped(t *testing.T) {
	ctrl := gomock.NewController(t)
	booking := bookingMocks.NewMockBookingService(ctrl)
	catalog := catalogMocks.NewMockCatalog(ctrl)
	client := dashboardMocks.NewMockClient(ctrl)
	svc := service.New(booking, catalog, client, syncConfig(false), otelMocks.NewOtel())

	// 26 ids against a 25-booking cap. Only the first 25 are dispatched, but
	// the response still covers every requested id.
	bookingIDs := make([]string, 26)
	for i := range bookingIDs {
		bookingIDs[i] = fmt.Sprintf("booking-%d", i+1)
	}

	booking.EXPECT().GetAggregate(gomock.Any(), gomock.Any()).Times(25).Return(confirmedAggregate(), nil)

	res, err := svc.DispatchBulk(context.Background(), dto.BulkSyncRequest{BookingIDs: bookingIDs})

	assert.NoError(t, err)
	assert.Len(t, res.Results, 26)
	assert.Equal(t, 26, res.Skipped)
	assert.Equal(t, 0, res.Failed)
	assert.Equal(t, "booking-26", res.Results[25].BookingID)
	assert.Equal(t, "skipped", res.Results[25].Outcome)
}

func signedBody(t *testing.T, secret string, body any) ([]byte, string, string) {
	t.Helper()

	raw, err := json.Marshal(body)
	assert.NoError(t, err)

	timestamp := "1719828000"

	return raw, signature.Compute(secret, timestamp, raw), timestamp
}

func TestHandleDashboardWebhook(t *testing.T) {
	webhookBody := dto.InboundWebhookRequest{
		Event:           dto.EventBookingStatusChanged,
		SourceBookingID: testBookingID,
		UpdatedFields:   []string{dto.FieldStatus},
	}
	webhookBody.Data.Status = bookingModel.StatusCompleted

	t.Run("applies a forward status change", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		booking := bookingMocks.NewMockBookingService(ctrl)
		svc := service.New(booking, catalogMocks.NewMockCatalog(ctrl), dashboardMocks.NewMockClient(ctrl), syncConfig(true), otelMocks.NewOtel())

		booking.EXPECT().GetByID(gomock.Any(), testBookingID).
			Return(bookingModel.Booking{ID: testBookingID, Status: bookingModel.StatusConfirmed}, nil)
		booking.EXPECT().Transition(gomock.Any(), testBookingID, bookingModel.StatusCompleted, constant.ActorWebhook).
			Return(true, nil)

		raw, sig, timestamp := signedBody(t, "whsec_dashboard", webhookBody)

		err := svc.HandleDashboardWebhook(context.Background(), raw, sig, timestamp)

		assert.NoError(t, err)
	})

	t.Run("rejects a backward status change", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		booking := bookingMocks.NewMockBookingService(ctrl)
		svc := service.New(booking, catalogMocks.NewMockCatalog(ctrl), dashboardMocks.NewMockClient(ctrl), syncConfig(true), otelMocks.NewOtel())

		booking.EXPECT().GetByID(gomock.Any(), testBookingID).
			Return(bookingModel.Booking{ID: testBookingID, Status: bookingModel.StatusRefunded}, nil)

		raw, sig, timestamp := signedBody(t, "whsec_dashboard", webhookBody)

		err := svc.HandleDashboardWebhook(context.Background(), raw, sig, timestamp)

		assert.Error(t, err)
		assert.Equal(t, 409, failure.GetCode(err))
	})

	t.Run("rejects an invalid signature", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		booking := bookingMocks.NewMockBookingService(ctrl)
		svc := service.New(booking, catalogMocks.NewMockCatalog(ctrl), dashboardMocks.NewMockClient(ctrl), syncConfig(true), otelMocks.NewOtel())

		raw, sig, timestamp := signedBody(t, "wrong_secret", webhookBody)

		err := svc.HandleDashboardWebhook(context.Background(), raw, sig, timestamp)

		assert.Error(t, err)
		assert.Equal(t, 401, failure.GetCode(err))
	})

	t.Run("rejects a missing signature", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := service.New(bookingMocks.NewMockBookingService(ctrl), catalogMocks.NewMockCatalog(ctrl), dashboardMocks.NewMockClient(ctrl), syncConfig(true), otelMocks.NewOtel())

		raw, _, timestamp := signedBody(t, "whsec_dashboard", webhookBody)

		err := svc.HandleDashboardWebhook(context.Background(), raw, "", timestamp)

		assert.Error(t, err)
		assert.Equal(t, 401, failure.GetCode(err))
	})

	t.Run("rejects malformed json", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := service.New(bookingMocks.NewMockBookingService(ctrl), catalogMocks.NewMockCatalog(ctrl), dashboardMocks.NewMockClient(ctrl), syncConfig(true), otelMocks.NewOtel())

		raw := []byte(`{"event": `)
		timestamp := "1719828000"
		sig := signature.Compute("whsec_dashboard", timestamp, raw)

		err := svc.HandleDashboardWebhook(context.Background(), raw, sig, timestamp)

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("rejects a missing source booking id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := service.New(bookingMocks.NewMockBookingService(ctrl), catalogMocks.NewMockCatalog(ctrl), dashboardMocks.NewMockClient(ctrl), syncConfig(true), otelMocks.NewOtel())

		body := dto.InboundWebhookRequest{Event: dto.EventBookingUpdated}
		raw, sig, timestamp := signedBody(t, "whsec_dashboard", body)

		err := svc.HandleDashboardWebhook(context.Background(), raw, sig, timestamp)

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("accepts an unrecognized event", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := service.New(bookingMocks.NewMockBookingService(ctrl), catalogMocks.NewMockCatalog(ctrl), dashboardMocks.NewMockClient(ctrl), syncConfig(true), otelMocks.NewOtel())

		body := dto.InboundWebhookRequest{Event: "booking.archived", SourceBookingID: testBookingID}
		raw, sig, timestamp := signedBody(t, "whsec_dashboard", body)

		err := svc.HandleDashboardWebhook(context.Background(), raw, sig, timestamp)

		assert.NoError(t, err)
	})
}
