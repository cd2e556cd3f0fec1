package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/lovedesignwork/skyrock-sub001/config"
	"github.com/lovedesignwork/skyrock-sub001/infras/dashboard"
	"github.com/lovedesignwork/skyrock-sub001/infras/otel"
	bookingModel "github.com/lovedesignwork/skyrock-sub001/internal/domains/booking/model"
	bookingService "github.com/lovedesignwork/skyrock-sub001/internal/domains/booking/service"
	catalogService "github.com/lovedesignwork/skyrock-sub001/internal/domains/catalog/service"
	"github.com/lovedesignwork/skyrock-sub001/internal/domains/sync/model/dto"
	"github.com/lovedesignwork/skyrock-sub001/shared/constant"
	"github.com/lovedesignwork/skyrock-sub001/shared/failure"
	"github.com/lovedesignwork/skyrock-sub001/shared/signature"
)

const (
	// Hard cap per bulk invocation. The hosting environment has a short
	// execution-time ceiling, so a bulk run never drains the whole backlog
	// in one go.
	maxBulkBookings = 25
	bulkConcurrency = 5

	outcomeSynced  = "synced"
	outcomeSkipped = "skipped"
	outcomeFailed  = "failed"
)

// Delays between push attempts for transient failures.
var backoffSteps = []time.Duration{time.Second, 5 * time.Second, 30 * time.Second, 5 * time.Minute}

type Sync interface {
	Dispatch(ctx context.Context, bookingID string) (dto.SyncResultResponse, error)
	DispatchBulk(ctx context.Context, req dto.BulkSyncRequest) (dto.BulkSyncResponse, error)
	HandleDashboardWebhook(ctx context.Context, rawBody []byte, sig, timestamp string) error
}

type serviceImpl struct {
	booking   bookingService.Booking
	catalog   catalogService.Catalog
	dashboard dashboard.Client
	cfg       *config.Config
	otel      otel.Otel
}

func New(booking bookingService.Booking, catalog catalogService.Catalog, dashboardClient dashboard.Client, cfg *config.Config, otel otel.Otel) Sync {
	return &serviceImpl{
		booking:   booking,
		catalog:   catalog,
		dashboard: dashboardClient,
		cfg:       cfg,
		otel:      otel,
	}
}

// Dispatch pushes the booking to the dashboard, retrying transient failures
// with bounded backoff. The booking reference is the remote idempotency key,
// so repeated dispatches for the same booking converge on a duplicate
// outcome instead of a second remote record. Sync failures are reported in
// the result, never as an error, because payment has already succeeded by
// the time a sync runs.
func (s *serviceImpl) Dispatch(ctx context.Context, bookingID string) (res dto.SyncResultResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".sync.Dispatch")
	defer scope.End()
	defer scope.TraceIfError(err)

	res.BookingID = bookingID

	agg, err := s.booking.GetAggregate(ctx, bookingID)
	if err != nil {
		return res, fmt.Errorf("failed to load booking for sync: %w", err)
	}

	res.Reference = agg.Booking.Reference

	if agg.Booking.Status == bookingModel.StatusPending || agg.Booking.Status == bookingModel.StatusCancelled {
		res.Outcome = outcomeSkipped

		return res, nil
	}

	if !s.cfg.DashboardConfigured() {
		log.Info().Str("reference", agg.Booking.Reference).Msg("dashboard sync not configured, skipping")
		res.Outcome = outcomeSkipped

		return res, nil
	}

	payload, err := s.buildPayload(ctx, agg)
	if err != nil {
		return res, err
	}

	result := s.pushWithRetry(ctx, payload)
	res.ExternalBookingID = result.ExternalBookingID

	if result.Outcome.Synced() {
		log.Info().
			Str("reference", agg.Booking.Reference).
			Str("outcome", string(result.Outcome)).
			Str("external_booking_id", result.ExternalBookingID).
			Msg("booking synced to dashboard")

		res.Outcome = outcomeSynced

		return res, nil
	}

	log.Error().
		Str("reference", agg.Booking.Reference).
		Str("outcome", string(result.Outcome)).
		Str("error_code", result.ErrorCode).
		Msg("dashboard sync failed after retries")

	res.Outcome = outcomeFailed

	return res, nil
}

func (s *serviceImpl) buildPayload(ctx context.Context, agg bookingModel.Aggregate) (dashboard.BookingPayload, error) {
	pkg, err := s.catalog.GetPackage(ctx, agg.Booking.PackageID)
	if err != nil {
		return dashboard.BookingPayload{}, fmt.Errorf("failed to resolve package for sync: %w", err)
	}

	payload := dashboard.BookingPayload{
		Event:           dto.EventBookingUpdated,
		SourceBookingID: agg.Booking.ID,
		Reference:       agg.Booking.Reference,
		TenantID:        s.cfg.External.Dashboard.TenantID,
		PackageName:     pkg.Name,
		PackagePrice:    pkg.Price,
		ActivityDate:    agg.Booking.ActivityDate.Format(constant.DateOnlyFormat),
		TimeSlot:        agg.Booking.TimeSlot,
		GuestCount:      agg.Booking.GuestCount,
		TotalAmount:     agg.Booking.TotalAmount,
		DiscountAmount:  agg.Booking.DiscountAmount,
		Currency:        agg.Booking.Currency,
		Status:          agg.Booking.Status,
		PaymentIntentID: agg.Booking.PaymentIntentID.String,
		Customer: dashboard.CustomerPayload{
			Name:             agg.Customer.Name,
			Email:            agg.Customer.Email,
			Phone:            agg.Customer.Phone,
			PhoneCountryCode: agg.Customer.PhoneCountryCode,
		},
		Transport: dashboard.TransportPayload{
			Type:              agg.Transport.Type,
			HotelName:         agg.Transport.HotelName.String,
			RoomNumber:        agg.Transport.RoomNumber.String,
			PrivatePassengers: agg.Transport.PrivatePassengers,
			NonPlayerCount:    agg.Transport.NonPlayerCount,
			Cost:              agg.Transport.Cost,
		},
		Addons:    make([]dashboard.AddonPayload, len(agg.Addons)),
		CreatedAt: agg.Booking.CreatedAt.Format(constant.DateFormat),
	}

	for i, line := range agg.Addons {
		payload.Addons[i] = dashboard.AddonPayload{
			AddonID:   line.AddonID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		}
	}

	return payload, nil
}

func (s *serviceImpl) pushWithRetry(ctx context.Context, payload dashboard.BookingPayload) dashboard.PushResult {
	result, err := s.dashboard.PushBooking(ctx, payload)
	if err != nil {
		log.Warn().Err(err).Str("reference", payload.Reference).Msg("dashboard push failed")
	}

	for attempt := 0; attempt < len(backoffSteps) && result.Outcome.Retryable(); attempt++ {
		select {
		case <-ctx.Done():
			log.Warn().Str("reference", payload.Reference).Msg("dashboard sync abandoned, context done")

			return result
		case <-time.After(backoffSteps[attempt]):
		}

		result, err = s.dashboard.PushBooking(ctx, payload)
		if err != nil {
			log.Warn().Err(err).Str("reference", payload.Reference).Int("attempt", attempt+2).Msg("dashboard push failed")
		}
	}

	return result
}

// DispatchBulk resyncs a set of bookings with bounded concurrency, reporting
// each booking's outcome independently.
func (s *serviceImpl) DispatchBulk(ctx context.Context, req dto.BulkSyncRequest) (res dto.BulkSyncResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".sync.DispatchBulk")
	defer scope.End()
	defer scope.TraceIfError(err)

	bookingIDs := req.BookingIDs
	if len(bookingIDs) > maxBulkBookings {
		log.Warn().Int("requested", len(bookingIDs)).Int("limit", maxBulkBookings).Msg("bulk sync request over limit, overflow skipped")

		bookingIDs = bookingIDs[:maxBulkBookings]
	}

	res.Results = make([]dto.SyncResultResponse, len(req.BookingIDs))

	// Everything past the cap is reported back as skipped so the caller can
	// resubmit those ids in the next batch.
	for i := maxBulkBookings; i < len(req.BookingIDs); i++ {
		res.Results[i] = dto.SyncResultResponse{BookingID: req.BookingIDs[i], Outcome: outcomeSkipped}
	}

	var wg sync.WaitGroup

	semaphore := make(chan struct{}, bulkConcurrency)

	for i, bookingID := range bookingIDs {
		wg.Add(1)

		go func(i int, bookingID string) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			result, dispatchErr := s.Dispatch(ctx, bookingID)
			if dispatchErr != nil {
				log.Error().Err(dispatchErr).Str("booking_id", bookingID).Msg("bulk sync item failed")

				result = dto.SyncResultResponse{BookingID: bookingID, Outcome: outcomeFailed}
			}

			res.Results[i] = result
		}(i, bookingID)
	}

	wg.Wait()

	for _, result := range res.Results {
		switch result.Outcome {
		case outcomeSynced:
			res.Synced++
		case outcomeSkipped:
			res.Skipped++
		default:
			res.Failed++
		}
	}

	return res, nil
}

// HandleDashboardWebhook applies a signed update pushed by the dashboard.
// Only allow-listed fields are written, and status changes still honor the
// forward-only state machine.
func (s *serviceImpl) HandleDashboardWebhook(ctx context.Context, rawBody []byte, sig, timestamp string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".sync.HandleDashboardWebhook")
	defer scope.End()
	defer scope.TraceIfError(err)

	if sig == constant.Empty || timestamp == constant.Empty {
		return failure.Unauthorized("missing webhook signature") // nolint:wrapcheck
	}

	if !signature.Verify(s.cfg.External.Dashboard.WebhookSecret, timestamp, rawBody, sig) {
		return failure.Unauthorized("invalid webhook signature") // nolint:wrapcheck
	}

	var req dto.InboundWebhookRequest
	if err = json.Unmarshal(rawBody, &req); err != nil {
		return failure.BadRequest(fmt.Errorf("malformed webhook body: %w", err)) // nolint:wrapcheck
	}

	if req.SourceBookingID == constant.Empty {
		return failure.BadRequestFromString("missing source booking id") // nolint:wrapcheck
	}

	switch req.Event {
	case dto.EventBookingUpdated, dto.EventBookingStatusChanged:
	default:
		log.Info().Str("event", req.Event).Msg("ignoring unrecognized dashboard event")

		return nil
	}

	return s.applyInboundUpdate(ctx, req)
}

func (s *serviceImpl) applyInboundUpdate(ctx context.Context, req dto.InboundWebhookRequest) error {
	booking, err := s.booking.GetByID(ctx, req.SourceBookingID)
	if err != nil {
		return fmt.Errorf("failed to load booking for inbound update: %w", err)
	}

	for _, field := range req.UpdatedFields {
		switch field {
		case dto.FieldStatus:
			if err := s.applyInboundStatus(ctx, booking, req.Data.Status); err != nil {
				return err
			}
		case dto.FieldSpecialRequests:
			if err := s.booking.UpdateSpecialRequests(ctx, booking.ID, req.Data.SpecialRequests, constant.ActorWebhook); err != nil {
				return fmt.Errorf("failed to apply special requests update: %w", err)
			}
		default:
			log.Info().Str("field", field).Msg("ignoring unrecognized dashboard field")
		}
	}

	return nil
}

func (s *serviceImpl) applyInboundStatus(ctx context.Context, booking bookingModel.Booking, status string) error {
	if status == booking.Status {
		return nil
	}

	if !bookingModel.CanTransition(booking.Status, status) {
		return failure.InvalidState(fmt.Sprintf("cannot move booking from %s to %s", booking.Status, status)) // nolint:wrapcheck
	}

	if _, err := s.booking.Transition(ctx, booking.ID, status, constant.ActorWebhook); err != nil {
		return fmt.Errorf("failed to apply status update: %w", err)
	}

	return nil
}
