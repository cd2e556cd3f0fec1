package dashboard

//go:generate go run go.uber.org/mock/mockgen -source=./dashboard.go -destination=./mocks/dashboard_mock.go -package=mocks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/lovedesignwork/skyrock-sub001/config"
	"github.com/lovedesignwork/skyrock-sub001/infras/otel"
	"github.com/lovedesignwork/skyrock-sub001/shared/constant"
)

// Error code the dashboard returns when the booking reference already
// exists on its side. Callers treat it as success.
const ErrorCodeDuplicateBooking = "DUPLICATE_BOOKING"

type Outcome string

const (
	OutcomeSuccess       Outcome = "success"
	OutcomeDuplicate     Outcome = "duplicate"
	OutcomeTransient     Outcome = "transient"
	OutcomePermanent     Outcome = "permanent"
	OutcomeNotConfigured Outcome = "not_configured"
)

// Retryable reports whether a push with this outcome is worth retrying.
func (o Outcome) Retryable() bool {
	return o == OutcomeTransient
}

// Synced reports whether the booking now exists remotely, either because
// this push created it or because it was already there.
func (o Outcome) Synced() bool {
	return o == OutcomeSuccess || o == OutcomeDuplicate
}

type CustomerPayload struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	PhoneCountryCode string `json:"phone_country_code"`
}

type TransportPayload struct {
	Type              string `json:"type"`
	HotelName         string `json:"hotel_name,omitempty"`
	RoomNumber        string `json:"room_number,omitempty"`
	PrivatePassengers int    `json:"private_passengers"`
	NonPlayerCount    int    `json:"non_player_count"`
	Cost              int64  `json:"cost"`
}

type AddonPayload struct {
	AddonID   string `json:"addon_id"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
}

// BookingPayload is the canonical sync body pushed to the dashboard. It is
// rebuilt from the stored aggregate on every attempt.
type BookingPayload struct {
	Event           string           `json:"event"`
	SourceBookingID string           `json:"source_booking_id"`
	Reference       string           `json:"reference"`
	TenantID        string           `json:"tenant_id,omitempty"`
	PackageName     string           `json:"package_name"`
	PackagePrice    int64            `json:"package_price"`
	ActivityDate    string           `json:"activity_date"`
	TimeSlot        string           `json:"time_slot"`
	GuestCount      int              `json:"guest_count"`
	TotalAmount     int64            `json:"total_amount"`
	DiscountAmount  int64            `json:"discount_amount"`
	Currency        string           `json:"currency"`
	Status          string           `json:"status"`
	PaymentIntentID string           `json:"payment_intent_id,omitempty"`
	Customer        CustomerPayload  `json:"customer"`
	Transport       TransportPayload `json:"transport"`
	Addons          []AddonPayload   `json:"addons"`
	CreatedAt       string           `json:"created_at"`
}

type PushResult struct {
	Outcome           Outcome
	ExternalBookingID string
	ErrorCode         string
}

type Client interface {
	PushBooking(ctx context.Context, payload BookingPayload) (PushResult, error)
}

type successResponse struct {
	BookingID string `json:"booking_id"`
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type clientImpl struct {
	httpClient *http.Client
	cfg        *config.Config
	otel       otel.Otel
}

func New(cfg *config.Config, otel otel.Otel) Client {
	return &clientImpl{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.External.Dashboard.TimeoutSeconds) * time.Second,
		},
		cfg:  cfg,
		otel: otel,
	}
}

// PushBooking sends the payload to the dashboard sync endpoint and
// classifies the response. Transport errors and 5xx responses come back as
// transient; a duplicate-booking error code counts as synced.
func (c *clientImpl) PushBooking(ctx context.Context, payload BookingPayload) (res PushResult, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".dashboard.PushBooking")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !c.cfg.DashboardConfigured() {
		return PushResult{Outcome: OutcomeNotConfigured}, nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return PushResult{Outcome: OutcomePermanent}, fmt.Errorf("failed to marshal sync payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.External.Dashboard.Endpoint, bytes.NewReader(body))
	if err != nil {
		return PushResult{Outcome: OutcomePermanent}, fmt.Errorf("failed to build sync request: %w", err)
	}

	req.Header.Set(constant.RequestHeaderContentType, "application/json")
	req.Header.Set(constant.RequestHeaderAPIKey, c.cfg.External.Dashboard.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return PushResult{Outcome: OutcomeTransient}, fmt.Errorf("failed to reach dashboard: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, constant.RequestMaxBodyBytes))
	if err != nil {
		return PushResult{Outcome: OutcomeTransient}, fmt.Errorf("failed to read dashboard response: %w", err)
	}

	return c.classify(payload.Reference, resp.StatusCode, respBody), nil
}

func (c *clientImpl) classify(reference string, statusCode int, body []byte) PushResult {
	switch {
	case statusCode >= 200 && statusCode < 300:
		var success successResponse
		if err := json.Unmarshal(body, &success); err != nil {
			log.Warn().Str("reference", reference).Msg("dashboard returned malformed success body")

			return PushResult{Outcome: OutcomeTransient}
		}

		return PushResult{Outcome: OutcomeSuccess, ExternalBookingID: success.BookingID}

	case statusCode >= 400 && statusCode < 500:
		var failed errorResponse
		if err := json.Unmarshal(body, &failed); err != nil {
			return PushResult{Outcome: OutcomePermanent}
		}

		if failed.Error.Code == ErrorCodeDuplicateBooking {
			return PushResult{Outcome: OutcomeDuplicate, ErrorCode: failed.Error.Code}
		}

		return PushResult{Outcome: OutcomePermanent, ErrorCode: failed.Error.Code}

	default:
		return PushResult{Outcome: OutcomeTransient}
	}
}
