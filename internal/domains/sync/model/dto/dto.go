package dto

const (
	EventBookingUpdated       = "booking.updated"
	EventBookingStatusChanged = "booking.status_changed"
)

const (
	FieldStatus          = "status"
	FieldSpecialRequests = "special_requests"
)

type BulkSyncRequest struct {
	BookingIDs []string `json:"booking_ids" validate:"omitempty,dive,uuid"`
}

type SyncResultResponse struct {
	BookingID         string `json:"booking_id"`
	Reference         string `json:"reference,omitempty"`
	Outcome           string `json:"outcome"`
	ExternalBookingID string `json:"external_booking_id,omitempty"`
}

type BulkSyncResponse struct {
	Synced  int                  `json:"synced"`
	Skipped int                  `json:"skipped"`
	Failed  int                  `json:"failed"`
	Results []SyncResultResponse `json:"results"`
}

// InboundWebhookRequest is the dashboard's callback body. Only the fields
// named in UpdatedFields are applied.
type InboundWebhookRequest struct {
	Event           string   `json:"event"`
	SourceBookingID string   `json:"source_booking_id"`
	UpdatedFields   []string `json:"updated_fields"`
	Data            struct {
		Status          string `json:"status"`
		SpecialRequests string `json:"special_requests"`
	} `json:"data"`
}
