package model

import (
	"database/sql"
	"time"

	"github.com/lovedesignwork/skyrock-sub001/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID              = "id"
	FieldReference       = "reference"
	FieldStatus          = "status"
	FieldPaymentIntentID = "payment_intent_id"
)

const (
	CustomerTableName  = "booking_customers"
	CustomerEntityName = "booking_customer"

	TransportTableName  = "booking_transports"
	TransportEntityName = "booking_transport"

	AddonLineTableName  = "booking_addons"
	AddonLineEntityName = "booking_addon"

	FieldBookingID = "booking_id"
)

const (
	StatusPending           = "pending"
	StatusConfirmed         = "confirmed"
	StatusCancelled         = "cancelled"
	StatusCompleted         = "completed"
	StatusRefunded          = "refunded"
	StatusPartiallyRefunded = "partially_refunded"
)

const (
	TransportTypeHotelPickup = "hotel_pickup"
	TransportTypeSelfArrange = "self_arrange"
	TransportTypePrivate     = "private"
)

// transitions is the forward-only booking state machine. Statuses absent
// from the map are terminal.
var transitions = map[string][]string{
	StatusPending:           {StatusConfirmed, StatusCancelled},
	StatusConfirmed:         {StatusCompleted, StatusRefunded, StatusPartiallyRefunded},
	StatusPartiallyRefunded: {StatusPartiallyRefunded, StatusRefunded},
}

// CanTransition reports whether a booking may move from one status to
// another. Terminal statuses never transition anywhere.
func CanTransition(from, to string) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}

	return false
}

// IsTerminalStatus reports whether no further transition is permitted.
func IsTerminalStatus(status string) bool {
	return len(transitions[status]) == 0
}

// SourcesFor returns every status that may transition into the given one.
func SourcesFor(to string) []string {
	var sources []string

	for from := range transitions {
		if CanTransition(from, to) {
			sources = append(sources, from)
		}
	}

	return sources
}

type Booking struct {
	ID                string         `db:"id"`
	Reference         string         `db:"reference"`
	PackageID         string         `db:"package_id"`
	ActivityDate      time.Time      `db:"activity_date"`
	TimeSlot          string         `db:"time_slot"`
	GuestCount        int            `db:"guest_count"`
	Status            string         `db:"status"`
	TotalAmount       int64          `db:"total_amount"`
	DiscountAmount    int64          `db:"discount_amount"`
	Currency          string         `db:"currency"`
	PaymentIntentID   sql.NullString `db:"payment_intent_id"`
	CheckoutSessionID sql.NullString `db:"checkout_session_id"`
	PromoCodeID       sql.NullString `db:"promo_code_id"`
	SpecialRequests   sql.NullString `db:"special_requests"`
	model.Metadata
}

type Customer struct {
	ID               string `db:"id"`
	BookingID        string `db:"booking_id"`
	Name             string `db:"name"`
	Email            string `db:"email"`
	Phone            string `db:"phone"`
	PhoneCountryCode string `db:"phone_country_code"`
	model.Metadata
}

type Transport struct {
	ID                string         `db:"id"`
	BookingID         string         `db:"booking_id"`
	Type              string         `db:"type"`
	HotelName         sql.NullString `db:"hotel_name"`
	RoomNumber        sql.NullString `db:"room_number"`
	PrivatePassengers int            `db:"private_passengers"`
	NonPlayerCount    int            `db:"non_player_count"`
	Cost              int64          `db:"cost"`
	model.Metadata
}

type AddonLine struct {
	ID        string `db:"id"`
	BookingID string `db:"booking_id"`
	AddonID   string `db:"addon_id"`
	Quantity  int    `db:"quantity"`
	UnitPrice int64  `db:"unit_price"`
	model.Metadata
}

// Aggregate is the full booking with its owned records, written atomically
// on creation and rebuilt for each outbound sync.
type Aggregate struct {
	Booking   Booking
	Customer  Customer
	Transport Transport
	Addons    []AddonLine
}
