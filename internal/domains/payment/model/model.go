package model

import "github.com/lovedesignwork/skyrock-sub001/shared/model"

const (
	RefundTableName  = "refund_history"
	RefundEntityName = "refund"

	FieldID        = "id"
	FieldBookingID = "booking_id"
)

// RefundHistory is an append-only ledger row. The sum of amounts per
// booking never exceeds the booking total.
type RefundHistory struct {
	ID        string `db:"id"`
	BookingID string `db:"booking_id"`
	RefundID  string `db:"refund_id"`
	Amount    int64  `db:"amount"`
	Reason    string `db:"reason"`
	Actor     string `db:"actor"`
	model.Metadata
}
