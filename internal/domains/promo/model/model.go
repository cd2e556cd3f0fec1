package model

import (
	"database/sql"
	"time"

	"github.com/lovedesignwork/skyrock-sub001/shared/model"
)

const (
	TableName  = "promo_codes"
	EntityName = "promo_code"

	FieldID     = "id"
	FieldCode   = "code"
	FieldActive = "active"
)

const (
	RedemptionTableName  = "promo_redemptions"
	RedemptionEntityName = "promo_redemption"
)

const (
	DiscountTypePercentage = "percentage"
	DiscountTypeFixed      = "fixed"
)

type PromoCode struct {
	ID             string         `db:"id"`
	Code           string         `db:"code"`
	DiscountType   string         `db:"discount_type"`
	DiscountValue  int64          `db:"discount_value"`
	MaxUses        int            `db:"max_uses"`
	UsedCount      int            `db:"used_count"`
	ValidFrom      sql.NullTime   `db:"valid_from"`
	ValidUntil     sql.NullTime   `db:"valid_until"`
	Active         bool           `db:"active"`
	StripeCouponID sql.NullString `db:"stripe_coupon_id"`
	model.Metadata
}

// Usable reports whether the code can be redeemed at the given time.
func (p *PromoCode) Usable(now time.Time) bool {
	if !p.Active {
		return false
	}

	if p.MaxUses > 0 && p.UsedCount >= p.MaxUses {
		return false
	}

	if p.ValidFrom.Valid && now.Before(p.ValidFrom.Time) {
		return false
	}

	if p.ValidUntil.Valid && now.After(p.ValidUntil.Time) {
		return false
	}

	return true
}

// Discount computes the discount for the given pre-discount subtotal,
// capped so the total never goes below zero.
func (p *PromoCode) Discount(subtotal int64) int64 {
	var discount int64

	switch p.DiscountType {
	case DiscountTypePercentage:
		discount = subtotal * p.DiscountValue / 100
	case DiscountTypeFixed:
		discount = p.DiscountValue
	default:
		return 0
	}

	if discount < 0 {
		return 0
	}

	if discount > subtotal {
		return subtotal
	}

	return discount
}
