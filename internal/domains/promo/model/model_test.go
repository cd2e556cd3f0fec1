package model_test

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/lovedesignwork/skyrock-sub001/internal/domains/promo/model"
)

func TestPromoCodeUsable(t *testing.T) {
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		promo model.PromoCode
		want  bool
	}{
		{
			name:  "active without window or cap",
			promo: model.PromoCode{Active: true},
			want:  true,
		},
		{
			name:  "inactive",
			promo: model.PromoCode{Active: false},
			want:  false,
		},
		{
			name:  "usage cap reached",
			promo: model.PromoCode{Active: true, MaxUses: 5, UsedCount: 5},
			want:  false,
		},
		{
			name:  "below usage cap",
			promo: model.PromoCode{Active: true, MaxUses: 5, UsedCount: 4},
			want:  true,
		},
		{
			name: "before validity window",
			promo: model.PromoCode{
				Active:    true,
				ValidFrom: sql.NullTime{Time: now.Add(time.Hour), Valid: true},
			},
			want: false,
		},
		{
			name: "after validity window",
			promo: model.PromoCode{
				Active:     true,
				ValidUntil: sql.NullTime{Time: now.Add(-time.Hour), Valid: true},
			},
			want: false,
		},
		{
			name: "inside validity window",
			promo: model.PromoCode{
				Active:     true,
				ValidFrom:  sql.NullTime{Time: now.Add(-time.Hour), Valid: true},
				ValidUntil: sql.NullTime{Time: now.Add(time.Hour), Valid: true},
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.promo.Usable(now))
		})
	}
}

func TestPromoCodeDiscount(t *testing.T) {
	tests := []struct {
		name     string
		promo    model.PromoCode
		subtotal int64
		want     int64
	}{
		{
			name:     "ten percent",
			promo:    model.PromoCode{DiscountType: model.DiscountTypePercentage, DiscountValue: 10},
			subtotal: 7170,
			want:     717,
		},
		{
			name:     "percentage truncates",
			promo:    model.PromoCode{DiscountType: model.DiscountTypePercentage, DiscountValue: 10},
			subtotal: 2955,
			want:     295,
		},
		{
			name:     "fixed amount",
			promo:    model.PromoCode{DiscountType: model.DiscountTypeFixed, DiscountValue: 500},
			subtotal: 7170,
			want:     500,
		},
		{
			name:     "fixed amount capped at subtotal",
			promo:    model.PromoCode{DiscountType: model.DiscountTypeFixed, DiscountValue: 10000},
			subtotal: 7170,
			want:     7170,
		},
		{
			name:     "unknown type gives nothing",
			promo:    model.PromoCode{DiscountType: "bogus", DiscountValue: 10},
			subtotal: 7170,
			want:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.promo.Discount(tt.subtotal))
		})
	}
}
