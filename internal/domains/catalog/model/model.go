package model

import (
	"github.com/lovedesignwork/skyrock-sub001/shared/model"
)

const (
	PackageTableName  = "packages"
	PackageEntityName = "package"

	PackageFieldID     = "id"
	PackageFieldName   = "name"
	PackageFieldActive = "active"
)

const (
	AddonTableName  = "addons"
	AddonEntityName = "addon"

	AddonFieldID     = "id"
	AddonFieldName   = "name"
	AddonFieldActive = "active"
)

// Package is an adventure package sold per guest. Price is a whole amount
// in the configured currency.
type Package struct {
	ID              string `db:"id"`
	Name            string `db:"name"`
	Description     string `db:"description"`
	Price           int64  `db:"price"`
	DurationMinutes int    `db:"duration_minutes"`
	Active          bool   `db:"active"`
	model.Metadata
}

// Addon is a purchasable extra (photo pack, gear rental). Its price is
// snapshotted onto the booking's addon lines at booking time.
type Addon struct {
	ID     string `db:"id"`
	Name   string `db:"name"`
	Price  int64  `db:"price"`
	Active bool   `db:"active"`
	model.Metadata
}
