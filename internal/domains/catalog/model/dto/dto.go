package dto

import (
	"github.com/lovedesignwork/skyrock-sub001/internal/domains/catalog/model"
	gDto "github.com/lovedesignwork/skyrock-sub001/shared/dto"
)

type PackageResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	Price           int64  `json:"price"`
	DurationMinutes int    `json:"duration_minutes"`
	Active          bool   `json:"active"`
	gDto.Metadata
}

func (r *PackageResponse) FromModel(model model.Package) {
	r.ID = model.ID
	r.Name = model.Name
	r.Description = model.Description
	r.Price = model.Price
	r.DurationMinutes = model.DurationMinutes
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetPackagesResponse struct {
	Packages []PackageResponse `json:"packages"`
}

func (r *GetPackagesResponse) FromModels(models []model.Package) {
	r.Packages = make([]PackageResponse, len(models))
	for i, mod := range models {
		r.Packages[i].FromModel(mod)
	}
}

type AddonResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Price  int64  `json:"price"`
	Active bool   `json:"active"`
}

func (r *AddonResponse) FromModel(model model.Addon) {
	r.ID = model.ID
	r.Name = model.Name
	r.Price = model.Price
	r.Active = model.Active
}

type GetAddonsResponse struct {
	Addons []AddonResponse `json:"addons"`
}

func (r *GetAddonsResponse) FromModels(models []model.Addon) {
	r.Addons = make([]AddonResponse, len(models))
	for i, mod := range models {
		r.Addons[i].FromModel(mod)
	}
}
