package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/lovedesignwork/skyrock-sub001/config"
	"github.com/lovedesignwork/skyrock-sub001/infras/otel"
	"github.com/lovedesignwork/skyrock-sub001/internal/domains/catalog/model"
	"github.com/lovedesignwork/skyrock-sub001/internal/domains/catalog/model/dto"
	"github.com/lovedesignwork/skyrock-sub001/internal/domains/catalog/repository"
	"github.com/lovedesignwork/skyrock-sub001/shared"
	"github.com/lovedesignwork/skyrock-sub001/shared/cache"
	"github.com/lovedesignwork/skyrock-sub001/shared/constant"
	gDto "github.com/lovedesignwork/skyrock-sub001/shared/dto"
	"github.com/lovedesignwork/skyrock-sub001/shared/failure"
)

const (
	cacheGetPackage  = "catalog:package"
	cacheGetPackages = "catalog:packages"
	cacheGetAddons   = "catalog:addons"
)

type Catalog interface {
	GetPackage(ctx context.Context, id string) (model.Package, error)
	GetAddonsByIDs(ctx context.Context, ids []string) ([]model.Addon, error)
	ListPackages(ctx context.Context) (dto.GetPackagesResponse, error)
	ListAddons(ctx context.Context) (dto.GetAddonsResponse, error)
}

type serviceImpl struct {
	packageRepo repository.Package
	addonRepo   repository.Addon
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(packageRepo repository.Package, addonRepo repository.Addon, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Catalog {
	return &serviceImpl{
		packageRepo: packageRepo,
		addonRepo:   addonRepo,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

// GetPackage returns the active package with the given id, or NotFound.
func (s *serviceImpl) GetPackage(ctx context.Context, id string) (res model.Package, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetPackage")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetPackage, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.packageRepo.Get(ctx, shared.FilterByID(id, model.PackageFieldID, model.PackageTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get package")

		return res, fmt.Errorf("failed to get package: %w", err)
	}

	if res.ID == constant.Empty {
		return res, failure.NotFound("package not found") // nolint:wrapcheck
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save package to cache")
		}
	}()

	return res, nil
}

// GetAddonsByIDs returns the addons for the given ids. A missing id is a
// NotFound so a stale wizard selection cannot silently drop a paid extra.
func (s *serviceImpl) GetAddonsByIDs(ctx context.Context, ids []string) (res []model.Addon, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAddonsByIDs")
	defer scope.End()
	defer scope.TraceIfError(err)

	if len(ids) == 0 {
		return nil, nil
	}

	// The same addon may appear more than once in a request, so the lookup
	// and the completeness check both run on the unique set.
	seen := make(map[string]struct{}, len(ids))
	uniqueIDs := make([]string, 0, len(ids))

	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}

		seen[id] = struct{}{}
		uniqueIDs = append(uniqueIDs, id)
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.AddonFieldID,
				Operator: gDto.FilterOperatorIn,
				Value:    uniqueIDs,
				Table:    model.AddonTableName,
			},
		},
	}

	res, err = s.addonRepo.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get addons")

		return nil, fmt.Errorf("failed to get addons: %w", err)
	}

	if len(res) != len(uniqueIDs) {
		return nil, failure.NotFound("addon not found") // nolint:wrapcheck
	}

	return res, nil
}

func (s *serviceImpl) ListPackages(ctx context.Context) (res dto.GetPackagesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListPackages")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = s.cache.Get(ctx, cacheGetPackages, &res)
	if err == nil {
		return res, nil
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.PackageFieldActive,
				Operator: gDto.FilterOperatorEq,
				Value:    true,
				Table:    model.PackageTableName,
			},
		},
	}

	models, err := s.packageRepo.GetAll(ctx, gDto.QueryParams{SortBy: model.PackageFieldName, SortDir: gDto.SortDirAsc}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to list packages")

		return res, fmt.Errorf("failed to list packages: %w", err)
	}

	res.FromModels(models)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheGetPackages, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save packages to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) ListAddons(ctx context.Context) (res dto.GetAddonsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListAddons")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = s.cache.Get(ctx, cacheGetAddons, &res)
	if err == nil {
		return res, nil
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.AddonFieldActive,
				Operator: gDto.FilterOperatorEq,
				Value:    true,
				Table:    model.AddonTableName,
			},
		},
	}

	models, err := s.addonRepo.GetAll(ctx, gDto.QueryParams{SortBy: model.AddonFieldName, SortDir: gDto.SortDirAsc}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to list addons")

		return res, fmt.Errorf("failed to list addons: %w", err)
	}

	res.FromModels(models)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheGetAddons, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save addons to cache")
		}
	}()

	return res, nil
}
