package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/lovedesignwork/skyrock-sub001/config"
	otelMocks "github.com/lovedesignwork/skyrock-sub001/infras/otel/mocks"
	catalogMocks "github.com/lovedesignwork/skyrock-sub001/internal/domains/catalog/mocks"
	"github.com/lovedesignwork/skyrock-sub001/internal/domains/catalog/model"
	"github.com/lovedesignwork/skyrock-sub001/internal/domains/catalog/service"
	"github.com/lovedesignwork/skyrock-sub001/shared/cache"
	cacheMocks "github.com/lovedesignwork/skyrock-sub001/shared/cache/mocks"
	"github.com/lovedesignwork/skyrock-sub001/shared/failure"
)

type catalogFixture struct {
	packageRepo *catalogMocks.MockPackage
	addonRepo   *catalogMocks.MockAddon
	cache       *cacheMocks.MockRedisCache
	service     service.Catalog
}

func newCatalogFixture(t *testing.T) catalogFixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	packageRepo := catalogMocks.NewMockPackage(ctrl)
	addonRepo := catalogMocks.NewMockAddon(ctrl)
	redisCache := cacheMocks.NewMockRedisCache(ctrl)

	return catalogFixture{
		packageRepo: packageRepo,
		addonRepo:   addonRepo,
		cache:       redisCache,
		service:     service.New(packageRepo, addonRepo, &config.Config{}, redisCache, otelMocks.NewOtel()),
	}
}

func TestGetPackage(t *testing.T) {
	packageID := "0d4f0c4e-3a84-4f3e-b9b7-57d2a1f6f111"

	t.Run("returns package on cache miss", func(t *testing.T) {
		fixture := newCatalogFixture(t)

		fixture.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
		fixture.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
		fixture.packageRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Package{ID: packageID, Name: "Skyline Rope Course", Price: 1890, Active: true}, nil)

		res, err := fixture.service.GetPackage(context.Background(), packageID)

		assert.NoError(t, err)
		assert.Equal(t, packageID, res.ID)
		assert.Equal(t, int64(1890), res.Price)
	})

	t.Run("returns not found for unknown id", func(t *testing.T) {
		fixture := newCatalogFixture(t)

		fixture.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
		fixture.packageRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Package{}, nil)

		_, err := fixture.service.GetPackage(context.Background(), packageID)

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})

	t.Run("propagates repository error", func(t *testing.T) {
		fixture := newCatalogFixture(t)

		fixture.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
		fixture.packageRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Package{}, errors.New("connection refused"))

		_, err := fixture.service.GetPackage(context.Background(), packageID)

		assert.Error(t, err)
	})
}

func TestGetAddonsByIDs(t *testing.T) {
	addonA := "3f1c8a2b-9d64-4c1e-8a7f-1b2c3d4e5f01"
	addonB := "7e2d9b3c-0e75-4d2f-9b80-2c3d4e5f6a02"

	t.Run("returns addons for all ids", func(t *testing.T) {
		fixture := newCatalogFixture(t)

		fixture.addonRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Addon{
				{ID: addonA, Name: "GoPro Rental", Price: 600},
				{ID: addonB, Name: "Lunch Set", Price: 350},
			}, nil)

		res, err := fixture.service.GetAddonsByIDs(context.Background(), []string{addonA, addonB})

		assert.NoError(t, err)
		assert.Len(t, res, 2)
	})

	t.Run("returns not found when an id is missing", func(t *testing.T) {
		fixture := newCatalogFixture(t)

		fixture.addonRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Addon{{ID: addonA, Name: "GoPro Rental", Price: 600}}, nil)

		_, err := fixture.service.GetAddonsByIDs(context.Background(), []string{addonA, addonB})

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})

	t.Run("deduplicates repeated ids", func(t *testing.T) {
		fixture := newCatalogFixture(t)

		fixture.addonRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Addon{{ID: addonA, Name: "GoPro Rental", Price: 600}}, nil)

		res, err := fixture.service.GetAddonsByIDs(context.Background(), []string{addonA, addonA, addonA})

		assert.NoError(t, err)
		assert.Len(t, res, 1)
	})

	t.Run("returns nil for empty id list", func(t *testing.T) {
		fixture := newCatalogFixture(t)

		res, err := fixture.service.GetAddonsByIDs(context.Background(), nil)

		assert.NoError(t, err)
		assert.Nil(t, res)
	})
}
