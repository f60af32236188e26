package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/derent/internal/clock"
	"github.com/smallbiznis/derent/internal/device/domain"
	devicerepo "github.com/smallbiznis/derent/internal/device/repository"
	"github.com/smallbiznis/derent/internal/migration"
	platformrepo "github.com/smallbiznis/derent/internal/platform/repository"
	"github.com/smallbiznis/derent/internal/seed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (domain.Service, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, migration.AutoMigrate(db))
	require.NoError(t, seed.EnsurePlatformState(db, 100))

	svc := NewService(Params{
		DB:           db,
		Log:          zap.NewNop(),
		Clock:        clock.NewFakeClock(time.Unix(1_700_000_000, 0)),
		Repo:         devicerepo.Provide(),
		PlatformRepo: platformrepo.Provide(),
	})
	return svc, db
}

func TestCreateDevice_AssignsSequentialIDs(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	d1, err := svc.Create(ctx, domain.CreateDeviceRequest{Owner: "creator1", ContentID: "cid-1a", Category: 1, PricePerHour: 10_000_000})
	require.NoError(t, err)
	d2, err := svc.Create(ctx, domain.CreateDeviceRequest{Owner: "creator2", ContentID: "cid-2a", Category: 2, PricePerHour: 10_000_000})
	require.NoError(t, err)
	d3, err := svc.Create(ctx, domain.CreateDeviceRequest{Owner: "creator1", ContentID: "cid-1b", Category: 3, PricePerHour: 10_000_000})
	require.NoError(t, err)
	d4, err := svc.Create(ctx, domain.CreateDeviceRequest{Owner: "creator2", ContentID: "cid-2b", Category: 4, PricePerHour: 10_000_000})
	require.NoError(t, err)

	assert.Equal(t, int64(1), d1.ID)
	assert.Equal(t, int64(2), d2.ID)
	assert.Equal(t, int64(3), d3.ID)
	assert.Equal(t, int64(4), d4.ID)

	assert.True(t, d1.Active)
	assert.Equal(t, domain.NoOrder, d1.CurrentOrderID)

	ids, err := svc.ListIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3, 4}, ids)

	info, err := svc.OwnerInfo(ctx, "creator1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), info.TotalEarned)
	assert.Equal(t, int64(0), info.TotalWithdrawn)
	assert.Equal(t, []int64{1, 3}, info.DeviceIDs)
}

func TestCreateDevice_RejectsZeroPrice(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateDeviceRequest{Owner: "creator1", ContentID: "cid", Category: 1, PricePerHour: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)

	_, err = svc.Create(ctx, domain.CreateDeviceRequest{Owner: "creator1", ContentID: "cid", Category: 1, PricePerHour: -5})
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)

	ids, err := svc.ListIDs(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestModifyDevice(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateDeviceRequest{Owner: "creator1", ContentID: "cid", Category: 7, PricePerHour: 10_000_000})
	require.NoError(t, err)

	err = svc.Modify(ctx, domain.ModifyDeviceRequest{DeviceID: created.ID, Caller: "creator2", PricePerHour: 5, Active: false})
	assert.ErrorIs(t, err, domain.ErrNotOwner)

	err = svc.Modify(ctx, domain.ModifyDeviceRequest{DeviceID: created.ID, Caller: "creator1", PricePerHour: 0, Active: false})
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)

	err = svc.Modify(ctx, domain.ModifyDeviceRequest{DeviceID: created.ID, Caller: "creator1", PricePerHour: 30_000_000, Active: false})
	require.NoError(t, err)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(30_000_000), got.PricePerHour)
	assert.False(t, got.Active)

	// Content, category and owner never move through the modify surface.
	assert.Equal(t, "cid", got.ContentID)
	assert.Equal(t, int32(7), got.Category)
	assert.Equal(t, "creator1", got.Owner)
}

func TestModifyDevice_NotFound(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.Modify(context.Background(), domain.ModifyDeviceRequest{DeviceID: 42, Caller: "creator1", PricePerHour: 1, Active: true})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOwnerInfo_UnknownOwner(t *testing.T) {
	svc, _ := newTestService(t)

	info, err := svc.OwnerInfo(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Equal(t, int64(0), info.TotalEarned)
	assert.Equal(t, int64(0), info.TotalWithdrawn)
	assert.Empty(t, info.DeviceIDs)
}
