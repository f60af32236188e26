package service

import (
	"context"
	"testing"
	"time"

	devicedomain "github.com/smallbiznis/derent/internal/device/domain"
	"github.com/smallbiznis/derent/internal/rental/domain"
	tokendomain "github.com/smallbiznis/derent/internal/token/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMarketplaceLifecycle walks the whole marketplace flow: two
// creators register devices, two users rent them, creators withdraw
// their earnings and the admin collects the accrued fees.
func TestMarketplaceLifecycle(t *testing.T) {
	f := newFixture(t, 100)
	ctx := context.Background()

	d1, err := f.devices.Create(ctx, devicedomain.CreateDeviceRequest{Owner: "creator1", ContentID: "cam-east", Category: 1, PricePerHour: pricePerHour})
	require.NoError(t, err)
	d2, err := f.devices.Create(ctx, devicedomain.CreateDeviceRequest{Owner: "creator2", ContentID: "cam-west", Category: 1, PricePerHour: 2 * pricePerHour})
	require.NoError(t, err)

	f.fund(t, "user1", 10*pricePerHour)
	f.fund(t, "user2", 10*pricePerHour)

	o1, err := f.rentals.Rent(ctx, domain.RentRequest{DeviceID: d1.ID, Renter: "user1", Payment: pricePerHour, Caller: "user1"})
	require.NoError(t, err)

	f.clk.Advance(time.Hour)
	o2, err := f.rentals.Rent(ctx, domain.RentRequest{DeviceID: d2.ID, Renter: "user2", Payment: 2 * pricePerHour, Caller: "user2"})
	require.NoError(t, err)

	f.clk.Advance(time.Hour)
	o3, err := f.rentals.Rent(ctx, domain.RentRequest{DeviceID: d1.ID, Renter: "user2", Payment: pricePerHour, Caller: "user2"})
	require.NoError(t, err)

	assert.Equal(t, []int64{1, 2, 3}, []int64{o1.ID, o2.ID, o3.ID})

	latest, err := f.rentals.LatestOrderID(ctx)
	require.NoError(t, err)
	assert.Equal(t, o3.ID, latest)

	fee1 := pricePerHour / 100
	fee2 := 2 * pricePerHour / 100
	creator1Earned := 2 * (pricePerHour - fee1)
	creator2Earned := 2*pricePerHour - fee2

	info1, err := f.devices.OwnerInfo(ctx, "creator1")
	require.NoError(t, err)
	assert.Equal(t, creator1Earned, info1.TotalEarned)
	assert.Equal(t, []int64{d1.ID}, info1.DeviceIDs)

	info2, err := f.devices.OwnerInfo(ctx, "creator2")
	require.NoError(t, err)
	assert.Equal(t, creator2Earned, info2.TotalEarned)

	user2, err := f.rentals.UserInfo(ctx, "user2")
	require.NoError(t, err)
	assert.Equal(t, 3*pricePerHour, user2.TotalSpent)
	require.Len(t, user2.Orders, 2)
	assert.Equal(t, []int64{o2.ID, o3.ID}, []int64{user2.Orders[0].ID, user2.Orders[1].ID})

	require.NoError(t, f.rentals.Withdraw(ctx, domain.WithdrawRequest{Caller: "creator1", Destination: "creator1:wallet", Amount: creator1Earned}))
	require.NoError(t, f.rentals.Withdraw(ctx, domain.WithdrawRequest{Caller: "creator2", Destination: "creator2:wallet", Amount: creator2Earned}))

	totalFees := 2*fee1 + fee2
	require.NoError(t, f.rentals.TakeFee(ctx, domain.TakeFeeRequest{Caller: "admin", Destination: "treasury", Amount: totalFees}))

	// Every token paid in has been paid back out.
	assert.Equal(t, int64(0), f.balance(t, tokendomain.CustodyAccount))
	assert.Equal(t, creator1Earned, f.balance(t, "creator1:wallet"))
	assert.Equal(t, creator2Earned, f.balance(t, "creator2:wallet"))
	assert.Equal(t, totalFees, f.balance(t, "treasury"))

	platform, err := f.rentals.Platform(ctx)
	require.NoError(t, err)
	assert.Equal(t, creator1Earned+creator2Earned, platform.TotalRaised)
	assert.Equal(t, int64(0), platform.AvailableFees)
	assert.Equal(t, int64(3), platform.LastOrderID)
}
