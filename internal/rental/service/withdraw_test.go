package service

import (
	"context"
	"testing"

	auditdomain "github.com/smallbiznis/derent/internal/audit/domain"
	"github.com/smallbiznis/derent/internal/rental/domain"
	tokendomain "github.com/smallbiznis/derent/internal/token/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rentOnce funds the renter and pushes one full-price rental through,
// returning the owner credit the rental produced.
func rentOnce(t *testing.T, f *fixture, deviceID int64, renter string) int64 {
	t.Helper()
	f.fund(t, renter, pricePerHour)
	order, err := f.rentals.Rent(context.Background(), domain.RentRequest{
		DeviceID: deviceID, Renter: renter, Payment: pricePerHour, Caller: renter,
	})
	require.NoError(t, err)
	return order.AmountPaid
}

func TestWithdraw(t *testing.T) {
	f := newFixture(t, 100)
	ctx := context.Background()

	device := f.createDevice(t, "creator1")
	earned := rentOnce(t, f, device.ID, "user1")

	err := f.rentals.Withdraw(ctx, domain.WithdrawRequest{Caller: "creator1", Destination: "creator1:wallet", Amount: earned + 1})
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)

	require.NoError(t, f.rentals.Withdraw(ctx, domain.WithdrawRequest{Caller: "creator1", Destination: "creator1:wallet", Amount: earned}))

	info, err := f.devices.OwnerInfo(ctx, "creator1")
	require.NoError(t, err)
	assert.Equal(t, earned, info.TotalEarned)
	assert.Equal(t, earned, info.TotalWithdrawn)

	assert.Equal(t, earned, f.balance(t, "creator1:wallet"))
	assert.Equal(t, pricePerHour-earned, f.balance(t, tokendomain.CustodyAccount))

	// The earned balance is spent; nothing further to withdraw.
	err = f.rentals.Withdraw(ctx, domain.WithdrawRequest{Caller: "creator1", Destination: "creator1:wallet", Amount: 1})
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)
}

func TestWithdraw_Validation(t *testing.T) {
	f := newFixture(t, 100)
	ctx := context.Background()

	err := f.rentals.Withdraw(ctx, domain.WithdrawRequest{Caller: "creator1", Destination: "", Amount: 5})
	assert.ErrorIs(t, err, domain.ErrInvalidDestination)

	err = f.rentals.Withdraw(ctx, domain.WithdrawRequest{Caller: "creator1", Destination: "creator1:wallet", Amount: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	err = f.rentals.Withdraw(ctx, domain.WithdrawRequest{Caller: "nobody", Destination: "nobody:wallet", Amount: 5})
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)
}

func TestSetFee(t *testing.T) {
	f := newFixture(t, 100)
	ctx := context.Background()

	assert.ErrorIs(t, f.rentals.SetFee(ctx, "user1", 200), domain.ErrNotAdmin)
	assert.ErrorIs(t, f.rentals.SetFee(ctx, "", 200), domain.ErrNotAdmin)
	assert.ErrorIs(t, f.rentals.SetFee(ctx, "admin", -1), domain.ErrInvalidFee)

	require.NoError(t, f.rentals.SetFee(ctx, "admin", 500))

	info, err := f.rentals.Platform(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(500), info.FeeBps)

	// The new rate applies to the next rental.
	device := f.createDevice(t, "creator1")
	earned := rentOnce(t, f, device.ID, "user1")
	assert.Equal(t, pricePerHour-pricePerHour*500/10000, earned)
}

func TestTakeFee(t *testing.T) {
	f := newFixture(t, 100)
	ctx := context.Background()

	device := f.createDevice(t, "creator1")
	earned := rentOnce(t, f, device.ID, "user1")
	fees := pricePerHour - earned

	err := f.rentals.TakeFee(ctx, domain.TakeFeeRequest{Caller: "user1", Destination: "treasury", Amount: fees})
	assert.ErrorIs(t, err, domain.ErrNotAdmin)

	err = f.rentals.TakeFee(ctx, domain.TakeFeeRequest{Caller: "admin", Destination: "", Amount: fees})
	assert.ErrorIs(t, err, domain.ErrInvalidDestination)

	err = f.rentals.TakeFee(ctx, domain.TakeFeeRequest{Caller: "admin", Destination: "treasury", Amount: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	err = f.rentals.TakeFee(ctx, domain.TakeFeeRequest{Caller: "admin", Destination: "treasury", Amount: fees + 1})
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)

	require.NoError(t, f.rentals.TakeFee(ctx, domain.TakeFeeRequest{Caller: "admin", Destination: "treasury", Amount: fees}))

	info, err := f.rentals.Platform(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), info.AvailableFees)
	assert.Equal(t, earned, info.TotalRaised)
	assert.Equal(t, fees, f.balance(t, "treasury"))

	logs, err := f.audits.List(ctx, auditdomain.ListAuditLogRequest{Action: "platform.fee_withdrawn"})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "admin", logs[0].Actor)
	assert.Equal(t, "platform_state", logs[0].TargetType)
}
