package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/derent/internal/migration"
	"github.com/smallbiznis/derent/internal/token/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestLedger(t *testing.T) (domain.Ledger, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, migration.AutoMigrate(db))

	return NewLedger(Params{Log: zap.NewNop()}), db
}

func fundAccount(t *testing.T, db *gorm.DB, account string, amount int64) {
	t.Helper()
	require.NoError(t, db.Exec(
		`INSERT INTO token_accounts (account, balance, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)`,
		account, amount,
	).Error)
}

func TestTransferFrom(t *testing.T) {
	ledger, db := newTestLedger(t)
	ctx := context.Background()

	fundAccount(t, db, "alice", 1_000)

	require.NoError(t, ledger.TransferFrom(ctx, db, "alice", "bob", 400))

	aliceBalance, err := ledger.BalanceOf(ctx, db, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(600), aliceBalance)

	// bob's account is created on first credit.
	bobBalance, err := ledger.BalanceOf(ctx, db, "bob")
	require.NoError(t, err)
	assert.Equal(t, int64(400), bobBalance)

	require.NoError(t, ledger.TransferFrom(ctx, db, "bob", "alice", 100))
	bobBalance, err = ledger.BalanceOf(ctx, db, "bob")
	require.NoError(t, err)
	assert.Equal(t, int64(300), bobBalance)
}

func TestTransferFrom_InsufficientBalance(t *testing.T) {
	ledger, db := newTestLedger(t)
	ctx := context.Background()

	fundAccount(t, db, "alice", 100)

	err := ledger.TransferFrom(ctx, db, "alice", "bob", 101)
	assert.ErrorIs(t, err, domain.ErrTransferFailed)

	// An unknown source account fails the same way.
	err = ledger.TransferFrom(ctx, db, "ghost", "bob", 1)
	assert.ErrorIs(t, err, domain.ErrTransferFailed)

	aliceBalance, err := ledger.BalanceOf(ctx, db, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(100), aliceBalance)

	bobBalance, err := ledger.BalanceOf(ctx, db, "bob")
	require.NoError(t, err)
	assert.Equal(t, int64(0), bobBalance)
}

func TestTransferFrom_Validation(t *testing.T) {
	ledger, db := newTestLedger(t)
	ctx := context.Background()

	assert.ErrorIs(t, ledger.TransferFrom(ctx, db, "alice", "bob", 0), domain.ErrInvalidAmount)
	assert.ErrorIs(t, ledger.TransferFrom(ctx, db, "alice", "bob", -5), domain.ErrInvalidAmount)
	assert.ErrorIs(t, ledger.TransferFrom(ctx, db, "", "bob", 1), domain.ErrInvalidAccount)
	assert.ErrorIs(t, ledger.TransferFrom(ctx, db, "alice", "", 1), domain.ErrInvalidAccount)
	assert.ErrorIs(t, ledger.TransferFrom(ctx, db, "alice", "alice", 1), domain.ErrInvalidAccount)
}

func TestTransfer_FromCustody(t *testing.T) {
	ledger, db := newTestLedger(t)
	ctx := context.Background()

	fundAccount(t, db, domain.CustodyAccount, 500)

	require.NoError(t, ledger.Transfer(ctx, db, "carol", 500))

	custody, err := ledger.BalanceOf(ctx, db, domain.CustodyAccount)
	require.NoError(t, err)
	assert.Equal(t, int64(0), custody)

	carol, err := ledger.BalanceOf(ctx, db, "carol")
	require.NoError(t, err)
	assert.Equal(t, int64(500), carol)

	assert.ErrorIs(t, ledger.Transfer(ctx, db, "carol", 1), domain.ErrTransferFailed)
}
