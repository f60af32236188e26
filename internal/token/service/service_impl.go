package service

import (
	"context"
	"strings"

	"github.com/smallbiznis/derent/internal/token/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	Log *zap.Logger
}

// Ledger is the database-backed token ledger used in self-hosted mode.
// It mirrors the transfer semantics of a standard fungible-asset
// ledger: debits fail when the source balance is short, credits create
// the destination account on first use.
type Ledger struct {
	log *zap.Logger
}

func NewLedger(p Params) domain.Ledger {
	return &Ledger{
		log: p.Log.Named("token.ledger"),
	}
}

func (l *Ledger) TransferFrom(ctx context.Context, db *gorm.DB, from, to string, amount int64) error {
	if amount <= 0 {
		return domain.ErrInvalidAmount
	}
	from = strings.TrimSpace(from)
	to = strings.TrimSpace(to)
	if from == "" || to == "" || from == to {
		return domain.ErrInvalidAccount
	}

	if err := l.debit(ctx, db, from, amount); err != nil {
		return err
	}
	return l.credit(ctx, db, to, amount)
}

func (l *Ledger) Transfer(ctx context.Context, db *gorm.DB, to string, amount int64) error {
	return l.TransferFrom(ctx, db, domain.CustodyAccount, to, amount)
}

func (l *Ledger) BalanceOf(ctx context.Context, db *gorm.DB, account string) (int64, error) {
	var balance int64
	err := db.WithContext(ctx).Raw(
		`SELECT COALESCE(SUM(balance), 0) FROM token_accounts WHERE account = ?`,
		strings.TrimSpace(account),
	).Scan(&balance).Error
	if err != nil {
		return 0, err
	}
	return balance, nil
}

func (l *Ledger) debit(ctx context.Context, db *gorm.DB, account string, amount int64) error {
	result := db.WithContext(ctx).Exec(
		`UPDATE token_accounts
		 SET balance = balance - ?, updated_at = CURRENT_TIMESTAMP
		 WHERE account = ? AND balance >= ?`,
		amount,
		account,
		amount,
	)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		l.log.Warn("token debit rejected",
			zap.String("account", account),
			zap.Int64("amount", amount),
		)
		return domain.ErrTransferFailed
	}
	return nil
}

func (l *Ledger) credit(ctx context.Context, db *gorm.DB, account string, amount int64) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO token_accounts (account, balance, updated_at)
		 VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (account) DO UPDATE SET balance = token_accounts.balance + ?, updated_at = CURRENT_TIMESTAMP`,
		account,
		amount,
		amount,
	).Error
}
