package seed

import (
	"fmt"
	"strconv"
	"strings"

	platformdomain "github.com/smallbiznis/derent/internal/platform/domain"
	"gorm.io/gorm"
)

// EnsurePlatformState inserts the singleton bookkeeping row when it
// does not exist yet. The configured fee only applies to fresh
// deployments; afterwards the persisted value wins.
func EnsurePlatformState(conn *gorm.DB, feeBps int64) error {
	if feeBps < 0 {
		return platformdomain.ErrInvalidFee
	}
	return conn.Exec(
		`INSERT INTO platform_state (id, last_device_id, last_order_id, fee_bps, total_raised, available_fees, updated_at)
		 VALUES (?, 0, 0, ?, 0, 0, CURRENT_TIMESTAMP)
		 ON CONFLICT (id) DO NOTHING`,
		platformdomain.StateID,
		feeBps,
	).Error
}

// SeedTokenAccounts funds token accounts from an "account:amount,..."
// spec. Dev convenience only; production deployments integrate a real
// token ledger instead.
func SeedTokenAccounts(conn *gorm.DB, spec string) error {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil
	}

	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		account, raw, ok := strings.Cut(part, ":")
		if !ok {
			return fmt.Errorf("invalid token seed entry %q", part)
		}
		amount, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil || amount < 0 {
			return fmt.Errorf("invalid token seed amount %q", raw)
		}
		if err := conn.Exec(
			`INSERT INTO token_accounts (account, balance, updated_at)
			 VALUES (?, ?, CURRENT_TIMESTAMP)
			 ON CONFLICT (account) DO NOTHING`,
			strings.TrimSpace(account),
			amount,
		).Error; err != nil {
			return err
		}
	}
	return nil
}
