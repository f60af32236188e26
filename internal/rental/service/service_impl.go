package service

import (
	"context"
	"strconv"
	"strings"

	auditdomain "github.com/smallbiznis/derent/internal/audit/domain"
	"github.com/smallbiznis/derent/internal/clock"
	"github.com/smallbiznis/derent/internal/config"
	devicedomain "github.com/smallbiznis/derent/internal/device/domain"
	obsmetrics "github.com/smallbiznis/derent/internal/observability/metrics"
	platformdomain "github.com/smallbiznis/derent/internal/platform/domain"
	"github.com/smallbiznis/derent/internal/rental/domain"
	tokendomain "github.com/smallbiznis/derent/internal/token/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB           *gorm.DB
	Log          *zap.Logger
	Cfg          config.Config
	Clock        clock.Clock
	Repo         domain.Repository
	DeviceRepo   devicedomain.Repository
	PlatformRepo platformdomain.Repository
	Token        tokendomain.Ledger
	AuditSvc     auditdomain.Service
	ObsMetrics   *obsmetrics.Metrics `optional:"true"`
}

type Service struct {
	db           *gorm.DB
	log          *zap.Logger
	cfg          config.Config
	clock        clock.Clock
	repo         domain.Repository
	deviceRepo   devicedomain.Repository
	platformRepo platformdomain.Repository
	token        tokendomain.Ledger
	auditSvc     auditdomain.Service
	obsMetrics   *obsmetrics.Metrics
}

func NewService(p Params) domain.Service {
	return &Service{
		db:           p.DB,
		log:          p.Log.Named("rental.service"),
		cfg:          p.Cfg,
		clock:        p.Clock,
		repo:         p.Repo,
		deviceRepo:   p.DeviceRepo,
		platformRepo: p.PlatformRepo,
		token:        p.Token,
		auditSvc:     p.AuditSvc,
		obsMetrics:   p.ObsMetrics,
	}
}

func (s *Service) Rent(ctx context.Context, req domain.RentRequest) (domain.Order, error) {
	renter := strings.TrimSpace(req.Renter)
	if renter == "" {
		return domain.Order{}, domain.ErrInvalidRenter
	}
	if req.Payment == 0 {
		return domain.Order{}, domain.ErrZeroPayment
	}
	if req.Payment < 0 || req.Payment > domain.MaxPayment {
		return domain.Order{}, domain.ErrAmountTooLarge
	}
	if req.DurationSeconds < 0 {
		return domain.Order{}, domain.ErrInvalidDuration
	}

	duration := req.DurationSeconds
	if duration == 0 {
		duration = s.cfg.DefaultRentalSeconds
	}

	var (
		order     domain.Order
		feeAmount int64
	)
	err := s.db.Transaction(func(tx *gorm.DB) error {
		device, err := s.deviceRepo.FindByID(ctx, tx, req.DeviceID)
		if err != nil {
			return err
		}
		if device == nil {
			return devicedomain.ErrNotFound
		}
		if !device.Active {
			return domain.ErrDeviceInactive
		}

		state, err := s.platformRepo.Get(ctx, tx)
		if err != nil {
			return err
		}

		fee, ownerCredit := domain.SplitFee(req.Payment, state.FeeBps)
		feeAmount = fee

		// Funds move inside the same transaction; a rejected transfer
		// aborts every mutation below.
		if err := s.token.TransferFrom(ctx, tx, renter, tokendomain.CustodyAccount, req.Payment); err != nil {
			return err
		}

		orderID, err := s.platformRepo.NextOrderID(ctx, tx)
		if err != nil {
			return err
		}

		start := s.clock.Now().Unix()
		order = domain.Order{
			ID:             orderID,
			DeviceID:       device.ID,
			AmountPaid:     ownerCredit,
			StartTimestamp: start,
			EndTimestamp:   start + duration,
			Renter:         renter,
			CreatedAt:      s.clock.Now(),
		}
		if err := s.repo.Insert(ctx, tx, &order); err != nil {
			return err
		}

		if err := s.deviceRepo.SetCurrentOrder(ctx, tx, device.ID, orderID); err != nil {
			return err
		}
		if err := s.deviceRepo.EnsureOwner(ctx, tx, device.Owner); err != nil {
			return err
		}
		if err := s.deviceRepo.CreditOwner(ctx, tx, device.Owner, ownerCredit); err != nil {
			return err
		}
		if err := s.platformRepo.AccrueRental(ctx, tx, ownerCredit, fee); err != nil {
			return err
		}
		if err := s.repo.EnsureUser(ctx, tx, renter); err != nil {
			return err
		}
		return s.repo.AddUserSpent(ctx, tx, renter, req.Payment)
	})
	if err != nil {
		return domain.Order{}, err
	}

	s.obsMetrics.RecordOrder(order.AmountPaid, feeAmount)
	s.audit(ctx, orFallback(req.Caller, renter), "rental.created", "order", strconv.FormatInt(order.ID, 10), map[string]any{
		"device_id":   order.DeviceID,
		"renter":      order.Renter,
		"amount_paid": order.AmountPaid,
		"fee_amount":  feeAmount,
	})
	s.log.Info("device rented",
		zap.Int64("order_id", order.ID),
		zap.Int64("device_id", order.DeviceID),
		zap.String("renter", order.Renter),
		zap.Int64("amount_paid", order.AmountPaid),
		zap.Int64("fee_amount", feeAmount),
	)
	return order, nil
}

func (s *Service) Withdraw(ctx context.Context, req domain.WithdrawRequest) error {
	caller := strings.TrimSpace(req.Caller)
	destination := strings.TrimSpace(req.Destination)
	if destination == "" {
		return domain.ErrInvalidDestination
	}
	if req.Amount <= 0 {
		return domain.ErrInvalidAmount
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.deviceRepo.WithdrawOwner(ctx, tx, caller, req.Amount); err != nil {
			if err == devicedomain.ErrInsufficientBalance {
				return domain.ErrInsufficientBalance
			}
			return err
		}
		return s.token.Transfer(ctx, tx, destination, req.Amount)
	})
	if err != nil {
		return err
	}

	s.obsMetrics.RecordWithdrawal()
	s.audit(ctx, caller, "rental.withdrawal", "owner_account", caller, map[string]any{
		"caller":      caller,
		"destination": destination,
		"amount":      req.Amount,
	})
	s.log.Info("owner withdrawal",
		zap.String("caller", caller),
		zap.String("destination", destination),
		zap.Int64("amount", req.Amount),
	)
	return nil
}

func (s *Service) SetFee(ctx context.Context, caller string, feeBps int64) error {
	if !s.isAdmin(caller) {
		return domain.ErrNotAdmin
	}
	if feeBps < 0 {
		return domain.ErrInvalidFee
	}

	if err := s.platformRepo.SetFee(ctx, s.db, feeBps); err != nil {
		return err
	}

	s.audit(ctx, caller, "platform.fee_updated", "platform_state", "", map[string]any{
		"fee_bps": feeBps,
	})
	s.log.Info("platform fee updated", zap.Int64("fee_bps", feeBps))
	return nil
}

func (s *Service) TakeFee(ctx context.Context, req domain.TakeFeeRequest) error {
	if !s.isAdmin(req.Caller) {
		return domain.ErrNotAdmin
	}
	destination := strings.TrimSpace(req.Destination)
	if destination == "" {
		return domain.ErrInvalidDestination
	}
	if req.Amount <= 0 {
		return domain.ErrInvalidAmount
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.platformRepo.TakeFees(ctx, tx, req.Amount); err != nil {
			if err == platformdomain.ErrInsufficientFees {
				return domain.ErrInsufficientBalance
			}
			return err
		}
		return s.token.Transfer(ctx, tx, destination, req.Amount)
	})
	if err != nil {
		return err
	}

	s.obsMetrics.RecordFeeWithdrawal()
	s.audit(ctx, req.Caller, "platform.fee_withdrawn", "platform_state", "", map[string]any{
		"caller":      req.Caller,
		"destination": destination,
		"amount":      req.Amount,
	})
	s.log.Info("fee withdrawal",
		zap.String("caller", req.Caller),
		zap.String("destination", destination),
		zap.Int64("amount", req.Amount),
	)
	return nil
}

func (s *Service) GetOrder(ctx context.Context, id int64) (domain.Order, error) {
	order, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Order{}, err
	}
	if order == nil {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return *order, nil
}

func (s *Service) UserInfo(ctx context.Context, account string) (domain.UserInfo, error) {
	account = strings.TrimSpace(account)
	if account == "" {
		return domain.UserInfo{}, domain.ErrInvalidRenter
	}

	info := domain.UserInfo{Account: account, Orders: []domain.Order{}}

	user, err := s.repo.FindUser(ctx, s.db, account)
	if err != nil {
		return domain.UserInfo{}, err
	}
	if user != nil {
		info.TotalSpent = user.TotalSpent
	}

	orders, err := s.repo.ListByRenter(ctx, s.db, account)
	if err != nil {
		return domain.UserInfo{}, err
	}
	if orders != nil {
		info.Orders = orders
	}
	return info, nil
}

func (s *Service) LatestOrderID(ctx context.Context) (int64, error) {
	state, err := s.platformRepo.Get(ctx, s.db)
	if err != nil {
		return 0, err
	}
	return state.LastOrderID, nil
}

func (s *Service) Platform(ctx context.Context) (domain.PlatformInfo, error) {
	state, err := s.platformRepo.Get(ctx, s.db)
	if err != nil {
		return domain.PlatformInfo{}, err
	}
	return domain.PlatformInfo{
		LastOrderID:   state.LastOrderID,
		FeeBps:        state.FeeBps,
		TotalRaised:   state.TotalRaised,
		AvailableFees: state.AvailableFees,
	}, nil
}

func (s *Service) isAdmin(caller string) bool {
	caller = strings.TrimSpace(caller)
	return caller != "" && caller == s.cfg.AdminAccount
}

// audit records an observable event after commit; failures are logged,
// never propagated into the already-committed operation.
func (s *Service) audit(ctx context.Context, actor, action, targetType, targetID string, metadata map[string]any) {
	if s.auditSvc == nil {
		return
	}
	if err := s.auditSvc.AuditLog(ctx, actor, action, targetType, targetID, metadata); err != nil {
		s.log.Warn("failed to write audit log", zap.String("action", action), zap.Error(err))
	}
}

func orFallback(value, fallback string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	return value
}
