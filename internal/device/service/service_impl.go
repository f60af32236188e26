package service

import (
	"context"
	"strings"

	"github.com/smallbiznis/derent/internal/clock"
	"github.com/smallbiznis/derent/internal/device/domain"
	platformdomain "github.com/smallbiznis/derent/internal/platform/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB           *gorm.DB
	Log          *zap.Logger
	Clock        clock.Clock
	Repo         domain.Repository
	PlatformRepo platformdomain.Repository
}

type Service struct {
	db           *gorm.DB
	log          *zap.Logger
	clock        clock.Clock
	repo         domain.Repository
	platformRepo platformdomain.Repository
}

func NewService(p Params) domain.Service {
	return &Service{
		db:           p.DB,
		log:          p.Log.Named("device.service"),
		clock:        p.Clock,
		repo:         p.Repo,
		platformRepo: p.PlatformRepo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateDeviceRequest) (domain.Device, error) {
	owner := strings.TrimSpace(req.Owner)
	if owner == "" {
		return domain.Device{}, domain.ErrInvalidOwner
	}
	if req.PricePerHour <= 0 {
		return domain.Device{}, domain.ErrInvalidPrice
	}

	now := s.clock.Now()
	device := domain.Device{
		Owner:          owner,
		ContentID:      strings.TrimSpace(req.ContentID),
		Category:       req.Category,
		PricePerHour:   req.PricePerHour,
		CurrentOrderID: domain.NoOrder,
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		id, err := s.platformRepo.NextDeviceID(ctx, tx)
		if err != nil {
			return err
		}
		device.ID = id

		if err := s.repo.EnsureOwner(ctx, tx, owner); err != nil {
			return err
		}
		return s.repo.Insert(ctx, tx, &device)
	})
	if err != nil {
		return domain.Device{}, err
	}

	s.log.Info("device created",
		zap.Int64("device_id", device.ID),
		zap.String("owner", device.Owner),
		zap.Int64("price_per_hour", device.PricePerHour),
	)
	return device, nil
}

func (s *Service) Modify(ctx context.Context, req domain.ModifyDeviceRequest) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		device, err := s.repo.FindByID(ctx, tx, req.DeviceID)
		if err != nil {
			return err
		}
		if device == nil {
			return domain.ErrNotFound
		}
		if device.Owner != strings.TrimSpace(req.Caller) {
			return domain.ErrNotOwner
		}
		if req.PricePerHour <= 0 {
			return domain.ErrInvalidPrice
		}
		return s.repo.UpdatePriceActive(ctx, tx, req.DeviceID, req.PricePerHour, req.Active)
	})
}

func (s *Service) Get(ctx context.Context, id int64) (domain.Device, error) {
	device, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Device{}, err
	}
	if device == nil {
		return domain.Device{}, domain.ErrNotFound
	}
	return *device, nil
}

func (s *Service) ListIDs(ctx context.Context) ([]int64, error) {
	return s.repo.ListIDs(ctx, s.db)
}

func (s *Service) OwnerInfo(ctx context.Context, account string) (domain.OwnerInfo, error) {
	account = strings.TrimSpace(account)
	if account == "" {
		return domain.OwnerInfo{}, domain.ErrInvalidOwner
	}

	info := domain.OwnerInfo{Account: account, DeviceIDs: []int64{}}

	owner, err := s.repo.FindOwner(ctx, s.db, account)
	if err != nil {
		return domain.OwnerInfo{}, err
	}
	if owner != nil {
		info.TotalEarned = owner.TotalEarned
		info.TotalWithdrawn = owner.TotalWithdrawn
	}

	ids, err := s.repo.OwnerDeviceIDs(ctx, s.db, account)
	if err != nil {
		return domain.OwnerInfo{}, err
	}
	if ids != nil {
		info.DeviceIDs = ids
	}
	return info, nil
}
