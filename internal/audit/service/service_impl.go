package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/derent/internal/audit/domain"
	"github.com/smallbiznis/derent/internal/clock"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  domain.Repository
}

func NewService(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("audit.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) AuditLog(ctx context.Context, actor, action, targetType, targetID string, metadata map[string]any) error {
	actor = strings.TrimSpace(actor)
	if actor == "" {
		return domain.ErrInvalidActor
	}
	action = strings.TrimSpace(action)
	if action == "" {
		return domain.ErrInvalidAction
	}

	if metadata == nil {
		metadata = map[string]any{}
	}

	entry := domain.AuditLog{
		ID:         s.genID.Generate(),
		Actor:      actor,
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		Metadata:   metadata,
		CreatedAt:  s.clock.Now(),
	}
	return s.repo.Insert(ctx, s.db, &entry)
}

func (s *Service) List(ctx context.Context, req domain.ListAuditLogRequest) ([]domain.AuditLog, error) {
	return s.repo.List(ctx, s.db, req)
}
