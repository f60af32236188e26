package domain

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type ListAuditLogRequest struct {
	Action     string
	TargetType string
	TargetID   string
	Limit      int
}

type Service interface {
	AuditLog(ctx context.Context, actor, action, targetType, targetID string, metadata map[string]any) error
	List(ctx context.Context, req ListAuditLogRequest) ([]AuditLog, error)
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, entry *AuditLog) error
	List(ctx context.Context, db *gorm.DB, req ListAuditLogRequest) ([]AuditLog, error)
}

var (
	ErrInvalidAction = errors.New("invalid_action")
	ErrInvalidActor  = errors.New("invalid_actor")
)
