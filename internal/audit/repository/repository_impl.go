package repository

import (
	"context"

	"github.com/smallbiznis/derent/internal/audit/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, entry *domain.AuditLog) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO audit_logs (id, actor, action, target_type, target_id, metadata, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		entry.Actor,
		entry.Action,
		entry.TargetType,
		entry.TargetID,
		entry.Metadata,
		entry.CreatedAt,
	).Error
}

func (r *repo) List(ctx context.Context, db *gorm.DB, req domain.ListAuditLogRequest) ([]domain.AuditLog, error) {
	stmt := db.WithContext(ctx).Model(&domain.AuditLog{})
	if req.Action != "" {
		stmt = stmt.Where("action = ?", req.Action)
	}
	if req.TargetType != "" {
		stmt = stmt.Where("target_type = ?", req.TargetType)
	}
	if req.TargetID != "" {
		stmt = stmt.Where("target_id = ?", req.TargetID)
	}
	if req.Limit > 0 {
		stmt = stmt.Limit(req.Limit)
	}

	var logs []domain.AuditLog
	if err := stmt.Order("created_at desc, id desc").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
