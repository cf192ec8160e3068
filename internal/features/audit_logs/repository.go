package audit_logs

import (
	audit_logs_models "taskhive/internal/features/audit_logs/models"
	"taskhive/internal/storage"

	"github.com/google/uuid"
)

type AuditLogRepository struct{}

func (r *AuditLogRepository) Create(auditLog *audit_logs_models.AuditLog) error {
	if auditLog.ID == uuid.Nil {
		auditLog.ID = uuid.New()
	}

	return storage.GetDb().Create(auditLog).Error
}

func (r *AuditLogRepository) GetByProject(projectID uuid.UUID, limit, offset int) ([]*audit_logs_models.AuditLog, error) {
	var auditLogs []*audit_logs_models.AuditLog

	err := storage.GetDb().
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&auditLogs).Error
	if err != nil {
		return nil, err
	}

	return auditLogs, nil
}

func (r *AuditLogRepository) CountByProject(projectID uuid.UUID) (int64, error) {
	var total int64

	err := storage.GetDb().
		Model(&audit_logs_models.AuditLog{}).
		Where("project_id = ?", projectID).
		Count(&total).Error

	return total, err
}
