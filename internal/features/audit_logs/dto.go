package audit_logs

import (
	audit_logs_models "taskhive/internal/features/audit_logs/models"
)

type GetAuditLogsRequest struct {
	Limit  int `form:"limit"`
	Offset int `form:"offset"`
}

type GetAuditLogsResponse struct {
	AuditLogs []*audit_logs_models.AuditLog `json:"auditLogs"`
	Total     int64                         `json:"total"`
	Limit     int                           `json:"limit"`
	Offset    int                           `json:"offset"`
}
