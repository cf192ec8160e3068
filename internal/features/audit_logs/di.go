package audit_logs

import (
	"taskhive/internal/util/logger"
)

var auditLogRepository = &AuditLogRepository{}

var auditLogService = &AuditLogService{
	auditLogRepository,
	logger.GetLogger(),
}

func GetAuditLogService() *AuditLogService {
	return auditLogService
}
