package storage

import (
	"sync"

	"taskhive/internal/config"
	audit_logs_models "taskhive/internal/features/audit_logs/models"
	notifications_models "taskhive/internal/features/notifications/models"
	projects_models "taskhive/internal/features/projects/models"
	sprints_models "taskhive/internal/features/sprints/models"
	tasks_models "taskhive/internal/features/tasks/models"
	users_models "taskhive/internal/features/users/models"
	"taskhive/internal/util/logger"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gorm_logger "gorm.io/gorm/logger"
)

var (
	once sync.Once
	db   *gorm.DB
)

func GetDb() *gorm.DB {
	once.Do(func() {
		log := logger.GetLogger()

		connection, err := gorm.Open(postgres.Open(config.GetEnv().DatabaseDsn), &gorm.Config{
			Logger: gorm_logger.Default.LogMode(gorm_logger.Silent),
		})
		if err != nil {
			log.Error("Failed to connect to database", "error", err)
			panic(err)
		}

		err = connection.AutoMigrate(
			&users_models.User{},
			&users_models.SecretKey{},
			&projects_models.Project{},
			&projects_models.ProjectMembership{},
			&tasks_models.Task{},
			&tasks_models.TaskComment{},
			&sprints_models.Sprint{},
			&notifications_models.Notification{},
			&audit_logs_models.AuditLog{},
		)
		if err != nil {
			log.Error("Failed to run migrations", "error", err)
			panic(err)
		}

		db = connection
	})

	return db
}
