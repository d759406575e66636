package database

import (
	"bizhub/internal/models"
	"bizhub/pkg/logger"
)

// Migrate 执行数据库迁移
func Migrate() error {
	appLogger := logger.GetLogger()
	appLogger.Info("Starting database migration...")

	err := DB.AutoMigrate(
		&models.Tenant{},
		&models.User{},
		&models.Permission{},
		&models.Role{},
		&models.RolePermission{},
		&models.TenantInvitation{},
		// 业务资源
		&models.Client{},
		&models.Event{},
		&models.Payment{},
	)

	if err != nil {
		appLogger.Errorf("Database migration failed: %v", err)
		return err
	}

	appLogger.Info("Database migration completed successfully")

	// 种子数据初始化将在 main.go 中单独调用，避免循环依赖
	return nil
}
