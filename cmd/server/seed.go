package main

import (
	"bizhub/internal/database"
	"bizhub/internal/models"
	"bizhub/internal/services"
	"bizhub/pkg/logger"
	"fmt"

	"gorm.io/gorm"
)

// seedData 初始化种子数据
func seedData() error {
	appLogger := logger.GetLogger()
	appLogger.Info("Starting seed data initialization...")

	db := database.GetDB()

	// 1. 初始化权限目录
	if err := initializePermissions(db); err != nil {
		return fmt.Errorf("初始化权限目录失败: %v", err)
	}

	// 2. 创建默认租户（含默认角色和所有者账号）
	if err := createDefaultTenant(); err != nil {
		return fmt.Errorf("创建默认租户失败: %v", err)
	}

	// 3. 为默认角色装配权限包
	if err := assignDefaultRoleBundles(db); err != nil {
		return fmt.Errorf("装配默认角色权限失败: %v", err)
	}

	// 4. 创建平台管理员
	if err := createSuperAdmin(db); err != nil {
		return fmt.Errorf("创建平台管理员失败: %v", err)
	}

	appLogger.Info("Seed data initialization completed successfully")
	return nil
}

// 模块中文名
var moduleLabels = map[string]string{
	models.ModuleEvents:      "活动",
	models.ModuleClients:     "客户",
	models.ModuleFinance:     "收款",
	models.ModuleSupplies:    "物资",
	models.ModuleUsers:       "成员",
	models.ModuleRoles:       "角色",
	models.ModuleInvitations: "邀请",
	models.ModuleBusiness:    "商户设置",
}

// 操作中文名
var actionLabels = map[string]string{
	models.ActionCreate: "创建",
	models.ActionRead:   "查看",
	models.ActionUpdate: "更新",
	models.ActionDelete: "删除",
	models.ActionList:   "列表",
}

// 作用域中文名
var scopeLabels = map[string]string{
	models.ScopeOwn: "（自己的）",
	models.ScopeAll: "（全部）",
}

// defaultCatalog 构建完整权限目录
// 业务资源模块的读/改/删带own/all作用域，管理模块不带作用域
func defaultCatalog() []models.Permission {
	var catalog []models.Permission

	add := func(module, action, scope string) {
		catalog = append(catalog, models.Permission{
			Code:     models.PermissionCode(module, action, scope),
			Name:     moduleLabels[module] + actionLabels[action] + scopeLabels[scope],
			Module:   module,
			Action:   action,
			Scope:    scope,
			IsActive: true,
		})
	}

	// 业务资源模块
	resourceModules := []string{models.ModuleEvents, models.ModuleClients, models.ModuleFinance, models.ModuleSupplies}
	for _, module := range resourceModules {
		add(module, models.ActionCreate, "")
		add(module, models.ActionList, "")
		for _, action := range []string{models.ActionRead, models.ActionUpdate, models.ActionDelete} {
			add(module, action, models.ScopeOwn)
			add(module, action, models.ScopeAll)
		}
	}

	// 管理模块
	adminModules := []string{models.ModuleUsers, models.ModuleRoles, models.ModuleInvitations}
	for _, module := range adminModules {
		for _, action := range []string{models.ActionCreate, models.ActionList, models.ActionRead, models.ActionUpdate, models.ActionDelete} {
			add(module, action, "")
		}
	}

	// 商户设置
	add(models.ModuleBusiness, models.ActionRead, "")
	add(models.ModuleBusiness, models.ActionUpdate, "")

	return catalog
}

// initializePermissions 初始化权限目录
func initializePermissions(db *gorm.DB) error {
	for _, perm := range defaultCatalog() {
		var count int64
		db.Model(&models.Permission{}).Where("code = ?", perm.Code).Count(&count)
		if count == 0 {
			if err := db.Create(&perm).Error; err != nil {
				return fmt.Errorf("创建权限 %s 失败: %v", perm.Code, err)
			}
		}
	}

	logger.GetLogger().Info("权限目录初始化完成")
	return nil
}

// createDefaultTenant 创建默认租户
// 走租户开通流程，同一事务内创建默认角色和所有者账号
func createDefaultTenant() error {
	tenantService := services.NewTenantService()

	if _, err := tenantService.GetByCode("default"); err == nil {
		logger.GetLogger().Info("默认租户已存在，跳过创建")
		return nil
	}

	_, err := tenantService.Create(&services.CreateTenantRequest{
		Name:          "默认商户",
		Code:          "default",
		OwnerUsername: "owner",
		OwnerEmail:    "owner@example.com",
		OwnerPassword: "Owner@123",
		OwnerName:     "默认所有者",
	})
	if err != nil {
		return err
	}

	logger.GetLogger().Info("默认租户创建成功 - 所有者: owner, 密码: Owner@123")
	return nil
}

// 默认角色的权限包
// Owner不需要权限包，所有检查对其直接放行
var defaultRoleBundles = map[string][]string{
	models.RoleNameManager: {
		"events.create", "events.list", "events.read.all", "events.update.all", "events.delete.all",
		"clients.create", "clients.list", "clients.read.all", "clients.update.all", "clients.delete.all",
		"finance.create", "finance.list", "finance.read.all", "finance.update.all", "finance.delete.all",
		"supplies.create", "supplies.list", "supplies.read.all", "supplies.update.all", "supplies.delete.all",
		"users.create", "users.list", "users.read", "users.update", "users.delete",
		"roles.create", "roles.list", "roles.read", "roles.update", "roles.delete",
		"invitations.create", "invitations.list", "invitations.read", "invitations.update", "invitations.delete",
		"business.read", "business.update",
	},
	models.RoleNameStaff: {
		"events.create", "events.list", "events.read.own", "events.update.own", "events.delete.own",
		"clients.create", "clients.list", "clients.read.own", "clients.update.own", "clients.delete.own",
		"finance.create", "finance.list", "finance.read.own", "finance.update.own",
		"supplies.create", "supplies.list", "supplies.read.own", "supplies.update.own",
		"business.read",
	},
	models.RoleNameViewer: {
		"events.list", "events.read.all",
		"clients.list", "clients.read.all",
		"finance.list", "finance.read.all",
		"supplies.list", "supplies.read.all",
		"business.read",
	},
}

// assignDefaultRoleBundles 给默认租户的系统角色装配权限包
// 只在角色还没有任何权限时装配，不覆盖后续修改
func assignDefaultRoleBundles(db *gorm.DB) error {
	var tenant models.Tenant
	if err := db.Where("code = ?", "default").First(&tenant).Error; err != nil {
		return fmt.Errorf("获取默认租户失败: %v", err)
	}

	for roleName, codes := range defaultRoleBundles {
		var role models.Role
		if err := db.Where("tenant_id = ? AND name = ?", tenant.ID, roleName).First(&role).Error; err != nil {
			return fmt.Errorf("获取角色 %s 失败: %v", roleName, err)
		}

		var count int64
		db.Model(&models.RolePermission{}).Where("role_id = ?", role.ID).Count(&count)
		if count > 0 {
			continue
		}

		var permissions []models.Permission
		if err := db.Where("code IN ?", codes).Find(&permissions).Error; err != nil {
			return err
		}

		rolePermissions := make([]models.RolePermission, 0, len(permissions))
		for _, perm := range permissions {
			rolePermissions = append(rolePermissions, models.RolePermission{
				RoleID:       role.ID,
				PermissionID: perm.ID,
			})
		}

		if len(rolePermissions) > 0 {
			if err := db.Create(&rolePermissions).Error; err != nil {
				return err
			}
		}
	}

	logger.GetLogger().Info("默认角色权限包装配完成")
	return nil
}

// createSuperAdmin 创建平台管理员
func createSuperAdmin(db *gorm.DB) error {
	var count int64
	db.Model(&models.User{}).Where("username = ?", "admin").Count(&count)
	if count > 0 {
		logger.GetLogger().Info("平台管理员已存在，跳过创建")
		return nil
	}

	var tenant models.Tenant
	if err := db.Where("code = ?", "default").First(&tenant).Error; err != nil {
		return fmt.Errorf("获取默认租户失败: %v", err)
	}

	var ownerRole models.Role
	if err := db.Where("tenant_id = ? AND name = ?", tenant.ID, models.RoleNameOwner).First(&ownerRole).Error; err != nil {
		return fmt.Errorf("获取所有者角色失败: %v", err)
	}

	user := &models.User{
		TenantID:     tenant.ID,
		Username:     "admin",
		Email:        "admin@example.com",
		Name:         "平台管理员",
		RoleID:       ownerRole.ID,
		RoleType:     models.RoleTypeOwner,
		Status:       models.UserStatusActive,
		IsSuperAdmin: true,
	}

	if err := user.SetPassword("Admin@123"); err != nil {
		return fmt.Errorf("设置密码失败: %v", err)
	}

	if err := db.Create(user).Error; err != nil {
		return err
	}

	logger.GetLogger().Infof("平台管理员创建成功 - 用户名: admin, 密码: Admin@123")
	return nil
}
