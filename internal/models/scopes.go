package models

import "gorm.io/gorm"

// TenantScoped 租户隔离scope
// 所有读写都必须带上调用方的tenant_id等值过滤；tenant_id只能来自认证后的主体，
// 绝不能来自请求头或查询参数
func TenantScoped(tenantID uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("tenant_id = ?", tenantID)
	}
}
