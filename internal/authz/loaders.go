package authz

import (
	"bizhub/internal/models"
	"errors"

	"gorm.io/gorm"
)

// isNotFound 租户内查不到记录
func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// EventLoader 活动资源加载器，归属字段为 assigned_to
type EventLoader struct {
	db *gorm.DB
}

// Load 按租户加载活动
// 带客户关联一起加载，下游处理器直接复用，不再二次查询
func (l *EventLoader) Load(tenantID, id uint) (*ResourceRef, error) {
	var event models.Event
	err := l.db.Scopes(models.TenantScoped(tenantID)).Preload("Client").First(&event, id).Error
	if err != nil {
		return nil, err
	}
	return &ResourceRef{OwnerID: event.AssignedTo, Resource: &event}, nil
}

// PaymentLoader 收款资源加载器，归属字段为 created_by
type PaymentLoader struct {
	db *gorm.DB
}

// Load 按租户加载收款记录
func (l *PaymentLoader) Load(tenantID, id uint) (*ResourceRef, error) {
	var payment models.Payment
	err := l.db.Scopes(models.TenantScoped(tenantID)).Preload("Event").First(&payment, id).Error
	if err != nil {
		return nil, err
	}
	owner := payment.CreatedBy
	return &ResourceRef{OwnerID: &owner, Resource: &payment}, nil
}

// ClientLoader 客户资源加载器，归属字段为 created_by
type ClientLoader struct {
	db *gorm.DB
}

// Load 按租户加载客户
func (l *ClientLoader) Load(tenantID, id uint) (*ResourceRef, error) {
	var client models.Client
	err := l.db.Scopes(models.TenantScoped(tenantID)).First(&client, id).Error
	if err != nil {
		return nil, err
	}
	owner := client.CreatedBy
	return &ResourceRef{OwnerID: &owner, Resource: &client}, nil
}

// RegisterDefaultResources 注册内置资源类型
// 资源类型到权限模块名、归属字段的映射在这里显式配置
func RegisterDefaultResources(registry *Registry, db *gorm.DB) {
	registry.Register(ResourceEvent, &EventLoader{db: db}, models.ModuleEvents, "assigned_to")
	registry.Register(ResourcePayment, &PaymentLoader{db: db}, models.ModuleFinance, "created_by")
	registry.Register(ResourceClient, &ClientLoader{db: db}, models.ModuleClients, "created_by")
}
