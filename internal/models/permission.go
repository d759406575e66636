package models

// Permission 权限目录条目
// 权限代码格式为 module.action.scope，scope 为 own/all，租户全局操作无scope（如 business.update）
type Permission struct {
	BaseModel
	Code        string `gorm:"uniqueIndex;size:100;not null" json:"code"` // 权限代码，如 "events.update.own"
	Name        string `gorm:"size:100;not null" json:"name"`             // 权限名称，如 "更新自己的活动"
	Description string `gorm:"size:255" json:"description"`               // 权限描述
	Module      string `gorm:"size:50;not null;index" json:"module"`      // 所属模块，如 "events", "finance"
	Action      string `gorm:"size:50;not null" json:"action"`            // 操作类型，如 "create", "update"
	Scope       string `gorm:"size:10" json:"scope"`                      // 作用域：own/all，空表示租户全局
	IsActive    bool   `gorm:"default:true" json:"is_active"`             // 停用的权限永远不会被授予
}

// TableName 表名
func (Permission) TableName() string {
	return "permissions"
}

// 权限模块常量
const (
	ModuleEvents      = "events"      // 活动管理
	ModuleClients     = "clients"     // 客户管理
	ModuleFinance     = "finance"     // 财务/收款
	ModuleUsers       = "users"       // 成员管理
	ModuleRoles       = "roles"       // 角色管理
	ModuleSupplies    = "supplies"    // 物资库存
	ModuleBusiness    = "business"    // 租户（商户）设置
	ModuleInvitations = "invitations" // 成员邀请
)

// 权限操作常量
const (
	ActionCreate = "create" // 创建
	ActionRead   = "read"   // 读取
	ActionUpdate = "update" // 更新
	ActionDelete = "delete" // 删除
	ActionList   = "list"   // 列表
)

// 权限作用域常量
const (
	ScopeOwn = "own" // 仅限自己拥有的资源
	ScopeAll = "all" // 租户内所有资源
)

// PermissionCode 拼接权限代码
func PermissionCode(module, action, scope string) string {
	code := module + "." + action
	if scope != "" {
		code += "." + scope
	}
	return code
}
