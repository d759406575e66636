package authz

import "errors"

// 拒绝原因。PermissionDenied 和 HierarchyViolation 的原因可以返回给调用方；
// TenantMismatch 对外必须表现为 NotFound，避免确认跨租户资源的存在
var (
	ErrUnauthenticated    = errors.New("authz: 缺少认证主体")
	ErrTenantMismatch     = errors.New("authz: 租户不匹配")
	ErrRoleNotFound       = errors.New("authz: 角色不存在或已归档")
	ErrPermissionDenied   = errors.New("authz: 权限不足")
	ErrHierarchyViolation = errors.New("authz: 角色层级不足")
)

// DenyReason 拒绝原因标识
type DenyReason string

const (
	ReasonUnauthenticated    DenyReason = "unauthenticated"
	ReasonTenantMismatch     DenyReason = "tenant_mismatch"
	ReasonRoleNotFound       DenyReason = "role_not_found"
	ReasonPermissionDenied   DenyReason = "permission_denied"
	ReasonHierarchyViolation DenyReason = "hierarchy_violation"
)

// Decision 访问决策结果
// 对固定的(主体, 权限, 租户)三元组和相同的角色/覆盖状态，决策是确定的
type Decision struct {
	Allowed            bool
	Reason             DenyReason
	RequiredPermission string // 缺失的权限代码，仅拒绝时填写
}

// Allow 放行决策
func Allow() Decision {
	return Decision{Allowed: true}
}

// Deny 拒绝决策
func Deny(reason DenyReason) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// DenyPermission 因缺少指定权限而拒绝
func DenyPermission(required string) Decision {
	return Decision{Allowed: false, Reason: ReasonPermissionDenied, RequiredPermission: required}
}
