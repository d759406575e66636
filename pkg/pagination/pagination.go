package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// 分页参数边界
const (
	defaultPage     = 1
	defaultPageSize = 10
	maxPageSize     = 100
)

// PageParams 请求携带的分页参数
type PageParams struct {
	Page     int `json:"page" form:"page"`
	PageSize int `json:"page_size" form:"page_size"`
}

// ParsePageParams 解析分页查询参数
// 非法或缺失的值回退到默认值，page_size收敛到上限以内
func ParsePageParams(c *gin.Context) *PageParams {
	params := &PageParams{Page: defaultPage, PageSize: defaultPageSize}

	if v, err := strconv.Atoi(c.Query("page")); err == nil && v >= 1 {
		params.Page = v
	}
	if v, err := strconv.Atoi(c.Query("page_size")); err == nil && v >= 1 {
		params.PageSize = v
	}
	if params.PageSize > maxPageSize {
		params.PageSize = maxPageSize
	}

	return params
}

// Offset SQL偏移量
func (p *PageParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Limit SQL行数上限
func (p *PageParams) Limit() int {
	return p.PageSize
}

// PageInfo 分页响应的元信息
type PageInfo struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// NewPageInfo 由总记录数计算分页元信息
func NewPageInfo(page, pageSize int, total int64) *PageInfo {
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	return &PageInfo{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}
