package services

import (
	"bizhub/internal/database"
	"bizhub/internal/models"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type EventService struct {
	db *gorm.DB
}

func NewEventService() *EventService {
	return &EventService{
		db: database.GetDB(),
	}
}

// CreateEventRequest 创建活动请求
type CreateEventRequest struct {
	Title      string     `json:"title" binding:"required,max=200"`
	Venue      string     `json:"venue" binding:"max=200"`
	StartAt    time.Time  `json:"start_at" binding:"required"`
	EndAt      *time.Time `json:"end_at"`
	ClientID   *uint      `json:"client_id"`
	AssignedTo *uint      `json:"assigned_to"`
}

// UpdateEventRequest 更新活动请求
type UpdateEventRequest struct {
	Title      string     `json:"title" binding:"required,max=200"`
	Venue      string     `json:"venue" binding:"max=200"`
	StartAt    time.Time  `json:"start_at" binding:"required"`
	EndAt      *time.Time `json:"end_at"`
	Status     string     `json:"status" binding:"required"`
	ClientID   *uint      `json:"client_id"`
	AssignedTo *uint      `json:"assigned_to"`
}

// Create 创建活动
// 租户ID来自认证主体，创建后不再变更
func (s *EventService) Create(tenantID, creatorID uint, req *CreateEventRequest) (*models.Event, error) {
	if req.AssignedTo != nil {
		if err := s.validateMember(tenantID, *req.AssignedTo); err != nil {
			return nil, err
		}
	}

	event := &models.Event{
		TenantID:   tenantID,
		Title:      req.Title,
		Venue:      req.Venue,
		StartAt:    req.StartAt,
		EndAt:      req.EndAt,
		Status:     models.EventStatusPlanned,
		ClientID:   req.ClientID,
		CreatedBy:  creatorID,
		AssignedTo: req.AssignedTo,
	}

	err := s.db.Create(event).Error
	return event, err
}

// GetWithPage 分页获取租户活动
func (s *EventService) GetWithPage(tenantID uint, status string, page, pageSize int) ([]*models.Event, int64, error) {
	var events []*models.Event
	var total int64

	query := s.db.Model(&models.Event{}).Scopes(models.TenantScoped(tenantID))

	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("start_at DESC").Offset(offset).Limit(pageSize).Find(&events).Error
	if err != nil {
		return nil, 0, err
	}

	return events, total, nil
}

// Update 更新活动
// 活动由归属中间件加载并传入，tenant_id不在可更新字段里，创建后不可变
func (s *EventService) Update(event *models.Event, req *UpdateEventRequest) (*models.Event, error) {
	if req.AssignedTo != nil {
		if err := s.validateMember(event.TenantID, *req.AssignedTo); err != nil {
			return nil, err
		}
	}

	event.Title = req.Title
	event.Venue = req.Venue
	event.StartAt = req.StartAt
	event.EndAt = req.EndAt
	event.Status = req.Status
	event.ClientID = req.ClientID
	event.AssignedTo = req.AssignedTo

	err := s.db.Save(event).Error
	return event, err
}

// Delete 删除活动
func (s *EventService) Delete(event *models.Event) error {
	return s.db.Delete(event).Error
}

// validateMember 负责员工必须是本租户成员
func (s *EventService) validateMember(tenantID, userID uint) error {
	var count int64
	s.db.Model(&models.User{}).Scopes(models.TenantScoped(tenantID)).
		Where("id = ? AND is_archived = ?", userID, false).Count(&count)
	if count == 0 {
		return fmt.Errorf("负责员工不是本租户成员")
	}
	return nil
}
