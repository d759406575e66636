package services

import (
	"bizhub/pkg/logger"
	"sync"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// InvitationScheduler 邀请过期清理调度器
type InvitationScheduler struct {
	db                *gorm.DB
	cron              *cron.Cron
	invitationService *InvitationService
	mu                sync.Mutex
	running           bool
}

// NewInvitationScheduler 创建邀请清理调度器
func NewInvitationScheduler(db *gorm.DB) *InvitationScheduler {
	return &InvitationScheduler{
		db:                db,
		cron:              cron.New(),
		invitationService: NewInvitationService(),
	}
}

// Start 启动调度器，每小时清理一次过期邀请
func (s *InvitationScheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}

	log := logger.GetLogger()
	log.Info("启动邀请过期清理调度器")

	_, err := s.cron.AddFunc("@hourly", s.sweep)
	if err != nil {
		return err
	}

	s.cron.Start()
	s.running = true
	return nil
}

// Stop 停止调度器
func (s *InvitationScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	log := logger.GetLogger()
	log.Info("停止邀请过期清理调度器")

	ctx := s.cron.Stop()
	<-ctx.Done()
	s.running = false
}

// sweep 标记过期邀请
func (s *InvitationScheduler) sweep() {
	log := logger.GetLogger()

	count, err := s.invitationService.ExpireOverdue()
	if err != nil {
		log.WithError(err).Error("清理过期邀请失败")
		return
	}

	if count > 0 {
		log.Infof("已标记 %d 条过期邀请", count)
	}
}
