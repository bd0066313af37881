package service

import (
	"github.com/sabitalfahad/Quiz-bot-for-my-students/internal/repository"

	"go.uber.org/zap"
)

// MaintenanceService handles session housekeeping
type MaintenanceService struct {
	sessionRepo repository.SessionRepository
	logger      *zap.Logger
}

// NewMaintenanceService creates a new maintenance service
func NewMaintenanceService(sessionRepo repository.SessionRepository, logger *zap.Logger) *MaintenanceService {
	return &MaintenanceService{
		sessionRepo: sessionRepo,
		logger:      logger,
	}
}

// CleanupIdleSessions removes sessions not played for 60 days
func (s *MaintenanceService) CleanupIdleSessions() error {
	const retentionDays = 60

	s.logger.Info("Starting cleanup of idle sessions", zap.Int("retention_days", retentionDays))

	removed, err := s.sessionRepo.CleanIdleSessions(retentionDays)
	if err != nil {
		s.logger.Error("Failed to cleanup idle sessions", zap.Error(err))
		return err
	}

	s.logger.Info("Cleanup completed successfully", zap.Int64("removed", removed))
	return nil
}
