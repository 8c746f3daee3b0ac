package services

import (
	"context"
	"fmt"

	"github.com/vecindia/condominio-api/internal/models"
	"github.com/vecindia/condominio-api/internal/repository"
	"github.com/vecindia/condominio-api/pkg/logger"
)

// AlertService creates and delivers in-app alerts
type AlertService struct {
	alertRepo    repository.AlertRepository
	userRepo     repository.UserRepository
	residentRepo repository.ResidentRepository
}

// NewAlertService creates a new alert service
func NewAlertService(alertRepo repository.AlertRepository, userRepo repository.UserRepository, residentRepo repository.ResidentRepository) *AlertService {
	return &AlertService{
		alertRepo:    alertRepo,
		userRepo:     userRepo,
		residentRepo: residentRepo,
	}
}

// Notify creates an alert for a single user. Errors are logged, not
// returned: alerting is best-effort.
func (s *AlertService) Notify(ctx context.Context, userID uint, alertType, title, message string) {
	alert := &models.Alert{
		UserID:  userID,
		Type:    alertType,
		Title:   title,
		Message: message,
	}
	if err := s.alertRepo.Create(ctx, alert); err != nil {
		logger.Error(fmt.Sprintf("[Alert] failed to create alert for user %d: %v", userID, err))
	}
}

// NotifyResident creates an alert for the user account behind a resident
func (s *AlertService) NotifyResident(ctx context.Context, residentID uint, alertType, title, message string) {
	resident, err := s.residentRepo.FindByID(ctx, residentID)
	if err != nil {
		logger.Error(fmt.Sprintf("[Alert] resident %d not found: %v", residentID, err))
		return
	}
	if resident.UserID == 0 {
		// Resident has no portal account
		return
	}
	s.Notify(ctx, resident.UserID, alertType, title, message)
}

// NotifyAdmins creates an alert for every active administrator of a condominium
func (s *AlertService) NotifyAdmins(ctx context.Context, condominiumID uint, alertType, title, message string) {
	admins, err := s.userRepo.FindAdmins(ctx, condominiumID)
	if err != nil {
		logger.Error(fmt.Sprintf("[Alert] failed to find admins: %v", err))
		return
	}

	alerts := make([]models.Alert, 0, len(admins))
	for _, admin := range admins {
		alerts = append(alerts, models.Alert{
			UserID:  admin.ID,
			Type:    alertType,
			Title:   title,
			Message: message,
		})
	}
	if err := s.alertRepo.CreateBatch(ctx, alerts); err != nil {
		logger.Error(fmt.Sprintf("[Alert] failed to create admin alerts: %v", err))
	}
}

// ListForUser returns a user's alerts, optionally unread only
func (s *AlertService) ListForUser(ctx context.Context, userID uint, unreadOnly bool) ([]models.Alert, error) {
	return s.alertRepo.FindByUser(ctx, userID, unreadOnly)
}

// CountUnread returns the number of unread alerts for a user
func (s *AlertService) CountUnread(ctx context.Context, userID uint) (int64, error) {
	return s.alertRepo.CountUnread(ctx, userID)
}

// MarkRead flags one alert as read
func (s *AlertService) MarkRead(ctx context.Context, id, userID uint) error {
	return s.alertRepo.MarkRead(ctx, id, userID)
}

// MarkAllRead flags all of a user's alerts as read
func (s *AlertService) MarkAllRead(ctx context.Context, userID uint) error {
	return s.alertRepo.MarkAllRead(ctx, userID)
}
