package services

import (
	"context"
	"time"

	"github.com/vecindia/condominio-api/internal/jobs"
	"github.com/vecindia/condominio-api/internal/models"
	"github.com/vecindia/condominio-api/internal/repository"
)

// AnnouncementService manages notices published to residents
type AnnouncementService struct {
	announcementRepo repository.AnnouncementRepository
	residentRepo     repository.ResidentRepository
	alertSvc         *AlertService
	worker           *jobs.Worker
}

// NewAnnouncementService creates a new announcement service
func NewAnnouncementService(announcementRepo repository.AnnouncementRepository, residentRepo repository.ResidentRepository, alertSvc *AlertService, worker *jobs.Worker) *AnnouncementService {
	return &AnnouncementService{
		announcementRepo: announcementRepo,
		residentRepo:     residentRepo,
		alertSvc:         alertSvc,
		worker:           worker,
	}
}

// CreateAnnouncementInput is the request payload for publishing a notice
type CreateAnnouncementInput struct {
	CondominiumID uint   `json:"condominio_id" binding:"required"`
	AuthorID      uint   `json:"autor_id" binding:"required"`
	Title         string `json:"titulo" binding:"required"`
	Body          string `json:"contenido" binding:"required"`
	Priority      string `json:"prioridad"`
	ExpiresAt     string `json:"fecha_expiracion"`
}

// Create publishes an announcement and alerts every active resident
func (s *AnnouncementService) Create(ctx context.Context, input CreateAnnouncementInput) (*models.Announcement, error) {
	priority := input.Priority
	if priority == "" {
		priority = models.AnnouncementPriorityNormal
	}

	announcement := &models.Announcement{
		CondominiumID: input.CondominiumID,
		AuthorID:      input.AuthorID,
		Title:         input.Title,
		Body:          input.Body,
		Priority:      priority,
		PublishedAt:   time.Now(),
	}

	if input.ExpiresAt != "" {
		expires, err := time.Parse("2006-01-02", input.ExpiresAt)
		if err != nil {
			return nil, err
		}
		announcement.ExpiresAt = &expires
	}

	if err := s.announcementRepo.Create(ctx, announcement); err != nil {
		return nil, err
	}

	// Fan out alerts off the request path; a condominium can have many
	// residents and the publisher should not wait for them.
	fanout := func(jobCtx context.Context) error {
		residents, err := s.residentRepo.FindActiveByCondominium(jobCtx, announcement.CondominiumID)
		if err != nil {
			return err
		}
		for _, resident := range residents {
			s.alertSvc.NotifyResident(jobCtx, resident.ID, models.AlertTypeAnnouncement, announcement.Title, announcement.Body)
		}
		return nil
	}
	if s.worker != nil {
		s.worker.EnqueueAsync(fanout)
	} else {
		_ = fanout(ctx)
	}

	return announcement, nil
}

// GetByID returns one announcement
func (s *AnnouncementService) GetByID(ctx context.Context, id uint) (*models.Announcement, error) {
	announcement, err := s.announcementRepo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return announcement, nil
}

// ListActive returns a condominium's currently visible announcements
func (s *AnnouncementService) ListActive(ctx context.Context, condominiumID uint) ([]models.Announcement, error) {
	return s.announcementRepo.FindActiveByCondominium(ctx, condominiumID, time.Now())
}

// List returns announcements matching the query
func (s *AnnouncementService) List(ctx context.Context, query *repository.ListQuery) ([]models.Announcement, int64, error) {
	return s.announcementRepo.List(ctx, query)
}

// Delete removes an announcement
func (s *AnnouncementService) Delete(ctx context.Context, id uint) error {
	if _, err := s.announcementRepo.FindByID(ctx, id); err != nil {
		return ErrNotFound
	}
	return s.announcementRepo.Delete(ctx, id)
}
