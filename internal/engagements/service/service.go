// Package service provides business logic for the three engagement source
// collections: intake, status transitions, staff assignment, and certificate
// handling.
package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"zumarlaw_backend/internal/adapters/storage"
	"zumarlaw_backend/internal/engagements/repository"
	"zumarlaw_backend/internal/engagements/transport"
	"zumarlaw_backend/internal/events"
	"zumarlaw_backend/platform/apperr"
	"zumarlaw_backend/platform/logger"
)

const certificateFolder = "certificates"

// Service provides business logic for engagements.
type Service struct {
	repo    *repository.Repo
	storage storage.StorageService
	bucket  string
	bus     events.Bus
	log     *logger.Logger
}

// New creates a new engagements service. storageSvc may be nil when object
// storage is not configured; certificate endpoints then fail cleanly.
func New(repo *repository.Repo, storageSvc storage.StorageService, bucket string, bus events.Bus, log *logger.Logger) *Service {
	return &Service{
		repo:    repo,
		storage: storageSvc,
		bucket:  bucket,
		bus:     bus,
		log:     log,
	}
}

// Create opens a new engagement in its source collection.
func (s *Service) Create(ctx context.Context, req transport.CreateEngagementRequest) (transport.EngagementResponse, error) {
	engagement, err := s.repo.Create(ctx, repository.CreateParams{
		Source:        req.Source,
		ClientName:    strings.TrimSpace(req.ClientName),
		ClientEmail:   strings.TrimSpace(req.ClientEmail),
		Title:         strings.TrimSpace(req.Title),
		PaymentAmount: req.PaymentAmount,
		Fields:        req.Fields,
		AssignedTo:    strings.TrimSpace(req.AssignedTo),
	})
	if err != nil {
		return transport.EngagementResponse{}, err
	}

	s.log.Info("engagement created", "id", engagement.ID, "source", engagement.Source, "title", engagement.Title)
	return toResponse(engagement), nil
}

// Get fetches one engagement.
func (s *Service) Get(ctx context.Context, source string, id uuid.UUID) (transport.EngagementResponse, error) {
	engagement, err := s.repo.GetByID(ctx, source, id)
	if err != nil {
		return transport.EngagementResponse{}, err
	}
	return toResponse(engagement), nil
}

// List returns a page of engagements from one source collection.
func (s *Service) List(ctx context.Context, req transport.ListEngagementsRequest) (transport.EngagementListResponse, error) {
	page := req.Page
	pageSize := req.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	engagements, total, err := s.repo.List(ctx, repository.ListParams{
		Source: req.Source,
		Status: req.Status,
		Offset: (page - 1) * pageSize,
		Limit:  pageSize,
	})
	if err != nil {
		return transport.EngagementListResponse{}, err
	}

	items := make([]transport.EngagementResponse, 0, len(engagements))
	for _, engagement := range engagements {
		items = append(items, toResponse(engagement))
	}

	return transport.EngagementListResponse{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// UpdateStatus transitions an engagement. A transition to completed
// publishes EngagementCompleted so the notification module can deliver the
// certificate; delivery is best-effort and never blocks the update.
func (s *Service) UpdateStatus(ctx context.Context, source string, id uuid.UUID, status string) (transport.EngagementResponse, error) {
	engagement, err := s.repo.UpdateStatus(ctx, source, id, status)
	if err != nil {
		return transport.EngagementResponse{}, err
	}

	s.log.Info("engagement status updated", "id", id, "source", source, "status", status)

	if status == "completed" {
		s.bus.Publish(ctx, events.EngagementCompleted{
			BaseEvent:    events.NewBaseEvent(),
			EngagementID: engagement.ID,
			Source:       engagement.Source,
			ServiceTitle: engagement.Title,
			ClientName:   engagement.ClientName,
			ClientEmail:  engagement.ClientEmail,
			Certificate:  engagement.Certificate,
		})
	}

	return toResponse(engagement), nil
}

// Assign sets the responsible staff member.
func (s *Service) Assign(ctx context.Context, source string, id uuid.UUID, assignedTo string) error {
	if err := s.repo.Assign(ctx, source, id, strings.TrimSpace(assignedTo)); err != nil {
		return err
	}

	s.bus.Publish(ctx, events.EngagementAssigned{
		BaseEvent:    events.NewBaseEvent(),
		EngagementID: id,
		Source:       source,
		AssignedTo:   assignedTo,
	})
	return nil
}

// CertificateUploadURL returns a presigned PUT URL for a certificate file.
func (s *Service) CertificateUploadURL(ctx context.Context, fileName string) (*storage.PresignedURL, error) {
	if s.storage == nil {
		return nil, apperr.Internal("object storage is not configured")
	}
	return s.storage.GenerateUploadURL(ctx, s.bucket, certificateFolder, fileName)
}

// AttachCertificate records an uploaded certificate object key.
func (s *Service) AttachCertificate(ctx context.Context, source string, id uuid.UUID, fileKey string) error {
	return s.repo.SetCertificate(ctx, source, id, fileKey)
}

// CertificateDownloadURL returns a presigned GET URL for an engagement's
// certificate.
func (s *Service) CertificateDownloadURL(ctx context.Context, source string, id uuid.UUID) (*storage.PresignedURL, error) {
	if s.storage == nil {
		return nil, apperr.Internal("object storage is not configured")
	}
	engagement, err := s.repo.GetByID(ctx, source, id)
	if err != nil {
		return nil, err
	}
	if engagement.Certificate == "" {
		return nil, apperr.NotFound("engagement has no certificate")
	}
	return s.storage.GenerateDownloadURL(ctx, s.bucket, engagement.Certificate)
}

func toResponse(engagement repository.Engagement) transport.EngagementResponse {
	return transport.EngagementResponse{
		ID:            engagement.ID.String(),
		Source:        engagement.Source,
		ClientName:    engagement.ClientName,
		ClientEmail:   engagement.ClientEmail,
		Title:         engagement.Title,
		Status:        engagement.Status,
		PaymentAmount: engagement.PaymentAmount,
		Fields:        engagement.Fields,
		Certificate:   engagement.Certificate,
		AssignedTo:    engagement.AssignedTo,
		CreatedAt:     engagement.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     engagement.UpdatedAt.Format(time.RFC3339),
	}
}
