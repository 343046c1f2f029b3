package services

import (
	"errors"
	"fmt"
	"time"

	"leadhub/internal/dto"
	"leadhub/internal/models"
	"leadhub/internal/repositories"

	"github.com/google/uuid"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

var (
	ErrLeadNotFound   = errors.New("lead not found")
	ErrDuplicateEmail = errors.New("lead email already exists")
	ErrEmptyPayload   = errors.New("lead data is required")
	ErrNoUpdateFields = errors.New("no fields to update")
	ErrInvalidLead    = errors.New("invalid lead")
)

// LeadService implements lead CRUD on top of the repository
type LeadService struct {
	repo    repositories.LeadRepositoryInterface
	metrics MetricsRecorderInterface
}

// NewLeadService creates a new lead service
func NewLeadService(repo repositories.LeadRepositoryInterface, metrics MetricsRecorderInterface) LeadServiceInterface {
	return &LeadService{
		repo:    repo,
		metrics: metrics,
	}
}

// CreateLeads validates and persists one or more leads. The whole batch
// succeeds or fails together; a duplicate email anywhere rejects everything.
func (s *LeadService) CreateLeads(requests []dto.CreateLeadRequest) ([]models.Lead, error) {
	if len(requests) == 0 {
		return nil, ErrEmptyPayload
	}

	leads := make([]*models.Lead, 0, len(requests))
	for i, req := range requests {
		lead := &models.Lead{
			TrainerName: req.TrainerName,
			MemberName:  req.MemberName,
			Email:       req.Email,
			Phone:       req.Phone,
			Status:      req.Status,
			Source:      req.Source,
			Notes:       req.Notes,
		}
		if lead.Status == "" {
			lead.Status = models.LeadStatusNew
		}
		if err := lead.Validate(); err != nil {
			return nil, fmt.Errorf("%w: lead %d: %v", ErrInvalidLead, i+1, err)
		}
		leads = append(leads, lead)
	}

	var err error
	if len(leads) == 1 {
		err = s.repo.Create(leads[0])
	} else {
		err = s.repo.CreateBatch(leads)
	}
	if err != nil {
		s.metrics.RecordLeadOperation("create", "error")
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	s.metrics.RecordLeadOperation("create", "success")

	created := make([]models.Lead, len(leads))
	for i, lead := range leads {
		created[i] = *lead
	}
	return created, nil
}

// ListLeads returns a page of leads and the pagination window
func (s *LeadService) ListLeads(query dto.ListLeadsQuery) ([]models.Lead, *dto.Pagination, error) {
	page := query.Page
	if page < 1 {
		page = defaultPage
	}
	limit := query.Limit
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	filters := models.LeadFilters{
		Status:        query.Status,
		Search:        query.Search,
		SortBy:        query.SortBy,
		SortDirection: query.SortOrder,
	}

	start := time.Now()
	leads, total, err := s.repo.List(filters, (page-1)*limit, limit)
	if err != nil {
		s.metrics.RecordLeadOperation("list", "error")
		return nil, nil, err
	}
	s.metrics.RecordLeadOperation("list", "success")
	s.metrics.ObserveQueryDuration("list", time.Since(start))

	pagination := &dto.Pagination{
		Total: total,
		Page:  page,
		Limit: limit,
		Pages: int((total + int64(limit) - 1) / int64(limit)),
	}

	return leads, pagination, nil
}

// UpdateLead applies a partial update and returns the updated record
func (s *LeadService) UpdateLead(id uuid.UUID, request dto.UpdateLeadRequest) (*models.Lead, error) {
	fields := map[string]interface{}{}
	if request.TrainerName != nil {
		fields["trainer_name"] = *request.TrainerName
	}
	if request.MemberName != nil {
		fields["member_name"] = *request.MemberName
	}
	if request.Email != nil {
		fields["email"] = *request.Email
	}
	if request.Phone != nil {
		fields["phone"] = *request.Phone
	}
	if request.Status != nil {
		if !models.IsValidLeadStatus(*request.Status) {
			return nil, fmt.Errorf("%w: invalid status %q", ErrInvalidLead, *request.Status)
		}
		fields["status"] = *request.Status
	}
	if request.Source != nil {
		fields["source"] = *request.Source
	}
	if request.Notes != nil {
		fields["notes"] = *request.Notes
	}

	if len(fields) == 0 {
		// Nothing to change; behave like the original and return the record as is
		lead, err := s.repo.GetByID(id)
		if errors.Is(err, repositories.ErrLeadNotFound) {
			return nil, ErrLeadNotFound
		}
		return lead, err
	}

	lead, err := s.repo.Update(id, fields)
	if err != nil {
		s.metrics.RecordLeadOperation("update", "error")
		if errors.Is(err, repositories.ErrLeadNotFound) {
			return nil, ErrLeadNotFound
		}
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	s.metrics.RecordLeadOperation("update", "success")
	return lead, nil
}

// DeleteLead removes a lead
func (s *LeadService) DeleteLead(id uuid.UUID) error {
	if err := s.repo.Delete(id); err != nil {
		s.metrics.RecordLeadOperation("delete", "error")
		if errors.Is(err, repositories.ErrLeadNotFound) {
			return ErrLeadNotFound
		}
		return err
	}

	s.metrics.RecordLeadOperation("delete", "success")
	return nil
}
