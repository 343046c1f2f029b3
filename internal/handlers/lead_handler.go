package handlers

import (
	"bytes"
	"encoding/json"
	goerrors "errors"
	"io"
	"net/http"

	"leadhub/internal/dto"
	"leadhub/internal/errors"
	"leadhub/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// LeadHandler handles lead CRUD HTTP requests
type LeadHandler struct {
	leadService services.LeadServiceInterface
}

// NewLeadHandler creates a new lead handler
func NewLeadHandler(leadService services.LeadServiceInterface) *LeadHandler {
	return &LeadHandler{leadService: leadService}
}

// CreateLeads creates one or more leads
// @Summary Create lead(s)
// @Description Create a single lead or a batch; the body is either one object or an array
// @Tags Leads
// @Accept json
// @Produce json
// @Success 201 {object} SuccessResponse "Lead(s) created"
// @Failure 400 {object} ErrorResponse "VALIDATION_001 / LEAD_002 / LEAD_004"
// @Failure 401 {object} ErrorResponse "AUTH_001 - Missing or invalid authentication"
// @Failure 500 {object} ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /leads [post]
func (h *LeadHandler) CreateLeads(c echo.Context) error {
	requests, err := bindLeadPayload(c)
	if err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}
	if len(requests) == 0 {
		return SendError(c, errors.LeadEmptyPayload)
	}

	for _, req := range requests {
		if err := c.Validate(req); err != nil {
			return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
		}
	}

	created, err := h.leadService.CreateLeads(requests)
	if err != nil {
		switch {
		case goerrors.Is(err, services.ErrEmptyPayload):
			return SendError(c, errors.LeadEmptyPayload)
		case goerrors.Is(err, services.ErrDuplicateEmail):
			return SendError(c, errors.LeadDuplicateEmail)
		case goerrors.Is(err, services.ErrInvalidLead):
			return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
		default:
			return SendSystemError(c, err)
		}
	}

	var data interface{} = created
	if len(created) == 1 {
		data = created[0]
	}
	return SendSuccess(c, http.StatusCreated, "Lead(s) created successfully", data)
}

// ListLeads returns a filtered, sorted page of leads
// @Summary List leads
// @Tags Leads
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Page size (default 10, max 100)"
// @Param sortBy query string false "Sort field"
// @Param sortOrder query string false "asc or desc"
// @Param status query string false "Filter by lead status"
// @Param search query string false "Substring search across names and email"
// @Success 200 {object} SuccessResponse "Leads with pagination"
// @Failure 401 {object} ErrorResponse "AUTH_001 - Missing or invalid authentication"
// @Failure 500 {object} ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /leads [get]
func (h *LeadHandler) ListLeads(c echo.Context) error {
	var query dto.ListLeadsQuery
	if err := c.Bind(&query); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid query parameters"))
	}
	if err := c.Validate(query); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	leads, pagination, err := h.leadService.ListLeads(query)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Success:    true,
		Data:       leads,
		Pagination: pagination,
	})
}

// UpdateLead applies a partial update to a lead
// @Summary Update a lead
// @Tags Leads
// @Accept json
// @Produce json
// @Param id path string true "Lead ID"
// @Success 200 {object} SuccessResponse "Updated lead"
// @Failure 400 {object} ErrorResponse "LEAD_003 / VALIDATION_001"
// @Failure 404 {object} ErrorResponse "LEAD_001 - Lead not found"
// @Failure 500 {object} ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /leads/{id} [put]
func (h *LeadHandler) UpdateLead(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, errors.LeadInvalidID)
	}

	var req dto.UpdateLeadRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	lead, err := h.leadService.UpdateLead(id, req)
	if err != nil {
		switch {
		case goerrors.Is(err, services.ErrLeadNotFound):
			return SendError(c, errors.LeadNotFound)
		case goerrors.Is(err, services.ErrDuplicateEmail):
			return SendError(c, errors.LeadDuplicateEmail)
		case goerrors.Is(err, services.ErrInvalidLead):
			return SendError(c, errors.ValidationInvalidStatus, errors.WithDetails(err.Error()))
		default:
			return SendSystemError(c, err)
		}
	}

	return SendSuccess(c, http.StatusOK, "Lead updated successfully", lead)
}

// DeleteLead removes a lead
// @Summary Delete a lead
// @Tags Leads
// @Produce json
// @Param id path string true "Lead ID"
// @Success 200 {object} SuccessResponse "Lead deleted"
// @Failure 400 {object} ErrorResponse "LEAD_003 - Invalid lead ID"
// @Failure 404 {object} ErrorResponse "LEAD_001 - Lead not found"
// @Failure 500 {object} ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /leads/{id} [delete]
func (h *LeadHandler) DeleteLead(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, errors.LeadInvalidID)
	}

	if err := h.leadService.DeleteLead(id); err != nil {
		if goerrors.Is(err, services.ErrLeadNotFound) {
			return SendError(c, errors.LeadNotFound)
		}
		return SendSystemError(c, err)
	}

	return SendSuccess(c, http.StatusOK, "Lead deleted successfully", nil)
}

// bindLeadPayload reads the request body and decodes it as either a single
// lead object or an array of them.
func bindLeadPayload(c echo.Context) ([]dto.CreateLeadRequest, error) {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, nil
	}

	if trimmed[0] == '[' {
		var requests []dto.CreateLeadRequest
		if err := json.Unmarshal(trimmed, &requests); err != nil {
			return nil, err
		}
		return requests, nil
	}

	var request dto.CreateLeadRequest
	if err := json.Unmarshal(trimmed, &request); err != nil {
		return nil, err
	}
	return []dto.CreateLeadRequest{request}, nil
}
