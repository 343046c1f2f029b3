package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"leadhub/internal/database"
	"leadhub/internal/errors"
	"leadhub/internal/models"
	"leadhub/internal/repositories"
	"leadhub/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

func TestLeadHandler(t *testing.T) {
	suite.Run(t, new(LeadHandlerSuite))
}

type LeadHandlerSuite struct {
	suite.Suite
	db      *database.DB
	handler *LeadHandler
	e       *echo.Echo
}

func (s *LeadHandlerSuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	repo := repositories.NewLeadRepository(s.db.DB)
	service := services.NewLeadService(repo, services.NewNoopMetrics())
	s.handler = NewLeadHandler(service)
	s.e = echo.New()
	s.e.Validator = NewValidator()
}

func (s *LeadHandlerSuite) request(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return s.e.NewContext(req, rec), rec
}

func (s *LeadHandlerSuite) decodeSuccess(rec *httptest.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func (s *LeadHandlerSuite) decodeError(rec *httptest.ResponseRecorder) errors.ErrorResponse {
	var body errors.ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func (s *LeadHandlerSuite) createLead(email string) models.Lead {
	body := `{"trainerName":"Alex Morgan","memberName":"Jamie Fox","email":"` + email + `","phone":"+1-555-0101","source":"website"}`
	c, rec := s.request(http.MethodPost, "/api/leads", body)
	s.Require().NoError(s.handler.CreateLeads(c))
	s.Require().Equal(http.StatusCreated, rec.Code)

	var resp struct {
		Data models.Lead `json:"data"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Data
}

func (s *LeadHandlerSuite) TestCreateSingleLead() {
	lead := s.createLead("jamie@example.com")
	s.NotEqual(uuid.Nil, lead.ID)
	s.Equal(models.LeadStatusNew, lead.Status)
}

func (s *LeadHandlerSuite) TestCreateLeadArray() {
	body := `[
		{"trainerName":"Alex","memberName":"Jamie","email":"a1@example.com"},
		{"trainerName":"Sam","memberName":"Riley","email":"a2@example.com"}
	]`
	c, rec := s.request(http.MethodPost, "/api/leads", body)
	s.NoError(s.handler.CreateLeads(c))
	s.Equal(http.StatusCreated, rec.Code)

	var resp struct {
		Data []models.Lead `json:"data"`
	}
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Len(resp.Data, 2)
}

func (s *LeadHandlerSuite) TestCreateEmptyBody() {
	c, rec := s.request(http.MethodPost, "/api/leads", "")
	s.NoError(s.handler.CreateLeads(c))
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal(string(errors.LeadEmptyPayload), string(s.decodeError(rec).Code))
}

func (s *LeadHandlerSuite) TestCreateEmptyArray() {
	c, rec := s.request(http.MethodPost, "/api/leads", "[]")
	s.NoError(s.handler.CreateLeads(c))
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal(string(errors.LeadEmptyPayload), string(s.decodeError(rec).Code))
}

func (s *LeadHandlerSuite) TestCreateValidationFailure() {
	body := `{"trainerName":"Alex","memberName":"Jamie","email":"not-an-email"}`
	c, rec := s.request(http.MethodPost, "/api/leads", body)
	s.NoError(s.handler.CreateLeads(c))
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal(string(errors.ValidationGeneral), string(s.decodeError(rec).Code))
}

func (s *LeadHandlerSuite) TestCreateInvalidStatus() {
	body := `{"trainerName":"Alex","memberName":"Jamie","email":"x@example.com","status":"archived"}`
	c, rec := s.request(http.MethodPost, "/api/leads", body)
	s.NoError(s.handler.CreateLeads(c))
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *LeadHandlerSuite) TestCreateDuplicateEmail() {
	s.createLead("dup@example.com")

	body := `{"trainerName":"Sam","memberName":"Riley","email":"dup@example.com"}`
	c, rec := s.request(http.MethodPost, "/api/leads", body)
	s.NoError(s.handler.CreateLeads(c))
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal(string(errors.LeadDuplicateEmail), string(s.decodeError(rec).Code))
}

func (s *LeadHandlerSuite) TestCreateMalformedJSON() {
	c, rec := s.request(http.MethodPost, "/api/leads", `{"trainerName":`)
	s.NoError(s.handler.CreateLeads(c))
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *LeadHandlerSuite) TestListWithPagination() {
	for _, email := range []string{"l1@example.com", "l2@example.com", "l3@example.com"} {
		s.createLead(email)
	}

	c, rec := s.request(http.MethodGet, "/api/leads?page=1&limit=2", "")
	s.NoError(s.handler.ListLeads(c))
	s.Equal(http.StatusOK, rec.Code)

	body := s.decodeSuccess(rec)
	s.Equal(true, body["success"])
	s.Len(body["data"], 2)

	pagination := body["pagination"].(map[string]interface{})
	s.EqualValues(3, pagination["total"])
	s.EqualValues(2, pagination["pages"])
}

func (s *LeadHandlerSuite) TestListSearchFilter() {
	s.createLead("findme@example.com")
	s.createLead("other@example.com")

	c, rec := s.request(http.MethodGet, "/api/leads?search=findme", "")
	s.NoError(s.handler.ListLeads(c))
	s.Equal(http.StatusOK, rec.Code)
	s.Len(s.decodeSuccess(rec)["data"], 1)
}

func (s *LeadHandlerSuite) TestListInvalidStatusRejected() {
	c, rec := s.request(http.MethodGet, "/api/leads?status=bogus", "")
	s.NoError(s.handler.ListLeads(c))
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *LeadHandlerSuite) TestUpdateLead() {
	lead := s.createLead("update@example.com")

	c, rec := s.request(http.MethodPut, "/", `{"status":"qualified"}`)
	c.SetParamNames("id")
	c.SetParamValues(lead.ID.String())

	s.NoError(s.handler.UpdateLead(c))
	s.Equal(http.StatusOK, rec.Code)

	var resp struct {
		Data models.Lead `json:"data"`
	}
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal(models.LeadStatusQualified, resp.Data.Status)
}

func (s *LeadHandlerSuite) TestUpdateLeadInvalidID() {
	c, rec := s.request(http.MethodPut, "/", `{"status":"qualified"}`)
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	s.NoError(s.handler.UpdateLead(c))
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal(string(errors.LeadInvalidID), string(s.decodeError(rec).Code))
}

func (s *LeadHandlerSuite) TestUpdateLeadNotFound() {
	c, rec := s.request(http.MethodPut, "/", `{"status":"qualified"}`)
	c.SetParamNames("id")
	c.SetParamValues(uuid.New().String())

	s.NoError(s.handler.UpdateLead(c))
	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal(string(errors.LeadNotFound), string(s.decodeError(rec).Code))
}

func (s *LeadHandlerSuite) TestDeleteLead() {
	lead := s.createLead("delete@example.com")

	c, rec := s.request(http.MethodDelete, "/", "")
	c.SetParamNames("id")
	c.SetParamValues(lead.ID.String())

	s.NoError(s.handler.DeleteLead(c))
	s.Equal(http.StatusOK, rec.Code)
}

func (s *LeadHandlerSuite) TestDeleteLeadNotFound() {
	c, rec := s.request(http.MethodDelete, "/", "")
	c.SetParamNames("id")
	c.SetParamValues(uuid.New().String())

	s.NoError(s.handler.DeleteLead(c))
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *LeadHandlerSuite) TestDeleteLeadInvalidID() {
	c, rec := s.request(http.MethodDelete, "/", "")
	c.SetParamNames("id")
	c.SetParamValues("42")

	s.NoError(s.handler.DeleteLead(c))
	s.Equal(http.StatusBadRequest, rec.Code)
}
