package dto

// Lead Request DTOs

// CreateLeadRequest contains the fields for a new lead. The create endpoint
// accepts either a single object or an array of these.
type CreateLeadRequest struct {
	TrainerName string `json:"trainerName" validate:"required,min=1,max=255"`
	MemberName  string `json:"memberName" validate:"required,min=1,max=255"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"omitempty,max=50"`
	Status      string `json:"status" validate:"omitempty,lead_status"`
	Source      string `json:"source" validate:"omitempty,max=255"`
	Notes       string `json:"notes"`
}

// UpdateLeadRequest contains a partial update; nil fields are left unchanged
type UpdateLeadRequest struct {
	TrainerName *string `json:"trainerName" validate:"omitempty,min=1,max=255"`
	MemberName  *string `json:"memberName" validate:"omitempty,min=1,max=255"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Phone       *string `json:"phone" validate:"omitempty,max=50"`
	Status      *string `json:"status" validate:"omitempty,lead_status"`
	Source      *string `json:"source" validate:"omitempty,max=255"`
	Notes       *string `json:"notes"`
}

// ListLeadsQuery contains the query parameters of the lead list endpoint
type ListLeadsQuery struct {
	Page      int    `query:"page"`
	Limit     int    `query:"limit"`
	SortBy    string `query:"sortBy"`
	SortOrder string `query:"sortOrder"`
	Status    string `query:"status" validate:"omitempty,lead_status"`
	Search    string `query:"search"`
}

// Lead Response DTOs

// Pagination describes the page window of a list response
type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int   `json:"pages"`
}
