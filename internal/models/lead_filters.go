package models

// LeadFilters contains filter and ordering criteria for lead list queries
type LeadFilters struct {
	Status        string
	Search        string
	SortBy        string
	SortDirection string
}

// leadSortColumns maps the JSON field names accepted by the list endpoint to
// database columns. Sort input never reaches the query unmapped.
var leadSortColumns = map[string]string{
	"trainerName": "trainer_name",
	"memberName":  "member_name",
	"email":       "email",
	"phone":       "phone",
	"status":      "status",
	"source":      "source",
	"createdAt":   "created_at",
	"updatedAt":   "updated_at",
}

// SortColumn resolves the requested sort field to a column name, falling back
// to created_at for unknown fields.
func (f LeadFilters) SortColumn() string {
	if col, ok := leadSortColumns[f.SortBy]; ok {
		return col
	}
	return "created_at"
}

// SortOrder normalizes the requested direction to ASC or DESC. The original
// API accepted mongo-style 1/-1 numerals alongside asc/desc; both still work.
func (f LeadFilters) SortOrder() string {
	switch f.SortDirection {
	case "asc", "ASC", "1":
		return "ASC"
	default:
		return "DESC"
	}
}
