package repositories

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"leadhub/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrLeadNotFound   = errors.New("lead not found")
	ErrDuplicateEmail = errors.New("lead email already exists")
)

// LeadRepository handles database operations for leads
type LeadRepository struct {
	db *gorm.DB
}

// NewLeadRepository creates a new lead repository
func NewLeadRepository(db *gorm.DB) LeadRepositoryInterface {
	return &LeadRepository{
		db: db,
	}
}

// Create creates a single lead
func (r *LeadRepository) Create(lead *models.Lead) error {
	if lead == nil {
		return errors.New("lead cannot be nil")
	}

	if err := r.db.Create(lead).Error; err != nil {
		if isDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create lead: %w", err)
	}

	return nil
}

// CreateBatch creates multiple leads in a single transaction. The batch is
// all-or-nothing: one duplicate email rolls back every record.
func (r *LeadRepository) CreateBatch(leads []*models.Lead) error {
	if len(leads) == 0 {
		return errors.New("leads cannot be empty")
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		for _, lead := range leads {
			if err := tx.Create(lead).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if isDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create leads: %w", err)
	}

	return nil
}

// GetByID retrieves a lead by its ID
func (r *LeadRepository) GetByID(id uuid.UUID) (*models.Lead, error) {
	var lead models.Lead
	if err := r.db.Where("id = ?", id).First(&lead).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLeadNotFound
		}
		return nil, fmt.Errorf("failed to get lead by ID: %w", err)
	}

	return &lead, nil
}

// List returns a page of leads matching the filters plus the total count.
// Search is a case-insensitive substring match across trainer name, member
// name, and email.
func (r *LeadRepository) List(filters models.LeadFilters, offset, limit int) ([]models.Lead, int64, error) {
	var leads []models.Lead
	var total int64

	query := r.db.Model(&models.Lead{})

	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}

	if filters.Search != "" {
		pattern := "%" + strings.ToLower(filters.Search) + "%"
		query = query.Where(
			"LOWER(trainer_name) LIKE ? OR LOWER(member_name) LIKE ? OR LOWER(email) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count leads: %w", err)
	}

	order := fmt.Sprintf("%s %s", filters.SortColumn(), filters.SortOrder())
	if err := query.Order(order).Offset(offset).Limit(limit).Find(&leads).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list leads: %w", err)
	}

	return leads, total, nil
}

// Update applies a partial update and returns the updated record
func (r *LeadRepository) Update(id uuid.UUID, fields map[string]interface{}) (*models.Lead, error) {
	result := r.db.Model(&models.Lead{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		if isDuplicateKeyError(result.Error) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to update lead: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return nil, ErrLeadNotFound
	}

	return r.GetByID(id)
}

// Delete removes a lead
func (r *LeadRepository) Delete(id uuid.UUID) error {
	result := r.db.Where("id = ?", id).Delete(&models.Lead{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete lead: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrLeadNotFound
	}

	return nil
}

// Aggregate runs the chart-data query: group by groupColumn, aggregate
// valueColumn, optionally bounded to an inclusive updated_at range, ordered
// ascending by group value. Both column names come from the model whitelist,
// never from raw client input.
func (r *LeadRepository) Aggregate(groupColumn, valueColumn string, aggregation models.Aggregation, from, to *time.Time) ([]models.ChartPoint, error) {
	var points []models.ChartPoint

	query := r.db.Model(&models.Lead{}).
		Select(fmt.Sprintf("%s AS name, %s AS value", groupColumn, aggregateExpr(aggregation, valueColumn))).
		Group(groupColumn).
		Order(groupColumn + " ASC")

	if from != nil {
		query = query.Where("updated_at >= ?", *from)
	}
	if to != nil {
		query = query.Where("updated_at <= ?", *to)
	}

	if err := query.Scan(&points).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate leads: %w", err)
	}

	if points == nil {
		points = []models.ChartPoint{}
	}

	return points, nil
}

// aggregateExpr builds the SQL aggregate for the chart value column. Non-count
// kinds coerce the column to a numeric before aggregating, matching the loose
// typing of the upstream data (phone and similar fields arrive as strings).
func aggregateExpr(aggregation models.Aggregation, column string) string {
	switch aggregation {
	case models.AggregationCount:
		return "COUNT(*)"
	case models.AggregationSum:
		return fmt.Sprintf("SUM(CAST(%s AS REAL))", column)
	case models.AggregationAvg:
		return fmt.Sprintf("AVG(CAST(%s AS REAL))", column)
	case models.AggregationMin:
		return fmt.Sprintf("MIN(CAST(%s AS REAL))", column)
	case models.AggregationMax:
		return fmt.Sprintf("MAX(CAST(%s AS REAL))", column)
	default:
		return "COUNT(*)"
	}
}

func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}

	errStr := err.Error()
	// Postgres and sqlite duplicate key error detection
	return strings.Contains(errStr, "duplicate key") ||
		strings.Contains(errStr, "UNIQUE constraint") ||
		strings.Contains(errStr, "23505")
}
