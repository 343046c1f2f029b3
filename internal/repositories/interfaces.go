package repositories

import (
	"time"

	"leadhub/internal/models"

	"github.com/google/uuid"
)

// LeadRepositoryInterface defines the store operations for leads
type LeadRepositoryInterface interface {
	Create(lead *models.Lead) error
	CreateBatch(leads []*models.Lead) error
	GetByID(id uuid.UUID) (*models.Lead, error)
	List(filters models.LeadFilters, offset, limit int) ([]models.Lead, int64, error)
	Update(id uuid.UUID, fields map[string]interface{}) (*models.Lead, error)
	Delete(id uuid.UUID) error
	Aggregate(groupColumn, valueColumn string, aggregation models.Aggregation, from, to *time.Time) ([]models.ChartPoint, error)
}
