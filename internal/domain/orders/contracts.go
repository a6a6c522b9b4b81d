package orders

import "context"

// OrderRepository defines the interface for clinical order operations
type OrderRepository interface {
	// Create adds a new ClinicalOrder to the database
	Create(ctx context.Context, order *ClinicalOrder) error
	// List lists ClinicalOrders in the database with optional filter
	List(ctx context.Context, query *OrderQuery) ([]*ClinicalOrder, error)
	// GetByCode retrieves a ClinicalOrder by its announced code
	GetByCode(ctx context.Context, code string) (*ClinicalOrder, error)
	// UpdateByID updates a ClinicalOrder in the database by ID
	UpdateByID(ctx context.Context, order *ClinicalOrder) error
}
