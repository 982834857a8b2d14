// package models defines the data model for the catalog manager
package models

import (
	"time"
)

// Model defines the base interface for all persistent models in the catalog manager.
type Model interface {
	ID() string           // ID returns the unique identifier for this model
	AddedAt() time.Time   // AddedAt returns when this model entered the catalog
	UpdatedAt() time.Time // UpdatedAt returns when this model was last updated
	Validate() error      // Validate checks if the model's data is valid and returns an error if not
}

// Repository defines the interface for data access operations.
// Implementations handle database interactions for specific model types.
type Repository[T Model] interface {
	Create(model T) error          // Create inserts a new model into the database
	Get(id string) (T, error)      // Get retrieves a model by its ID
	Update(model T) error          // Update modifies an existing model in the database
	Delete(id string) error        // Delete removes a model from the database by its ID
	List(order SortKey) ([]T, error) // List retrieves all models in the given order
}
