// package models defines the data model for the pet store service
package models

import (
	"context"
	"time"
)

// Model defines the base interface for all persistent models in the pet store service.
type Model interface {
	// ID returns the identifier assigned by the database, zero until first save
	ID() int64
	// IsNew reports whether the model has never been saved
	IsNew() bool
	// CreatedAt returns when this model was created
	CreatedAt() time.Time
	// UpdatedAt returns when this model was last updated
	UpdatedAt() time.Time
	// Validate checks if the model's data is valid and returns an error if not
	Validate() error
}

// Repository defines the interface for data access operations.
// Implementations handle database interactions for specific model types.
type Repository[T Model] interface {
	// Save inserts a new model or updates an existing one
	Save(ctx context.Context, model T) error
	// Get retrieves a model by its ID
	Get(ctx context.Context, id int64) (T, error)
	// Delete removes a model from the database by its ID
	Delete(ctx context.Context, id int64) error
	// List retrieves all models matching the given criteria
	List(ctx context.Context, criteria map[string]any) ([]T, error)
}

// record carries the identity and timestamps shared by all entities.
type record struct {
	id        int64
	createdAt time.Time
	updatedAt time.Time
}

func newRecord() record {
	now := time.Now().UTC()
	return record{createdAt: now, updatedAt: now}
}

func (r *record) ID() int64            { return r.id }
func (r *record) IsNew() bool          { return r.id == 0 }
func (r *record) CreatedAt() time.Time { return r.createdAt }
func (r *record) UpdatedAt() time.Time { return r.updatedAt }

// SetID records the identifier assigned by the database.
func (r *record) SetID(id int64) { r.id = id }

// SetCreatedAt restores the creation time of a loaded record.
func (r *record) SetCreatedAt(t time.Time) { r.createdAt = t }

// SetUpdatedAt sets the last modification time.
func (r *record) SetUpdatedAt(t time.Time) { r.updatedAt = t }
