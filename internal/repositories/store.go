package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/petstore/internal/models"
	"github.com/desertthunder/petstore/internal/shared"
)

var _ models.Repository[*models.Store] = (*StoreRepository)(nil)

// StoreRepository implements models.Repository[*models.Store].
//
// Stores are loaded with their full graph. Saving a store cascades to the held employees and customers:
// employees not held are deleted, customers not held are only unlinked.
type StoreRepository struct {
	db        DBTX
	employees *EmployeeRepository
	customers *CustomerRepository
}

// NewStoreRepository creates a new StoreRepository with the given database connection
func NewStoreRepository(db DBTX) *StoreRepository {
	return newStoreRepository(db, NewEmployeeRepository(db), NewCustomerRepository(db))
}

func newStoreRepository(db DBTX, employees *EmployeeRepository, customers *CustomerRepository) *StoreRepository {
	return &StoreRepository{db: db, employees: employees, customers: customers}
}

// Save inserts a new [models.Store] or updates an existing one, then reconciles its children.
//
// Updating a store id that has no row returns [shared.ErrNotFound].
func (r *StoreRepository) Save(ctx context.Context, store *models.Store) error {
	if err := store.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	var err error
	if store.IsNew() {
		err = r.create(ctx, store)
	} else {
		err = r.update(ctx, store)
	}
	if err != nil {
		return err
	}

	return r.saveChildren(ctx, store)
}

func (r *StoreRepository) create(ctx context.Context, store *models.Store) error {
	query := `
		INSERT INTO pet_store (store_name, created_at, updated_at)
		VALUES (?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, store.Name(), store.CreatedAt(), store.UpdatedAt())
	if err != nil {
		return fmt.Errorf("failed to insert pet store: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read pet store id: %w", err)
	}
	store.SetID(id)

	return nil
}

func (r *StoreRepository) update(ctx context.Context, store *models.Store) error {
	now := time.Now().UTC()

	query := `
		UPDATE pet_store
		SET store_name = ?, updated_at = ?
		WHERE pet_store_id = ?
	`

	result, err := r.db.ExecContext(ctx, query, store.Name(), now, store.ID())
	if err != nil {
		return fmt.Errorf("failed to update pet store: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("pet store with ID=%d %w", store.ID(), shared.ErrNotFound)
	}

	store.SetUpdatedAt(now)
	return nil
}

// saveChildren persists every held child and drops the rows the store no longer holds.
func (r *StoreRepository) saveChildren(ctx context.Context, store *models.Store) error {
	employeeIDs := make([]int64, 0, len(store.Employees()))
	for _, employee := range store.Employees() {
		employee.SetStoreID(store.ID())
		if err := r.employees.Save(ctx, employee); err != nil {
			return err
		}
		employeeIDs = append(employeeIDs, employee.ID())
	}
	if err := r.employees.deleteExcept(ctx, store.ID(), employeeIDs); err != nil {
		return err
	}

	customerIDs := make([]int64, 0, len(store.Customers()))
	for _, customer := range store.Customers() {
		customer.AddStoreID(store.ID())
		if err := r.customers.Save(ctx, customer); err != nil {
			return err
		}
		customerIDs = append(customerIDs, customer.ID())
	}
	return r.customers.unlinkExcept(ctx, store.ID(), customerIDs)
}

// Get retrieves a store by ID with its employees and customers
func (r *StoreRepository) Get(ctx context.Context, id int64) (*models.Store, error) {
	query := "SELECT pet_store_id, store_name, created_at, updated_at FROM pet_store WHERE pet_store_id = ?"

	store, err := scanStore(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("pet store with ID=%d %w", id, shared.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pet store: %w", err)
	}

	if err := r.loadChildren(ctx, store); err != nil {
		return nil, err
	}

	return store, nil
}

// Delete removes a store and its employees. Its customers are unlinked and kept.
func (r *StoreRepository) Delete(ctx context.Context, id int64) error {
	if err := r.customers.unlinkExcept(ctx, id, nil); err != nil {
		return err
	}
	if err := r.employees.deleteExcept(ctx, id, nil); err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, "DELETE FROM pet_store WHERE pet_store_id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete pet store: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("pet store with ID=%d %w", id, shared.ErrNotFound)
	}

	return nil
}

// List retrieves stores ordered by id, each with its employees and customers.
//
// Supported criteria: "name" (string) matches the store name exactly.
func (r *StoreRepository) List(ctx context.Context, criteria map[string]any) ([]*models.Store, error) {
	query := "SELECT pet_store_id, store_name, created_at, updated_at FROM pet_store WHERE 1 = 1"
	args := []any{}

	if name, ok := criteria["name"].(string); ok && name != "" {
		query += " AND store_name = ?"
		args = append(args, name)
	}

	query += " ORDER BY pet_store_id ASC"

	stores, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	for _, store := range stores {
		if err := r.loadChildren(ctx, store); err != nil {
			return nil, err
		}
	}

	return stores, nil
}

func (r *StoreRepository) query(ctx context.Context, query string, args ...any) ([]*models.Store, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query pet stores: %w", err)
	}
	defer rows.Close()

	var stores []*models.Store
	for rows.Next() {
		store, err := scanStore(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pet store: %w", err)
		}
		stores = append(stores, store)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pet stores: %w", err)
	}

	return stores, nil
}

func (r *StoreRepository) loadChildren(ctx context.Context, store *models.Store) error {
	criteria := map[string]any{"store_id": store.ID()}

	employees, err := r.employees.List(ctx, criteria)
	if err != nil {
		return err
	}
	for _, employee := range employees {
		store.AddEmployee(employee)
	}

	customers, err := r.customers.List(ctx, criteria)
	if err != nil {
		return err
	}
	for _, customer := range customers {
		store.AddCustomer(customer)
	}

	return nil
}

func scanStore(row rowScanner) (*models.Store, error) {
	var (
		id                   int64
		name                 string
		createdAt, updatedAt time.Time
	)

	if err := row.Scan(&id, &name, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	store := models.NewStore(name)
	store.SetID(id)
	store.SetCreatedAt(createdAt)
	store.SetUpdatedAt(updatedAt)

	return store, nil
}
