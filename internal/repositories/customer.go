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

var _ models.Repository[*models.Customer] = (*CustomerRepository)(nil)

const customerColumns = "c.customer_id, c.customer_name, c.customer_email, c.created_at, c.updated_at"

// CustomerRepository implements models.Repository[*models.Customer].
//
// A customer's store memberships live in pet_store_customer. Save only ever adds join rows; links are removed by
// the store side ([StoreRepository.Save] and [StoreRepository.Delete]).
type CustomerRepository struct {
	db DBTX
}

// NewCustomerRepository creates a new CustomerRepository with the given database connection
func NewCustomerRepository(db DBTX) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// Save inserts a new [models.Customer] or updates an existing one, then links it to each of its stores.
func (r *CustomerRepository) Save(ctx context.Context, customer *models.Customer) error {
	if err := customer.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	var err error
	if customer.IsNew() {
		err = r.create(ctx, customer)
	} else {
		err = r.update(ctx, customer)
	}
	if err != nil {
		return err
	}

	for _, storeID := range customer.StoreIDs() {
		if err := r.link(ctx, storeID, customer.ID()); err != nil {
			return err
		}
	}

	return nil
}

func (r *CustomerRepository) create(ctx context.Context, customer *models.Customer) error {
	query := `
		INSERT INTO customer (customer_name, customer_email, created_at, updated_at)
		VALUES (?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		customer.Name(),
		customer.Email(),
		customer.CreatedAt(),
		customer.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert customer: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read customer id: %w", err)
	}
	customer.SetID(id)

	return nil
}

func (r *CustomerRepository) update(ctx context.Context, customer *models.Customer) error {
	now := time.Now().UTC()

	query := `
		UPDATE customer
		SET customer_name = ?, customer_email = ?, updated_at = ?
		WHERE customer_id = ?
	`

	result, err := r.db.ExecContext(ctx, query, customer.Name(), customer.Email(), now, customer.ID())
	if err != nil {
		return fmt.Errorf("failed to update customer: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("customer with ID=%d %w", customer.ID(), shared.ErrNotFound)
	}

	customer.SetUpdatedAt(now)
	return nil
}

// link records that the customer shops at the store; existing links are left alone.
func (r *CustomerRepository) link(ctx context.Context, storeID, customerID int64) error {
	query := "INSERT OR IGNORE INTO pet_store_customer (pet_store_id, customer_id) VALUES (?, ?)"

	if _, err := r.db.ExecContext(ctx, query, storeID, customerID); err != nil {
		return fmt.Errorf("failed to link customer %d to store %d: %w", customerID, storeID, err)
	}
	return nil
}

// unlinkExcept removes the store's customer links whose customer ids are not in keep. Customer rows are untouched.
func (r *CustomerRepository) unlinkExcept(ctx context.Context, storeID int64, keep []int64) error {
	query := "DELETE FROM pet_store_customer WHERE pet_store_id = ?"
	args := []any{storeID}

	if len(keep) > 0 {
		query += " AND customer_id NOT IN (" + placeholders(len(keep)) + ")"
		for _, id := range keep {
			args = append(args, id)
		}
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to unlink customers of store %d: %w", storeID, err)
	}
	return nil
}

// Get retrieves a customer by ID together with its store ids
func (r *CustomerRepository) Get(ctx context.Context, id int64) (*models.Customer, error) {
	query := "SELECT " + customerColumns + " FROM customer c WHERE c.customer_id = ?"

	customer, err := scanCustomer(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("customer with ID=%d %w", id, shared.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}

	if err := r.loadStoreIDs(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

// Delete removes a customer by ID. Its store links are removed by the foreign key cascade.
func (r *CustomerRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM customer WHERE customer_id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("customer with ID=%d %w", id, shared.ErrNotFound)
	}

	return nil
}

// List retrieves customers ordered by id, each with its store ids.
//
// Supported criteria: "store_id" (int64) restricts the result to customers of one store.
func (r *CustomerRepository) List(ctx context.Context, criteria map[string]any) ([]*models.Customer, error) {
	query := "SELECT " + customerColumns + " FROM customer c"
	args := []any{}

	if storeID, ok := criteriaID(criteria, "store_id"); ok {
		query += " JOIN pet_store_customer psc ON psc.customer_id = c.customer_id WHERE psc.pet_store_id = ?"
		args = append(args, storeID)
	}

	query += " ORDER BY c.customer_id ASC"

	customers, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	for _, customer := range customers {
		if err := r.loadStoreIDs(ctx, customer); err != nil {
			return nil, err
		}
	}

	return customers, nil
}

// query scans all rows before returning so that follow-up statements can reuse the connection.
func (r *CustomerRepository) query(ctx context.Context, query string, args ...any) ([]*models.Customer, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	defer rows.Close()

	var customers []*models.Customer
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, customer)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating customers: %w", err)
	}

	return customers, nil
}

func (r *CustomerRepository) loadStoreIDs(ctx context.Context, customer *models.Customer) error {
	rows, err := r.db.QueryContext(ctx,
		"SELECT pet_store_id FROM pet_store_customer WHERE customer_id = ? ORDER BY pet_store_id", customer.ID())
	if err != nil {
		return fmt.Errorf("failed to query stores of customer %d: %w", customer.ID(), err)
	}
	defer rows.Close()

	for rows.Next() {
		var storeID int64
		if err := rows.Scan(&storeID); err != nil {
			return fmt.Errorf("failed to scan store id: %w", err)
		}
		customer.AddStoreID(storeID)
	}

	return rows.Err()
}

func scanCustomer(row rowScanner) (*models.Customer, error) {
	var (
		id                   int64
		name, email          string
		createdAt, updatedAt time.Time
	)

	if err := row.Scan(&id, &name, &email, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	customer := models.NewCustomer(name, email)
	customer.SetID(id)
	customer.SetCreatedAt(createdAt)
	customer.SetUpdatedAt(updatedAt)

	return customer, nil
}
