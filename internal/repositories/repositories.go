// package repositories provides persistence layer implementations for all model types.
//
// Each repository implements models.Repository[T] for a specific entity type.
package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// DBTX is the subset of [sql.DB] and [sql.Tx] the repositories need.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Repositories groups the entity repositories bound to one [DBTX].
type Repositories struct {
	Stores    *StoreRepository
	Employees *EmployeeRepository
	Customers *CustomerRepository
}

// New binds all repositories to db.
func New(db DBTX) *Repositories {
	employees := NewEmployeeRepository(db)
	customers := NewCustomerRepository(db)
	return &Repositories{
		Stores:    newStoreRepository(db, employees, customers),
		Employees: employees,
		Customers: customers,
	}
}

// Gateway opens units of work against a database.
type Gateway struct {
	db *sql.DB
}

// NewGateway creates a new [Gateway] with the given database connection
func NewGateway(db *sql.DB) *Gateway {
	return &Gateway{db: db}
}

// Transact runs fn inside a transaction. The transaction commits when fn returns nil and rolls back otherwise.
//
// readOnly marks transactions that only read; drivers without read-only support treat them as ordinary ones.
func (g *Gateway) Transact(ctx context.Context, readOnly bool, fn func(*Repositories) error) error {
	tx, err := g.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: readOnly})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(New(tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// rowScanner is satisfied by both [sql.Row] and [sql.Rows].
type rowScanner interface {
	Scan(dest ...any) error
}

// placeholders returns "?, ?, ?" for n arguments.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// criteriaID reads an int64 id from List criteria, accepting any integer type.
func criteriaID(criteria map[string]any, key string) (int64, bool) {
	switch v := criteria[key].(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	default:
		return 0, false
	}
}
