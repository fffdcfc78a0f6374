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

var _ models.Repository[*models.Employee] = (*EmployeeRepository)(nil)

const employeeColumns = "employee_id, pet_store_id, employee_name, created_at, updated_at"

// EmployeeRepository implements models.Repository[*models.Employee].
//
// Employees always carry the id of their owning store; the pet_store foreign key rejects orphans.
type EmployeeRepository struct {
	db DBTX
}

// NewEmployeeRepository creates a new EmployeeRepository with the given database connection
func NewEmployeeRepository(db DBTX) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

// Save inserts a new [models.Employee] or updates an existing one.
func (r *EmployeeRepository) Save(ctx context.Context, employee *models.Employee) error {
	if err := employee.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	if employee.IsNew() {
		return r.create(ctx, employee)
	}
	return r.update(ctx, employee)
}

func (r *EmployeeRepository) create(ctx context.Context, employee *models.Employee) error {
	query := `
		INSERT INTO employee (pet_store_id, employee_name, created_at, updated_at)
		VALUES (?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		employee.StoreID(),
		employee.Name(),
		employee.CreatedAt(),
		employee.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert employee: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read employee id: %w", err)
	}
	employee.SetID(id)

	return nil
}

func (r *EmployeeRepository) update(ctx context.Context, employee *models.Employee) error {
	now := time.Now().UTC()

	query := `
		UPDATE employee
		SET pet_store_id = ?, employee_name = ?, updated_at = ?
		WHERE employee_id = ?
	`

	result, err := r.db.ExecContext(ctx, query, employee.StoreID(), employee.Name(), now, employee.ID())
	if err != nil {
		return fmt.Errorf("failed to update employee: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("employee with ID=%d %w", employee.ID(), shared.ErrNotFound)
	}

	employee.SetUpdatedAt(now)
	return nil
}

// Get retrieves an employee by ID
func (r *EmployeeRepository) Get(ctx context.Context, id int64) (*models.Employee, error) {
	query := "SELECT " + employeeColumns + " FROM employee WHERE employee_id = ?"

	employee, err := scanEmployee(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("employee with ID=%d %w", id, shared.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	return employee, nil
}

// Delete removes an employee by ID
func (r *EmployeeRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM employee WHERE employee_id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("employee with ID=%d %w", id, shared.ErrNotFound)
	}

	return nil
}

// List retrieves employees ordered by id.
//
// Supported criteria: "store_id" (int64) restricts the result to one store.
func (r *EmployeeRepository) List(ctx context.Context, criteria map[string]any) ([]*models.Employee, error) {
	query := "SELECT " + employeeColumns + " FROM employee WHERE 1 = 1"
	args := []any{}

	if storeID, ok := criteriaID(criteria, "store_id"); ok {
		query += " AND pet_store_id = ?"
		args = append(args, storeID)
	}

	query += " ORDER BY employee_id ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	var employees []*models.Employee
	for rows.Next() {
		employee, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, employee)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating employees: %w", err)
	}

	return employees, nil
}

// deleteExcept removes the employees of a store whose ids are not in keep.
func (r *EmployeeRepository) deleteExcept(ctx context.Context, storeID int64, keep []int64) error {
	query := "DELETE FROM employee WHERE pet_store_id = ?"
	args := []any{storeID}

	if len(keep) > 0 {
		query += " AND employee_id NOT IN (" + placeholders(len(keep)) + ")"
		for _, id := range keep {
			args = append(args, id)
		}
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to remove employees of store %d: %w", storeID, err)
	}
	return nil
}

func scanEmployee(row rowScanner) (*models.Employee, error) {
	var (
		id, storeID          int64
		name                 string
		createdAt, updatedAt time.Time
	)

	if err := row.Scan(&id, &storeID, &name, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	employee := models.NewEmployee(name)
	employee.SetID(id)
	employee.SetStoreID(storeID)
	employee.SetCreatedAt(createdAt)
	employee.SetUpdatedAt(updatedAt)

	return employee, nil
}
