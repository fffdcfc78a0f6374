package main

import (
	"context"

	"github.com/desertthunder/petstore/internal/models"
	"github.com/urfave/cli/v3"
)

// EmployeeAdd hires a new employee, or updates an existing one when --id is given.
func (r *Runner) EmployeeAdd(ctx context.Context, cmd *cli.Command) error {
	storeID := cmd.Int64("store-id")
	employee := models.PetStoreEmployee{EmployeeName: cmd.String("name")}
	if id := cmd.Int64("id"); id != 0 {
		employee.ID = models.Int64(id)
	}

	service, err := r.petStores(ctx)
	if err != nil {
		return err
	}

	r.logger.Info("adding employee to pet store", "store_id", storeID, "employee_id", employee.EmployeeID())

	saved, err := service.SaveEmployee(ctx, storeID, employee)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(saved, true)
	}
	return r.writePlain("%s saved employee %s (ID=%d) at pet store %d\n",
		styles.OK("✓"), saved.EmployeeName, saved.EmployeeID(), storeID)
}

// CustomerAdd registers a customer with a store, or updates an existing one when --id is given.
func (r *Runner) CustomerAdd(ctx context.Context, cmd *cli.Command) error {
	storeID := cmd.Int64("store-id")
	customer := models.PetStoreCustomer{
		CustomerName:  cmd.String("name"),
		CustomerEmail: cmd.String("email"),
	}
	if id := cmd.Int64("id"); id != 0 {
		customer.ID = models.Int64(id)
	}

	service, err := r.petStores(ctx)
	if err != nil {
		return err
	}

	r.logger.Info("adding customer to pet store", "store_id", storeID, "customer_id", customer.CustomerID())

	saved, err := service.SaveCustomer(ctx, storeID, customer)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(saved, true)
	}
	return r.writePlain("%s saved customer %s <%s> (ID=%d) at pet store %d\n",
		styles.OK("✓"), saved.CustomerName, saved.CustomerEmail, saved.CustomerID(), storeID)
}
