package services

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/petstore/internal/models"
	"github.com/desertthunder/petstore/internal/repositories"
	"github.com/desertthunder/petstore/internal/shared"
)

var _ Service = (*PetStoreService)(nil)

// PetStoreService implements [Service] over a [repositories.Gateway].
type PetStoreService struct {
	gateway *repositories.Gateway
	logger  *log.Logger
}

// NewPetStoreService creates a new [PetStoreService]. A nil logger writes to stderr.
func NewPetStoreService(gateway *repositories.Gateway, logger *log.Logger) *PetStoreService {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &PetStoreService{gateway: gateway, logger: shared.WithLogger(logger, "component", "petstore")}
}

// FindStore returns the store with its employees and customers.
func (s *PetStoreService) FindStore(ctx context.Context, storeID int64) (*models.Store, error) {
	var store *models.Store
	err := s.gateway.Transact(ctx, true, func(repos *repositories.Repositories) error {
		var err error
		store, err = findStore(ctx, repos, storeID)
		return err
	})
	return store, err
}

// FindEmployee returns the employee if it works at the store.
func (s *PetStoreService) FindEmployee(ctx context.Context, storeID, employeeID int64) (*models.Employee, error) {
	var employee *models.Employee
	err := s.gateway.Transact(ctx, true, func(repos *repositories.Repositories) error {
		var err error
		employee, err = findEmployee(ctx, repos, storeID, employeeID)
		return err
	})
	return employee, err
}

// FindCustomer returns the customer if it shops at the store.
func (s *PetStoreService) FindCustomer(ctx context.Context, storeID, customerID int64) (*models.Customer, error) {
	var customer *models.Customer
	err := s.gateway.Transact(ctx, true, func(repos *repositories.Repositories) error {
		var err error
		customer, err = findCustomer(ctx, repos, storeID, customerID)
		return err
	})
	return customer, err
}

// SavePetStore creates a store when data has no id and otherwise replaces the stored one.
//
// The store's employees and customers are rebuilt from the payload as new records. An id with no matching store
// returns [shared.ErrNotFound] and nothing is written.
func (s *PetStoreService) SavePetStore(ctx context.Context, data models.PetStoreData) (models.PetStoreData, error) {
	s.logger.Debug("saving pet store", "id", data.StoreID(), "employees", len(data.Employees), "customers", len(data.Customers))

	var saved models.PetStoreData
	err := s.gateway.Transact(ctx, false, func(repos *repositories.Repositories) error {
		store, err := findOrCreateStore(ctx, repos, data.ID)
		if err != nil {
			return err
		}

		store.SetName(data.StoreName)
		copyEmployees(store, data.Employees)
		copyCustomers(store, data.Customers)

		if err := repos.Stores.Save(ctx, store); err != nil {
			return err
		}

		saved = models.NewPetStoreData(store)
		return nil
	})
	if err != nil {
		return models.PetStoreData{}, err
	}

	s.logger.Debug("saved pet store", "id", saved.StoreID())
	return saved, nil
}

// SaveEmployee creates an employee when data has no id and otherwise updates the existing one.
func (s *PetStoreService) SaveEmployee(ctx context.Context, storeID int64, data models.PetStoreEmployee) (models.PetStoreEmployee, error) {
	s.logger.Debug("saving employee", "store", storeID, "id", data.EmployeeID())

	var saved models.PetStoreEmployee
	err := s.gateway.Transact(ctx, false, func(repos *repositories.Repositories) error {
		store, err := findStore(ctx, repos, storeID)
		if err != nil {
			return err
		}

		employee, err := findOrCreateEmployee(ctx, repos, storeID, data.ID)
		if err != nil {
			return err
		}

		data.CopyTo(employee)
		store.AddEmployee(employee)

		if err := repos.Employees.Save(ctx, employee); err != nil {
			return err
		}

		saved = models.NewPetStoreEmployee(employee)
		return nil
	})
	if err != nil {
		return models.PetStoreEmployee{}, err
	}

	return saved, nil
}

// SaveCustomer creates a customer when data has no id and otherwise updates the existing one. The customer is
// linked to the store either way.
func (s *PetStoreService) SaveCustomer(ctx context.Context, storeID int64, data models.PetStoreCustomer) (models.PetStoreCustomer, error) {
	s.logger.Debug("saving customer", "store", storeID, "id", data.CustomerID())

	var saved models.PetStoreCustomer
	err := s.gateway.Transact(ctx, false, func(repos *repositories.Repositories) error {
		store, err := findStore(ctx, repos, storeID)
		if err != nil {
			return err
		}

		customer, err := findOrCreateCustomer(ctx, repos, storeID, data.ID)
		if err != nil {
			return err
		}

		data.CopyTo(customer)
		store.AddCustomer(customer)

		if err := repos.Customers.Save(ctx, customer); err != nil {
			return err
		}

		saved = models.NewPetStoreCustomer(customer)
		return nil
	})
	if err != nil {
		return models.PetStoreCustomer{}, err
	}

	return saved, nil
}

// RetrieveAllPetStores returns every store in id order with empty child collections.
func (s *PetStoreService) RetrieveAllPetStores(ctx context.Context) ([]models.PetStoreData, error) {
	summaries := []models.PetStoreData{}
	err := s.gateway.Transact(ctx, true, func(repos *repositories.Repositories) error {
		stores, err := repos.Stores.List(ctx, nil)
		if err != nil {
			return err
		}
		for _, store := range stores {
			summaries = append(summaries, models.NewPetStoreData(store).Summary())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("retrieved pet stores", "count", len(summaries))
	return summaries, nil
}

// RetrievePetStoreByID returns the store with its employees and customers.
func (s *PetStoreService) RetrievePetStoreByID(ctx context.Context, id int64) (models.PetStoreData, error) {
	store, err := s.FindStore(ctx, id)
	if err != nil {
		return models.PetStoreData{}, err
	}
	return models.NewPetStoreData(store), nil
}

// DeletePetStoreByID deletes the store and its employees and unlinks its customers.
func (s *PetStoreService) DeletePetStoreByID(ctx context.Context, id int64) error {
	s.logger.Debug("deleting pet store", "id", id)

	return s.gateway.Transact(ctx, false, func(repos *repositories.Repositories) error {
		if _, err := findStore(ctx, repos, id); err != nil {
			return err
		}
		return repos.Stores.Delete(ctx, id)
	})
}

func findStore(ctx context.Context, repos *repositories.Repositories, storeID int64) (*models.Store, error) {
	return repos.Stores.Get(ctx, storeID)
}

func findEmployee(ctx context.Context, repos *repositories.Repositories, storeID, employeeID int64) (*models.Employee, error) {
	employee, err := repos.Employees.Get(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if employee.StoreID() != storeID {
		return nil, fmt.Errorf("%w: employee with ID=%d is not employed by pet store with ID=%d",
			shared.ErrOwnershipMismatch, employeeID, storeID)
	}
	return employee, nil
}

func findCustomer(ctx context.Context, repos *repositories.Repositories, storeID, customerID int64) (*models.Customer, error) {
	customer, err := repos.Customers.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if !customer.BelongsTo(storeID) {
		return nil, fmt.Errorf("%w: customer with ID=%d is not a customer of pet store with ID=%d",
			shared.ErrOwnershipMismatch, customerID, storeID)
	}
	return customer, nil
}

func findOrCreateStore(ctx context.Context, repos *repositories.Repositories, id *int64) (*models.Store, error) {
	if id == nil {
		return models.NewStore(""), nil
	}
	return findStore(ctx, repos, *id)
}

func findOrCreateEmployee(ctx context.Context, repos *repositories.Repositories, storeID int64, id *int64) (*models.Employee, error) {
	if id == nil {
		return models.NewEmployee(""), nil
	}
	return findEmployee(ctx, repos, storeID, *id)
}

func findOrCreateCustomer(ctx context.Context, repos *repositories.Repositories, storeID int64, id *int64) (*models.Customer, error) {
	if id == nil {
		return models.NewCustomer("", ""), nil
	}
	return findCustomer(ctx, repos, storeID, *id)
}

// copyEmployees replaces the store's employees with new records built from the payload, one per distinct name.
func copyEmployees(store *models.Store, employees []models.PetStoreEmployee) {
	store.ClearEmployees()

	seen := make(map[string]bool, len(employees))
	for _, e := range employees {
		if seen[e.EmployeeName] {
			continue
		}
		seen[e.EmployeeName] = true
		store.AddEmployee(e.ToEmployee())
	}
}

// copyCustomers replaces the store's customers with new records built from the payload, one per distinct
// name and email pair.
func copyCustomers(store *models.Store, customers []models.PetStoreCustomer) {
	store.ClearCustomers()

	type key struct{ name, email string }
	seen := make(map[key]bool, len(customers))
	for _, c := range customers {
		k := key{c.CustomerName, c.CustomerEmail}
		if seen[k] {
			continue
		}
		seen[k] = true
		store.AddCustomer(c.ToCustomer())
	}
}
