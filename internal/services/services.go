// package services defines interface Service for pet store record management
package services

import (
	"context"

	"github.com/desertthunder/petstore/internal/models"
)

// Service defines the pet store operations. All data crosses the boundary in transfer form.
type Service interface {
	// SavePetStore creates a store or replaces an existing one, including its employees and customers.
	SavePetStore(ctx context.Context, data models.PetStoreData) (models.PetStoreData, error)

	// SaveEmployee creates or updates an employee of the store.
	SaveEmployee(ctx context.Context, storeID int64, employee models.PetStoreEmployee) (models.PetStoreEmployee, error)

	// SaveCustomer creates or updates a customer and links it to the store.
	SaveCustomer(ctx context.Context, storeID int64, customer models.PetStoreCustomer) (models.PetStoreCustomer, error)

	// RetrieveAllPetStores lists every store without its employees and customers.
	RetrieveAllPetStores(ctx context.Context) ([]models.PetStoreData, error)

	// RetrievePetStoreByID returns one store with its employees and customers.
	RetrievePetStoreByID(ctx context.Context, id int64) (models.PetStoreData, error)

	// DeletePetStoreByID deletes a store and its employees. Customers are kept.
	DeletePetStoreByID(ctx context.Context, id int64) error
}
