package services

import (
	"context"
	"database/sql"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/desertthunder/petstore/internal/models"
	"github.com/desertthunder/petstore/internal/repositories"
	"github.com/desertthunder/petstore/internal/shared"
	tu "github.com/desertthunder/petstore/internal/testing"
)

func setupService(t *testing.T) (*PetStoreService, *sql.DB) {
	t.Helper()
	db := tu.NewTestDB(t)
	return NewPetStoreService(repositories.NewGateway(db), shared.NewLogger(io.Discard)), db
}

func employeeNames(data models.PetStoreData) []string {
	names := make([]string, 0, len(data.Employees))
	for _, e := range data.Employees {
		names = append(names, e.EmployeeName)
	}
	return names
}

func customerEmails(data models.PetStoreData) []string {
	emails := make([]string, 0, len(data.Customers))
	for _, c := range data.Customers {
		emails = append(emails, c.CustomerEmail)
	}
	return emails
}

func TestPetStoreServiceScenario(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t)

	store, err := svc.SavePetStore(ctx, models.PetStoreData{StoreName: "Paws"})
	require.NoError(t, err)
	require.NotNil(t, store.ID)
	assert.Equal(t, int64(1), *store.ID)

	employee, err := svc.SaveEmployee(ctx, 1, models.PetStoreEmployee{EmployeeName: "Alice"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), employee.EmployeeID())

	owned, err := svc.FindEmployee(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), owned.StoreID())

	retrieved, err := svc.RetrievePetStoreByID(ctx, 1)
	require.NoError(t, err)
	require.Len(t, retrieved.Employees, 1)
	assert.Equal(t, int64(1), retrieved.Employees[0].EmployeeID())
	assert.Equal(t, "Alice", retrieved.Employees[0].EmployeeName)

	require.NoError(t, svc.DeletePetStoreByID(ctx, 1))

	_, err = svc.RetrievePetStoreByID(ctx, 1)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestSavePetStore(t *testing.T) {
	ctx := context.Background()

	t.Run("round trip keeps fields", func(t *testing.T) {
		svc, _ := setupService(t)

		input := models.PetStoreData{
			StoreName: "Paws",
			Employees: []models.PetStoreEmployee{{EmployeeName: "Alice"}, {EmployeeName: "Carol"}},
			Customers: []models.PetStoreCustomer{{CustomerName: "Bob", CustomerEmail: "bob@example.com"}},
		}

		saved, err := svc.SavePetStore(ctx, input)
		require.NoError(t, err)
		require.NotNil(t, saved.ID)

		retrieved, err := svc.RetrievePetStoreByID(ctx, saved.StoreID())
		require.NoError(t, err)

		assert.Equal(t, "Paws", retrieved.StoreName)
		assert.Equal(t, []string{"Alice", "Carol"}, employeeNames(retrieved))
		assert.Equal(t, []string{"bob@example.com"}, customerEmails(retrieved))
		assert.Equal(t, saved, retrieved)
		for _, e := range retrieved.Employees {
			assert.NotNil(t, e.ID)
		}
	})

	t.Run("unknown id creates nothing", func(t *testing.T) {
		svc, db := setupService(t)

		_, err := svc.SavePetStore(ctx, models.PetStoreData{
			ID:        models.Int64(42),
			StoreName: "Ghost",
			Employees: []models.PetStoreEmployee{{EmployeeName: "Alice"}},
		})
		require.ErrorIs(t, err, shared.ErrNotFound)
		assert.EqualError(t, err, "pet store with ID=42 not found")

		assert.Equal(t, 0, tu.CountRows(t, db, "pet_store"))
		assert.Equal(t, 0, tu.CountRows(t, db, "employee"))
	})

	t.Run("replaces customers instead of merging", func(t *testing.T) {
		svc, db := setupService(t)

		first, err := svc.SavePetStore(ctx, models.PetStoreData{
			StoreName: "Paws",
			Customers: []models.PetStoreCustomer{
				{CustomerName: "Bob", CustomerEmail: "bob@example.com"},
				{CustomerName: "Dan", CustomerEmail: "dan@example.com"},
			},
		})
		require.NoError(t, err)

		_, err = svc.SavePetStore(ctx, models.PetStoreData{
			ID:        first.ID,
			StoreName: "Paws",
			Customers: []models.PetStoreCustomer{{CustomerName: "Eve", CustomerEmail: "eve@example.com"}},
		})
		require.NoError(t, err)

		retrieved, err := svc.RetrievePetStoreByID(ctx, first.StoreID())
		require.NoError(t, err)
		assert.Equal(t, []string{"eve@example.com"}, customerEmails(retrieved))
		assert.Equal(t, 3, tu.CountRows(t, db, "customer"))
	})

	t.Run("replaces employees and ignores payload ids", func(t *testing.T) {
		svc, db := setupService(t)

		first, err := svc.SavePetStore(ctx, models.PetStoreData{
			StoreName: "Paws",
			Employees: []models.PetStoreEmployee{{EmployeeName: "Alice"}},
		})
		require.NoError(t, err)
		aliceID := first.Employees[0].ID

		second, err := svc.SavePetStore(ctx, models.PetStoreData{
			ID:        first.ID,
			StoreName: "Claws",
			Employees: []models.PetStoreEmployee{{ID: aliceID, EmployeeName: "Alice"}},
		})
		require.NoError(t, err)

		assert.Equal(t, "Claws", second.StoreName)
		require.Len(t, second.Employees, 1)
		assert.NotEqual(t, *aliceID, second.Employees[0].EmployeeID())
		assert.Equal(t, 1, tu.CountRows(t, db, "employee"))

		_, err = svc.FindEmployee(ctx, first.StoreID(), *aliceID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("collapses identical payload children", func(t *testing.T) {
		svc, _ := setupService(t)

		saved, err := svc.SavePetStore(ctx, models.PetStoreData{
			StoreName: "Paws",
			Employees: []models.PetStoreEmployee{{EmployeeName: "Alice"}, {EmployeeName: "Alice"}, {EmployeeName: "Bo"}},
			Customers: []models.PetStoreCustomer{
				{CustomerName: "Bob", CustomerEmail: "bob@example.com"},
				{CustomerName: "Bob", CustomerEmail: "bob@example.com"},
				{CustomerName: "Bob", CustomerEmail: "bob@work.example.com"},
			},
		})
		require.NoError(t, err)

		assert.Equal(t, []string{"Alice", "Bo"}, employeeNames(saved))
		assert.Equal(t, []string{"bob@example.com", "bob@work.example.com"}, customerEmails(saved))
	})
}

func TestSaveEmployee(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*PetStoreService, int64, int64) {
		t.Helper()
		svc, _ := setupService(t)

		paws, err := svc.SavePetStore(ctx, models.PetStoreData{StoreName: "Paws"})
		require.NoError(t, err)
		claws, err := svc.SavePetStore(ctx, models.PetStoreData{StoreName: "Claws"})
		require.NoError(t, err)

		return svc, paws.StoreID(), claws.StoreID()
	}

	t.Run("updates existing employee", func(t *testing.T) {
		svc, paws, _ := setup(t)

		alice, err := svc.SaveEmployee(ctx, paws, models.PetStoreEmployee{EmployeeName: "Alice"})
		require.NoError(t, err)

		renamed, err := svc.SaveEmployee(ctx, paws, models.PetStoreEmployee{ID: alice.ID, EmployeeName: "Alicia"})
		require.NoError(t, err)
		assert.Equal(t, alice.ID, renamed.ID)

		store, err := svc.RetrievePetStoreByID(ctx, paws)
		require.NoError(t, err)
		assert.Equal(t, []string{"Alicia"}, employeeNames(store))
	})

	t.Run("foreign employee is rejected and unchanged", func(t *testing.T) {
		svc, paws, claws := setup(t)

		alice, err := svc.SaveEmployee(ctx, paws, models.PetStoreEmployee{EmployeeName: "Alice"})
		require.NoError(t, err)

		_, err = svc.SaveEmployee(ctx, claws, models.PetStoreEmployee{ID: alice.ID, EmployeeName: "Mallory"})
		require.ErrorIs(t, err, shared.ErrOwnershipMismatch)
		assert.NotErrorIs(t, err, shared.ErrNotFound)

		employee, err := svc.FindEmployee(ctx, paws, alice.EmployeeID())
		require.NoError(t, err)
		assert.Equal(t, "Alice", employee.Name())
		assert.Equal(t, paws, employee.StoreID())
	})

	t.Run("missing store", func(t *testing.T) {
		svc, _, _ := setup(t)

		_, err := svc.SaveEmployee(ctx, 99, models.PetStoreEmployee{EmployeeName: "Alice"})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("missing employee", func(t *testing.T) {
		svc, paws, _ := setup(t)

		_, err := svc.SaveEmployee(ctx, paws, models.PetStoreEmployee{ID: models.Int64(99), EmployeeName: "Alice"})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestSaveCustomer(t *testing.T) {
	ctx := context.Background()

	t.Run("creates and links", func(t *testing.T) {
		svc, _ := setupService(t)
		store, err := svc.SavePetStore(ctx, models.PetStoreData{StoreName: "Paws"})
		require.NoError(t, err)

		bob, err := svc.SaveCustomer(ctx, store.StoreID(), models.PetStoreCustomer{CustomerName: "Bob", CustomerEmail: "bob@example.com"})
		require.NoError(t, err)
		require.NotNil(t, bob.ID)

		again, err := svc.SaveCustomer(ctx, store.StoreID(), models.PetStoreCustomer{ID: bob.ID, CustomerName: "Bob", CustomerEmail: "robert@example.com"})
		require.NoError(t, err)
		assert.Equal(t, bob.ID, again.ID)

		retrieved, err := svc.RetrievePetStoreByID(ctx, store.StoreID())
		require.NoError(t, err)
		assert.Equal(t, []string{"robert@example.com"}, customerEmails(retrieved))
	})

	t.Run("customer of another store", func(t *testing.T) {
		svc, _ := setupService(t)
		paws, err := svc.SavePetStore(ctx, models.PetStoreData{
			StoreName: "Paws",
			Customers: []models.PetStoreCustomer{{CustomerName: "Bob", CustomerEmail: "bob@example.com"}},
		})
		require.NoError(t, err)
		claws, err := svc.SavePetStore(ctx, models.PetStoreData{StoreName: "Claws"})
		require.NoError(t, err)

		bobID := paws.Customers[0].ID
		_, err = svc.SaveCustomer(ctx, claws.StoreID(), models.PetStoreCustomer{ID: bobID, CustomerName: "Bob"})
		assert.ErrorIs(t, err, shared.ErrOwnershipMismatch)

		_, err = svc.FindCustomer(ctx, claws.StoreID(), *bobID)
		assert.ErrorIs(t, err, shared.ErrOwnershipMismatch)
	})
}

func TestRetrieveAllPetStores(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t)

	stores, err := svc.RetrieveAllPetStores(ctx)
	require.NoError(t, err)
	assert.NotNil(t, stores)
	assert.Empty(t, stores)

	for _, name := range []string{"Paws", "Claws"} {
		_, err := svc.SavePetStore(ctx, models.PetStoreData{
			StoreName: name,
			Employees: []models.PetStoreEmployee{{EmployeeName: "Alice"}},
			Customers: []models.PetStoreCustomer{{CustomerName: "Bob", CustomerEmail: "bob@example.com"}},
		})
		require.NoError(t, err)
	}

	stores, err = svc.RetrieveAllPetStores(ctx)
	require.NoError(t, err)
	require.Len(t, stores, 2)

	assert.Equal(t, "Paws", stores[0].StoreName)
	assert.Equal(t, "Claws", stores[1].StoreName)
	for _, store := range stores {
		assert.Empty(t, store.Employees)
		assert.Empty(t, store.Customers)
	}
}

func TestDeletePetStoreByID(t *testing.T) {
	ctx := context.Background()

	t.Run("shared customer survives", func(t *testing.T) {
		svc, db := setupService(t)

		paws, err := svc.SavePetStore(ctx, models.PetStoreData{
			StoreName: "Paws",
			Employees: []models.PetStoreEmployee{{EmployeeName: "Alice"}},
			Customers: []models.PetStoreCustomer{{CustomerName: "Bob", CustomerEmail: "bob@example.com"}},
		})
		require.NoError(t, err)
		claws, err := svc.SavePetStore(ctx, models.PetStoreData{StoreName: "Claws"})
		require.NoError(t, err)

		bobID := paws.Customers[0].CustomerID()
		err = repositories.NewGateway(db).Transact(ctx, false, func(repos *repositories.Repositories) error {
			bob, err := repos.Customers.Get(ctx, bobID)
			if err != nil {
				return err
			}
			bob.AddStoreID(claws.StoreID())
			return repos.Customers.Save(ctx, bob)
		})
		require.NoError(t, err)

		require.NoError(t, svc.DeletePetStoreByID(ctx, paws.StoreID()))

		_, err = svc.FindStore(ctx, paws.StoreID())
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.Equal(t, 0, tu.CountRows(t, db, "employee"))

		bob, err := svc.FindCustomer(ctx, claws.StoreID(), bobID)
		require.NoError(t, err)
		assert.Equal(t, []int64{claws.StoreID()}, bob.StoreIDs())
	})

	t.Run("missing store", func(t *testing.T) {
		svc, _ := setupService(t)

		err := svc.DeletePetStoreByID(ctx, 7)
		require.ErrorIs(t, err, shared.ErrNotFound)
		assert.EqualError(t, err, "pet store with ID=7 not found")
	})
}

func TestFind(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t)

	_, err := svc.FindStore(ctx, 1)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, err = svc.FindEmployee(ctx, 1, 1)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, err = svc.FindCustomer(ctx, 1, 1)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
