package models

import (
	"fmt"
	"sort"
)

var (
	_ Model = (*Store)(nil)
	_ Model = (*Employee)(nil)
	_ Model = (*Customer)(nil)
)

// Store is a pet store together with its loaded employees and customers.
//
// Employees are owned exclusively and are deleted with the store. Customers are shared and only detached.
type Store struct {
	record
	name      string
	employees []*Employee
	customers []*Customer
}

// NewStore creates an unsaved [Store].
func NewStore(name string) *Store {
	return &Store{record: newRecord(), name: name}
}

func (s *Store) Name() string              { return s.name }
func (s *Store) SetName(name string)       { s.name = name }
func (s *Store) Employees() []*Employee    { return s.employees }
func (s *Store) Customers() []*Customer    { return s.customers }
func (s *Store) ClearEmployees()           { s.employees = nil }
func (s *Store) ClearCustomers()           { s.customers = nil }
func (s *Store) HasEmployee(id int64) bool { return s.employeeIndex(id) >= 0 }
func (s *Store) HasCustomer(id int64) bool { return s.customerIndex(id) >= 0 }

// AddEmployee assigns the store back-reference and adds e to the employee set.
//
// Adding an employee that is already a member replaces the held record, so repeated adds are idempotent.
func (s *Store) AddEmployee(e *Employee) {
	e.storeID = s.id
	if i := s.employeeIndex(e.id); i >= 0 {
		s.employees[i] = e
		return
	}
	s.employees = append(s.employees, e)
}

// AddCustomer links c to the store and adds it to the customer set; repeated adds are idempotent.
func (s *Store) AddCustomer(c *Customer) {
	if s.id != 0 {
		c.AddStoreID(s.id)
	}
	if i := s.customerIndex(c.id); i >= 0 {
		s.customers[i] = c
		return
	}
	s.customers = append(s.customers, c)
}

// SetID records the store identifier and propagates it to the loaded children.
func (s *Store) SetID(id int64) {
	s.id = id
	for _, e := range s.employees {
		e.storeID = id
	}
	for _, c := range s.customers {
		c.AddStoreID(id)
	}
}

// Validate checks that every loaded employee points back at this store.
func (s *Store) Validate() error {
	if s.id == 0 {
		return nil
	}
	for _, e := range s.employees {
		if e.storeID != s.id {
			return fmt.Errorf("employee %d references store %d, not %d", e.id, e.storeID, s.id)
		}
	}
	return nil
}

// employeeIndex finds a persisted employee by id; unsaved employees never match.
func (s *Store) employeeIndex(id int64) int {
	if id == 0 {
		return -1
	}
	for i, e := range s.employees {
		if e.id == id {
			return i
		}
	}
	return -1
}

func (s *Store) customerIndex(id int64) int {
	if id == 0 {
		return -1
	}
	for i, c := range s.customers {
		if c.id == id {
			return i
		}
	}
	return -1
}

// Employee works at exactly one store.
type Employee struct {
	record
	storeID int64
	name    string
}

// NewEmployee creates an unsaved [Employee] without a store.
func NewEmployee(name string) *Employee {
	return &Employee{record: newRecord(), name: name}
}

func (e *Employee) Name() string        { return e.name }
func (e *Employee) SetName(name string) { e.name = name }
func (e *Employee) StoreID() int64      { return e.storeID }
func (e *Employee) SetStoreID(id int64) { e.storeID = id }

// Validate requires the owning store to be set.
func (e *Employee) Validate() error {
	if e.storeID == 0 {
		return fmt.Errorf("employee %q has no owning store", e.name)
	}
	return nil
}

// Customer may shop at several stores.
type Customer struct {
	record
	name     string
	email    string
	storeIDs []int64
}

// NewCustomer creates an unsaved [Customer] without stores.
func NewCustomer(name, email string) *Customer {
	return &Customer{record: newRecord(), name: name, email: email}
}

func (c *Customer) Name() string          { return c.name }
func (c *Customer) SetName(name string)   { c.name = name }
func (c *Customer) Email() string         { return c.email }
func (c *Customer) SetEmail(email string) { c.email = email }

// StoreIDs returns the ids of the stores the customer belongs to in ascending order.
func (c *Customer) StoreIDs() []int64 {
	ids := make([]int64, len(c.storeIDs))
	copy(ids, c.storeIDs)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// BelongsTo reports whether the customer is linked to the store.
func (c *Customer) BelongsTo(storeID int64) bool {
	for _, id := range c.storeIDs {
		if id == storeID {
			return true
		}
	}
	return false
}

// AddStoreID links the customer to a store; linking twice is a no-op.
func (c *Customer) AddStoreID(storeID int64) {
	if storeID == 0 || c.BelongsTo(storeID) {
		return
	}
	c.storeIDs = append(c.storeIDs, storeID)
}

// Validate accepts any customer; name and email are free-form.
func (c *Customer) Validate() error {
	return nil
}
