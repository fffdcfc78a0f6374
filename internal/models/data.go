package models

import "sort"

// PetStoreData is the transfer form of a [Store].
//
// Employees and Customers are unordered on the wire; conversions emit them by ascending id.
type PetStoreData struct {
	ID        *int64             `json:"id"`
	StoreName string             `json:"storeName"`
	Customers []PetStoreCustomer `json:"customers"`
	Employees []PetStoreEmployee `json:"employees"`
}

// PetStoreEmployee is the transfer form of an [Employee].
type PetStoreEmployee struct {
	ID           *int64 `json:"id"`
	EmployeeName string `json:"employeeName"`
}

// PetStoreCustomer is the transfer form of a [Customer].
type PetStoreCustomer struct {
	ID            *int64 `json:"id"`
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
}

// NewPetStoreData converts a store and its loaded children.
func NewPetStoreData(s *Store) PetStoreData {
	data := PetStoreData{
		ID:        idPtr(s.ID()),
		StoreName: s.Name(),
		Customers: make([]PetStoreCustomer, 0, len(s.Customers())),
		Employees: make([]PetStoreEmployee, 0, len(s.Employees())),
	}

	for _, c := range s.Customers() {
		data.Customers = append(data.Customers, NewPetStoreCustomer(c))
	}
	for _, e := range s.Employees() {
		data.Employees = append(data.Employees, NewPetStoreEmployee(e))
	}

	sort.Slice(data.Customers, func(i, j int) bool { return idOf(data.Customers[i].ID) < idOf(data.Customers[j].ID) })
	sort.Slice(data.Employees, func(i, j int) bool { return idOf(data.Employees[i].ID) < idOf(data.Employees[j].ID) })

	return data
}

// Summary returns a copy of d with empty child collections.
func (d PetStoreData) Summary() PetStoreData {
	d.Customers = []PetStoreCustomer{}
	d.Employees = []PetStoreEmployee{}
	return d
}

// StoreID returns the id or zero when absent.
func (d PetStoreData) StoreID() int64 { return idOf(d.ID) }

// EmployeeID returns the id or zero when absent.
func (e PetStoreEmployee) EmployeeID() int64 { return idOf(e.ID) }

// CustomerID returns the id or zero when absent.
func (c PetStoreCustomer) CustomerID() int64 { return idOf(c.ID) }

// NewPetStoreEmployee converts an employee.
func NewPetStoreEmployee(e *Employee) PetStoreEmployee {
	return PetStoreEmployee{ID: idPtr(e.ID()), EmployeeName: e.Name()}
}

// NewPetStoreCustomer converts a customer.
func NewPetStoreCustomer(c *Customer) PetStoreCustomer {
	return PetStoreCustomer{ID: idPtr(c.ID()), CustomerName: c.Name(), CustomerEmail: c.Email()}
}

// ToEmployee builds a bare, unsaved employee from the transfer fields. The id is not resolved.
func (e PetStoreEmployee) ToEmployee() *Employee {
	return NewEmployee(e.EmployeeName)
}

// CopyTo overwrites the scalar fields of emp.
func (e PetStoreEmployee) CopyTo(emp *Employee) {
	emp.SetName(e.EmployeeName)
}

// ToCustomer builds a bare, unsaved customer from the transfer fields. The id is not resolved.
func (c PetStoreCustomer) ToCustomer() *Customer {
	return NewCustomer(c.CustomerName, c.CustomerEmail)
}

// CopyTo overwrites the scalar fields of cust.
func (c PetStoreCustomer) CopyTo(cust *Customer) {
	cust.SetName(c.CustomerName)
	cust.SetEmail(c.CustomerEmail)
}

// Int64 returns a pointer to id, for building transfer structures.
func Int64(id int64) *int64 {
	return &id
}

func idPtr(id int64) *int64 {
	if id == 0 {
		return nil
	}
	return &id
}

func idOf(id *int64) int64 {
	if id == nil {
		return 0
	}
	return *id
}
