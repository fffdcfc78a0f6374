// Package repositories implements SQLite persistence for the pet store entities.
//
// Each repository implements [models.Repository] for one entity type and runs its statements through a [DBTX],
// which is either the pool or an open transaction.
//
// Key Implementations:
//   - [StoreRepository] : Pet stores; saving cascades to employees and to customer links
//   - [EmployeeRepository] : Employees, always bound to one store
//   - [CustomerRepository] : Customers and their pet_store_customer join rows
//
// Cascade rules follow ownership: a store save deletes employees it no longer lists and unlinks customers it no
// longer lists, a store delete removes its employees and its customer links but never customer rows.
//
// [Gateway.Transact] is the unit of work: every service operation runs inside one transaction, committed when the
// callback returns nil and rolled back otherwise.
package repositories
