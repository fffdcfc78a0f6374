// Package services implements the pet store operations on top of the repositories.
//
// # Service Interface
//
// [Service] is consumed by the HTTP handlers, the CLI and the TUI. [PetStoreService] implements it with one
// transaction per call: reads run in read-only transactions, and any error rolls back everything the call did.
//
// # Lookups
//
// [PetStoreService.FindStore], [PetStoreService.FindEmployee] and [PetStoreService.FindCustomer] are the guards used
// before every mutation:
//   - [shared.ErrNotFound] : no row with the requested id
//   - [shared.ErrOwnershipMismatch] : the child exists but belongs to a different store
//
// # Saving Stores
//
// SavePetStore treats its payload as the complete new state of the store. The current employees are deleted and
// the current customers unlinked; every payload child becomes a new record and payload child ids are ignored.
// Identical payload children collapse to one record: employees by name, customers by name and email.
//
// # Saving Children
//
// SaveEmployee and SaveCustomer add or update a single child of an existing store. Without an id a new child is
// created; with an id the child is looked up and must already belong to the store.
package services
