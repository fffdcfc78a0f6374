// Package models defines domain entities, persistence interfaces and transfer structures for the pet store service.
//
// The package contains two categories of types:
//
// 1. Persistent Entities: Database-backed records with identity assigned on first save
//   - [Store] : A pet store, owner of its employees and associated with customers
//   - [Employee] : Belongs to exactly one store through [Employee.StoreID]
//   - [Customer] : Shared between stores through the [Customer.StoreIDs] join mapping
//
// 2. Data Transfer Objects (DTOs): Wire structures exchanged with HTTP and CLI clients
//   - [PetStoreData] : Store scalars plus unordered employee and customer collections
//   - [PetStoreEmployee] : Employee id and name
//   - [PetStoreCustomer] : Customer id, name and email
//
// Relations are expressed as foreign-key fields rather than mutual pointers: a [Store] holds its loaded children,
// while children only refer back to stores by id.
//
// All persistent entities implement the [Model] interface and the [Repository] interface defines the persistence
// gateway each entity type is stored through.
package models
