// Package server provides HTTP routing, middleware and the pet store API handlers.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses gorilla/mux internally for method matching and path variables.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface and return their [Route] list, keeping route definitions
// next to the code that serves them.
//
// # Endpoints
//
//	POST   /pet_store                 create or replace a store (200)
//	POST   /pet_store/{id}/employee   add or update an employee (201)
//	POST   /pet_store/{id}/customer   add or update a customer (201)
//	GET    /pet_store                 list store summaries (200)
//	GET    /pet_store/{id}            full store (200)
//	DELETE /pet_store/{id}            delete a store (200)
//	GET    /health                    liveness (200)
//
// # Errors
//
// Failures are answered with an [ErrorResponse]. [StatusFor] maps [shared.ErrNotFound] to 404 and
// [shared.ErrOwnershipMismatch] and malformed input to 400. Anything else is a 500.
package server
