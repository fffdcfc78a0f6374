// Package tasks runs bulk pet store operations with real-time progress reporting.
//
// # Core Operations
//
//  1. [StoreEngine.BulkExport] : Write many stores to disk
//     - Loads each store through the service, paced by a rate limiter
//     - Renders files concurrently in a bounded worker pool
//     - Writes export_manifest.json summarizing every result
//
//  2. [StoreEngine.Import] : Save a list of stores read from a JSON file
//     - Each store is saved in its own transaction, so one failure does not undo the others
//     - Per-store outcomes are collected in [ImportResult]
//
// # Progress Reporting
//
// All operations use non-blocking channels for progress updates.
//
// The [ProgressUpdate] struct contains phase, step counters and a message. Updates use select with default to
// prevent blocking, so a slow or absent reader never stalls an operation.
package tasks
