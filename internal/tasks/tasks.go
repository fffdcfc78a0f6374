// package tasks implements bulk pet store operations.
//
// Operations emit progress updates via channels for non-blocking status reporting to CLI/UI layers.
package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/desertthunder/petstore/internal/models"
	"github.com/desertthunder/petstore/internal/services"
	"github.com/desertthunder/petstore/internal/shared"
)

// StoreEngine runs bulk operations against a [services.Service].
type StoreEngine struct {
	service services.Service
}

// NewStoreEngine creates a new StoreEngine with the provided service.
func NewStoreEngine(service services.Service) *StoreEngine {
	return &StoreEngine{service: service}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *StoreEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// StoreImportResult is the outcome of saving one imported store.
type StoreImportResult struct {
	StoreName string
	Saved     *models.PetStoreData
	Error     error
}

// ImportResult contains per-store outcomes of [StoreEngine.Import].
type ImportResult struct {
	Total     int
	Succeeded int
	Failed    int
	Results   []StoreImportResult
}

// Import saves every store in order. A failed store is recorded and the remaining stores are still saved.
//
// Stores with an id replace the existing store and fail with [shared.ErrNotFound] when it is absent.
func (e *StoreEngine) Import(ctx context.Context, prog chan<- ProgressUpdate, stores []models.PetStoreData) (*ImportResult, error) {
	if e.service == nil {
		return nil, fmt.Errorf("%w: service not initialized", shared.ErrServiceUnavailable)
	}

	result := &ImportResult{Total: len(stores), Results: make([]StoreImportResult, 0, len(stores))}

	for i, data := range stores {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		res := StoreImportResult{StoreName: data.StoreName}
		saved, err := e.service.SavePetStore(ctx, data)
		if err != nil {
			res.Error = err
			result.Failed++
		} else {
			res.Saved = &saved
			result.Succeeded++
		}
		result.Results = append(result.Results, res)

		e.sendProgress(prog, importUpdate(i+1, len(stores), data.StoreName, err))
	}

	return result, nil
}

// ReadImportFile parses a JSON file holding either one store or an array of stores.
func ReadImportFile(path string) ([]models.PetStoreData, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read import file: %w", err)
	}

	var stores []models.PetStoreData
	if err := json.Unmarshal(content, &stores); err == nil {
		return stores, nil
	}

	var single models.PetStoreData
	if err := json.Unmarshal(content, &single); err != nil {
		return nil, fmt.Errorf("%w: %s is not a pet store or a list of pet stores: %v", shared.ErrInvalidInput, path, err)
	}
	return []models.PetStoreData{single}, nil
}
