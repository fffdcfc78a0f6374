package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/desertthunder/petstore/internal/formatter"
	"github.com/desertthunder/petstore/internal/models"
	"github.com/desertthunder/petstore/internal/shared"
)

// BulkExportOpts contains configuration for bulk store exports.
type BulkExportOpts struct {
	Format     string  // Export format: json, csv, markdown, text
	OutputDir  string  // Base output directory (default: pet_store_export_{epoch})
	NumWorkers int     // Concurrent file writers (default: 4)
	RateLimit  float64 // Store loads per second (default: 20)
}

// StoreExportJob is a loaded store waiting to be written.
type StoreExportJob struct {
	StoreID int64
	Data    models.PetStoreData
}

// StoreExportResult is the outcome of exporting one store.
type StoreExportResult struct {
	StoreID   int64    `json:"store_id"`
	StoreName string   `json:"store_name"`
	Success   bool     `json:"success"`
	Files     []string `json:"files,omitempty"`
	Error     error    `json:"-"`
	Message   string   `json:"error,omitempty"`
}

// BulkExportResult summarizes a bulk export and is written as the manifest.
type BulkExportResult struct {
	TotalStores       int                 `json:"total_stores"`
	SuccessfulExports int                 `json:"successful_exports"`
	FailedExports     int                 `json:"failed_exports"`
	Format            string              `json:"format"`
	OutputDirectory   string              `json:"output_directory"`
	ManifestPath      string              `json:"-"`
	Results           []StoreExportResult `json:"results"`
}

// BulkExport exports stores concurrently with rate limiting and progress tracking.
//
// An empty ids list exports every store. Stores are loaded one at a time through the service and handed to a
// pool of workers that render and write the files. Failures are recorded per store; the returned error is reserved
// for setup failures, cancellation and the manifest.
func (e *StoreEngine) BulkExport(
	ctx context.Context,
	prog chan<- ProgressUpdate,
	ids []int64,
	opts BulkExportOpts,
) (*BulkExportResult, error) {
	if e.service == nil {
		return nil, fmt.Errorf("%w: service not initialized", shared.ErrServiceUnavailable)
	}

	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("pet_store_export_%d", time.Now().Unix())
	}
	if opts.Format == "" {
		opts.Format = formatter.FormatJSON
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 4
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 20.0
	}

	if len(ids) == 0 {
		summaries, err := e.service.RetrieveAllPetStores(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list pet stores: %w", err)
		}
		for _, s := range summaries {
			ids = append(ids, s.StoreID())
		}
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &BulkExportResult{
		TotalStores:     len(ids),
		Format:          opts.Format,
		OutputDirectory: opts.OutputDir,
		Results:         make([]StoreExportResult, 0, len(ids)),
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	jobs := make(chan StoreExportJob, len(ids))
	results := make(chan StoreExportResult, len(ids))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go e.exportWorker(ctx, &wg, jobs, results, opts)
	}

	go func() {
		defer close(jobs)
		e.sendProgress(prog, fetchingStoresUpdate(len(ids)))
		for i, id := range ids {
			if err := limiter.Wait(ctx); err != nil {
				return
			}

			data, err := e.service.RetrievePetStoreByID(ctx, id)
			if err != nil {
				results <- StoreExportResult{
					StoreID:   id,
					StoreName: fmt.Sprintf("Unknown (%d)", id),
					Error:     fmt.Errorf("failed to load pet store: %w", err),
				}
				continue
			}

			jobs <- StoreExportJob{StoreID: id, Data: data}
			e.sendProgress(prog, fetchStoreUpdate(i+1, len(ids), data.StoreName))
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		if res.Error != nil {
			res.Message = res.Error.Error()
		}
		result.Results = append(result.Results, res)

		if res.Success {
			result.SuccessfulExports++
			e.sendProgress(prog, exportCompletedUpdate(completed, len(ids), res.StoreName, len(res.Files)))
		} else {
			result.FailedExports++
			e.sendProgress(prog, exportFailedUpdate(completed, len(ids), res.StoreName, res.Error))
		}
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}

	manifest, err := formatter.MarshalJSON(result, true)
	if err != nil {
		return result, fmt.Errorf("export completed but failed to encode manifest: %w", err)
	}

	manifestPath := filepath.Join(opts.OutputDir, "export_manifest.json")
	if err := os.WriteFile(manifestPath, manifest, 0644); err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath

	return result, nil
}

// exportWorker is a worker goroutine that writes stores from the jobs channel.
//
// Jobs are drained even after cancellation so the producer never blocks on a full channel.
func (e *StoreEngine) exportWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	jobs <-chan StoreExportJob,
	results chan<- StoreExportResult,
	opts BulkExportOpts,
) {
	defer wg.Done()

	for job := range jobs {
		res := StoreExportResult{StoreID: job.StoreID, StoreName: job.Data.StoreName}

		if err := ctx.Err(); err != nil {
			res.Error = err
			results <- res
			continue
		}

		path, err := formatter.WriteExport(job.Data, opts.Format, opts.OutputDir)
		if err != nil {
			res.Error = fmt.Errorf("%s export failed: %w", opts.Format, err)
		} else {
			res.Files = []string{path}
			res.Success = true
		}
		results <- res
	}
}
