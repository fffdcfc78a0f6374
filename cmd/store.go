package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/desertthunder/petstore/internal/formatter"
	"github.com/desertthunder/petstore/internal/models"
	"github.com/desertthunder/petstore/internal/shared"
	"github.com/desertthunder/petstore/internal/tasks"
	"github.com/urfave/cli/v3"
)

// StoreList prints every pet store without employees and customers.
func (r *Runner) StoreList(ctx context.Context, cmd *cli.Command) error {
	service, err := r.petStores(ctx)
	if err != nil {
		return err
	}

	stores, err := service.RetrieveAllPetStores(ctx)
	if err != nil {
		return err
	}

	r.logger.Debug("listed pet stores", "count", len(stores))

	if cmd.Bool("json") {
		return r.writeJSON(stores, cmd.Bool("pretty"))
	}

	if len(stores) == 0 {
		return r.writePlain("%s\n", styles.Help("No pet stores yet."))
	}
	return r.writePlain("%s", formatter.SummariesToText(stores))
}

// StoreShow prints one pet store in the requested format.
func (r *Runner) StoreShow(ctx context.Context, cmd *cli.Command) error {
	id, err := parseID(cmd.StringArg("id"))
	if err != nil {
		return err
	}

	service, err := r.petStores(ctx)
	if err != nil {
		return err
	}

	data, err := service.RetrievePetStoreByID(ctx, id)
	if err != nil {
		return err
	}

	out, err := formatter.Export(data, cmd.String("format"))
	if err != nil {
		return err
	}
	return r.writePlain("%s", out)
}

// StoreCreate creates a pet store, or replaces one when --id is given, from flags.
//
// Customers are given as NAME:EMAIL.
func (r *Runner) StoreCreate(ctx context.Context, cmd *cli.Command) error {
	data := models.PetStoreData{
		StoreName: cmd.String("name"),
		Employees: []models.PetStoreEmployee{},
		Customers: []models.PetStoreCustomer{},
	}
	if id := cmd.Int64("id"); id != 0 {
		data.ID = models.Int64(id)
	}

	for _, name := range cmd.StringSlice("employee") {
		data.Employees = append(data.Employees, models.PetStoreEmployee{EmployeeName: name})
	}
	for _, value := range cmd.StringSlice("customer") {
		customer, err := parseCustomer(value)
		if err != nil {
			return err
		}
		data.Customers = append(data.Customers, customer)
	}

	service, err := r.petStores(ctx)
	if err != nil {
		return err
	}

	r.logger.Info("creating pet store", "name", data.StoreName, "id", data.StoreID())

	saved, err := service.SavePetStore(ctx, data)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(saved, true)
	}
	return r.writePlain("%s saved pet store %s (ID=%d) with %d employees and %d customers\n",
		styles.OK("✓"), saved.StoreName, saved.StoreID(), len(saved.Employees), len(saved.Customers))
}

// StoreDelete deletes a pet store and its employees.
func (r *Runner) StoreDelete(ctx context.Context, cmd *cli.Command) error {
	id, err := parseID(cmd.StringArg("id"))
	if err != nil {
		return err
	}

	service, err := r.petStores(ctx)
	if err != nil {
		return err
	}

	r.logger.Info("deleting pet store", "id", id)

	if err := service.DeletePetStoreByID(ctx, id); err != nil {
		return err
	}
	return r.writePlain("%s Pet store with ID=%d was deleted successfully.\n", styles.OK("✓"), id)
}

// StoreExport writes one file per pet store plus a manifest. Without ids every store is exported.
func (r *Runner) StoreExport(ctx context.Context, cmd *cli.Command) error {
	var ids []int64
	for _, arg := range cmd.Args().Slice() {
		id, err := parseID(arg)
		if err != nil {
			return err
		}
		ids = append(ids, id)
	}

	if _, err := r.petStores(ctx); err != nil {
		return err
	}

	opts := tasks.BulkExportOpts{
		Format:     cmd.String("format"),
		OutputDir:  cmd.String("dir"),
		NumWorkers: cmd.Int("workers"),
		RateLimit:  cmd.Float("rate"),
	}

	r.logger.Info("exporting pet stores", "count", len(ids), "format", opts.Format)

	progressCh := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			switch update.Phase {
			case tasks.FetchStores:
				r.writePlain("%s\n", styles.Help(update.Message))
			default:
				r.writePlain("   [%d/%d] %s\n", update.Step, update.Total, update.Message)
			}
		}
	}()

	result, err := r.engine.BulkExport(ctx, progressCh, ids, opts)
	close(progressCh)
	<-done

	if err != nil {
		return err
	}

	r.writePlain("\n")
	r.writePlainHeader("Export Complete")
	r.writePlain("Directory: %s\n", result.OutputDirectory)
	r.writePlain("Manifest: %s\n", result.ManifestPath)
	r.writePlain("Exported: %d/%d\n", result.SuccessfulExports, result.TotalStores)

	if result.FailedExports > 0 {
		r.writePlain("\n%s\n", styles.Err(fmt.Sprintf("Failed to export %d pet stores:", result.FailedExports)))
		for _, res := range result.Results {
			if !res.Success {
				r.writePlain("  - ID=%d: %s\n", res.StoreID, res.Message)
			}
		}
	}
	return nil
}

// StoreImport saves every pet store found in a JSON file.
func (r *Runner) StoreImport(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("file")
	if path == "" {
		return fmt.Errorf("%w: import file", shared.ErrMissingArgument)
	}

	stores, err := tasks.ReadImportFile(path)
	if err != nil {
		return err
	}

	if _, err := r.petStores(ctx); err != nil {
		return err
	}

	r.logger.Info("importing pet stores", "path", path, "count", len(stores))

	result, err := r.engine.Import(ctx, nil, stores)
	if err != nil {
		return err
	}

	for _, res := range result.Results {
		if res.Error != nil {
			r.writePlain("%s %s: %v\n", styles.Err("✗"), res.StoreName, res.Error)
			continue
		}
		r.writePlain("%s %s (ID=%d)\n", styles.OK("✓"), res.StoreName, res.Saved.StoreID())
	}
	r.writePlainln("Imported %d/%d pet stores", result.Succeeded, result.Total)

	if result.Failed > 0 {
		return fmt.Errorf("%d of %d pet stores failed to import", result.Failed, result.Total)
	}
	return nil
}

// parseID parses a positive store id from a command argument.
func parseID(arg string) (int64, error) {
	if arg == "" {
		return 0, fmt.Errorf("%w: pet store id", shared.ErrMissingArgument)
	}
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: pet store id %q", shared.ErrInvalidArgument, arg)
	}
	return id, nil
}

// parseCustomer splits a NAME:EMAIL flag value at its last colon.
func parseCustomer(value string) (models.PetStoreCustomer, error) {
	i := strings.LastIndex(value, ":")
	if i <= 0 || i == len(value)-1 {
		return models.PetStoreCustomer{}, fmt.Errorf("%w: customer %q must be NAME:EMAIL", shared.ErrInvalidArgument, value)
	}
	return models.PetStoreCustomer{CustomerName: value[:i], CustomerEmail: value[i+1:]}, nil
}
