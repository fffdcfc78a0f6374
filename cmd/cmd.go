// submodule cmd contains command definitions
package main

import (
	"github.com/desertthunder/petstore/internal/formatter"
	"github.com/desertthunder/petstore/internal/ui"
	"github.com/urfave/cli/v3"
)

var styles = ui.Styles()

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   defaultConfigPath,
	}
}

func jsonFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "json",
		Usage: "Output raw JSON",
	}
}

func storeIDFlag() cli.Flag {
	return &cli.Int64Flag{
		Name:     "store-id",
		Aliases:  []string{"s"},
		Usage:    "ID of the pet store",
		Required: true,
	}
}

// serveCommand runs the HTTP API
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the pet store HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Host to bind (defaults to server.host)",
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to bind (defaults to server.port)",
			},
		},
		Action: r.Serve,
	}
}

func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize configuration and database",
		Commands: []*cli.Command{
			{
				Name:   "database",
				Usage:  "Create the config file if missing, open the database and run migrations",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SetupDatabase,
			},
			{
				Name:   "rollback",
				Usage:  "Roll back the most recent migration",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SetupRollback,
			},
		},
	}
}

// storeCommand handles pet store records
func storeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "store",
		Usage: "Pet store operations",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List pet stores",
				Flags: []cli.Flag{
					jsonFlag(),
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print JSON output",
					},
				},
				Action: r.StoreList,
			},
			{
				Name:  "show",
				Usage: "Show a pet store with its employees and customers",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Output format (text, markdown, csv, json)",
						Value:   formatter.FormatText,
					},
				},
				Action: r.StoreShow,
			},
			{
				Name:  "create",
				Usage: "Create a pet store, or replace one with --id",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "name",
						Aliases:  []string{"n"},
						Usage:    "Pet store name",
						Required: true,
					},
					&cli.Int64Flag{
						Name:  "id",
						Usage: "ID of an existing pet store to replace",
					},
					&cli.StringSliceFlag{
						Name:    "employee",
						Aliases: []string{"e"},
						Usage:   "Employee name (repeatable)",
					},
					&cli.StringSliceFlag{
						Name:  "customer",
						Usage: "Customer as NAME:EMAIL (repeatable)",
					},
					jsonFlag(),
				},
				Action: r.StoreCreate,
			},
			{
				Name:  "delete",
				Usage: "Delete a pet store and its employees",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.StoreDelete,
			},
			{
				Name:      "export",
				Usage:     "Export pet stores to files, one per store",
				ArgsUsage: "[id...]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Output format (text, markdown, csv, json)",
						Value:   formatter.FormatJSON,
					},
					&cli.StringFlag{
						Name:    "dir",
						Aliases: []string{"o"},
						Usage:   "Output directory (default: pet_store_export_{epoch})",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Concurrent file writers",
						Value: 4,
					},
					&cli.FloatFlag{
						Name:  "rate",
						Usage: "Pet store loads per second",
						Value: 20,
					},
				},
				Action: r.StoreExport,
			},
			{
				Name:  "import",
				Usage: "Save pet stores from a JSON file",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "file"},
				},
				Action: r.StoreImport,
			},
		},
	}
}

func employeeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "employee",
		Usage: "Employee operations",
		Commands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Add an employee to a pet store, or update one with --id",
				Flags: []cli.Flag{
					storeIDFlag(),
					&cli.StringFlag{
						Name:     "name",
						Aliases:  []string{"n"},
						Usage:    "Employee name",
						Required: true,
					},
					&cli.Int64Flag{
						Name:  "id",
						Usage: "ID of an existing employee",
					},
					jsonFlag(),
				},
				Action: r.EmployeeAdd,
			},
		},
	}
}

func customerCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "customer",
		Usage: "Customer operations",
		Commands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Add a customer to a pet store, or update one with --id",
				Flags: []cli.Flag{
					storeIDFlag(),
					&cli.StringFlag{
						Name:     "name",
						Aliases:  []string{"n"},
						Usage:    "Customer name",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "email",
						Usage:    "Customer email",
						Required: true,
					},
					&cli.Int64Flag{
						Name:  "id",
						Usage: "ID of an existing customer",
					},
					jsonFlag(),
				},
				Action: r.CustomerAdd,
			},
		},
	}
}

func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"ui"},
		Usage:   "Browse pet stores interactively",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "File that receives logs while the UI runs",
				Value: "./tmp/petstore-tui.log",
			},
		},
		Action: r.TUI,
	}
}
