package main

import (
	"context"

	"github.com/desertthunder/petstore/internal/server"
	"github.com/urfave/cli/v3"
)

// Serve runs the HTTP API until the context is cancelled.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	service, err := r.petStores(ctx)
	if err != nil {
		return err
	}

	conf := r.config.Server
	if cmd.IsSet("host") {
		conf.Host = cmd.String("host")
	}
	if cmd.IsSet("port") {
		conf.Port = cmd.Int("port")
	}

	srv := server.NewServer(service, conf, r.logger)
	r.writePlain("%s listening on http://%s\n", styles.Title("petstore"), srv.Addr())
	return srv.Run(ctx)
}
