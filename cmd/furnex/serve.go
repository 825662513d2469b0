package main

import (
	"fmt"

	furnexhttp "github.com/furnex/furnex/http"
)

// Run executes the serve command. It blocks until the context is
// cancelled, then shuts the server down gracefully.
func (c *ServeCmd) Run(deps *Dependencies) error {
	srv := furnexhttp.NewServer()
	srv.Addr = c.Addr
	srv.Extractor = deps.Extractor
	srv.Logger = deps.Logger
	srv.Version = version

	if err := srv.Open(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	deps.Logger.Info("server listening", "url", srv.URL())
	fmt.Fprintf(deps.Stdout, "Listening on %s\n", srv.URL())

	<-deps.Ctx.Done()

	deps.Logger.Info("shutting down")
	return srv.Close()
}
