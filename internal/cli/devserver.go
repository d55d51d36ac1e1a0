package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runoshun/taskdeck/internal/app"
)

// newDevServerCommand creates the dev-server command.
func newDevServerCommand(c *app.Container) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "dev-server",
		Short: "Run an in-memory backend for local development",
		Long: `Run an in-memory implementation of the backend REST API.

Data is lost when the server stops. The assistant endpoints answer with
fixed placeholder content.

Examples:
  taskdeck dev-server --addr 127.0.0.1:8000
  TASKDECK_API_URL=http://127.0.0.1:8000/api taskdeck task list`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			srv := c.DevServer()
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Serving http://%s/api/\n", addr)
			return srv.Run(addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8000", "Listen address")
	return cmd
}
