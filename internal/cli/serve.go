package cli

import (
	"os"
	"os/signal"
	"syscall"

	restapi "github.com/addrsplit/addrsplit/internal/server"
	"github.com/spf13/cobra"
)

func newServeCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the web form and the POST /extract API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.cfg.validate(); err != nil {
				return err
			}

			srv, err := restapi.New(restapi.Config{
				Host:     a.cfg.Host,
				Port:     a.cfg.Port,
				Debug:    a.cfg.Debug,
				Language: a.cfg.Language,
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&a.flags.Host, "host", "0.0.0.0", "address to listen on")
	cmd.Flags().IntVarP(&a.flags.Port, "port", "p", 3067, "port to listen on")
	return cmd
}
