package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Aashish23092/payslip-filler/handler"
)

const shutdownTimeout = 10 * time.Second

func (cli *CLI) newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the payroll HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if port != "" {
				cli.cfg.Server.Port = port
			}
			return cli.runServer(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (default from config)")
	return cmd
}

func (cli *CLI) runServer(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cli.logger.GetLevel() > zerolog.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	svc, _, closeFn := cli.payrollService()
	defer closeFn()

	router := handler.NewRouter(handler.RouterConfig{
		Payroll:            handler.NewPayrollHandler(svc, cli.cfg.Server.MaxFileSize),
		Logger:             cli.logger,
		MaxMultipartMemory: cli.cfg.Server.MaxMultipartMemory,
	})

	srv := &http.Server{
		Addr:              ":" + cli.cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		cli.logger.Info().Msgf("Starting payslip filler on port %s", cli.cfg.Server.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}

	cli.logger.Info().Msg("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
