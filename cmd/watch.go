package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Aashish23092/payslip-filler/service"
)

func (cli *CLI) newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch [dir]",
		Short: "Refill the template of dir whenever its report changes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			svc, reader, closeFn := cli.payrollService()
			defer closeFn()

			w := service.NewWatcher(svc, reader, dir, cli.cfg.Watch.Debounce, cli.logger)
			return w.Run(ctx)
		},
	}
}
