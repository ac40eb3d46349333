package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/Aashish23092/payslip-filler/dto"
)

func (cli *CLI) newParseCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "parse <report>",
		Short: "Print the placeholders computed from a payroll report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, closeFn := cli.payrollService()
			defer closeFn()

			facts, placeholders, err := svc.Placeholders(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return cli.reporter.Placeholders(dto.PlaceholdersResponse{
				Period:       facts.Period,
				Placeholders: placeholders,
				ProcessedAt:  time.Now().Format(time.RFC3339),
			}, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print placeholders as JSON")
	return cmd
}
