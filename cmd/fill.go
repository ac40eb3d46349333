package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Aashish23092/payslip-filler/dto"
)

type fillOptions struct {
	report   string
	template string
	out      string
	json     bool
}

func (cli *CLI) newFillCmd() *cobra.Command {
	opts := &fillOptions{}

	cmd := &cobra.Command{
		Use:   "fill [dir]",
		Short: "Fill a template with the values of a payroll report",
		Long: `Without --report and --template, fill picks the first report and the first
template of dir (default: the current directory) and fills the template in place.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return cli.runFill(cmd, dir, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.report, "report", "r", "", "Payroll report file")
	cmd.Flags().StringVarP(&opts.template, "template", "t", "", "Template document")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Output document (default: overwrite the template)")
	cmd.Flags().BoolVar(&opts.json, "json", false, "Print the result as JSON")
	cmd.MarkFlagsRequiredTogether("report", "template")

	return cmd
}

func (cli *CLI) runFill(cmd *cobra.Command, dir string, opts *fillOptions) error {
	svc, _, closeFn := cli.payrollService()
	defer closeFn()

	var (
		result *dto.FillResult
		err    error
	)
	if opts.report == "" {
		if opts.out != "" {
			return fmt.Errorf("--out needs --report and --template")
		}
		result, err = svc.FillDirectory(cmd.Context(), dir)
		if errors.Is(err, dto.ErrNothingToDo) {
			cli.logger.Info().Err(err).Msg("Nothing to fill")
			return nil
		}
	} else {
		result, err = svc.Fill(cmd.Context(), dto.FillRequest{
			ReportPath:   opts.report,
			TemplatePath: opts.template,
			OutputPath:   opts.out,
		})
	}
	if err != nil {
		return err
	}
	return cli.reporter.Fill(result, opts.json)
}
