// Package cmd implements the payslip command line.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Aashish23092/payslip-filler/client"
	"github.com/Aashish23092/payslip-filler/config"
	"github.com/Aashish23092/payslip-filler/document"
	"github.com/Aashish23092/payslip-filler/service"
)

// CLI holds the state shared by all commands.
type CLI struct {
	cfgPath  string
	logLevel string

	cfg      *config.Config
	logger   zerolog.Logger
	reporter *Reporter
	errOut   io.Writer
	rootCmd  *cobra.Command
}

type Options struct {
	Output io.Writer
	// ErrOutput receives logs.
	ErrOutput io.Writer
}

func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.ErrOutput == nil {
		opts.ErrOutput = os.Stderr
	}

	cli := &CLI{
		reporter: NewReporter(opts.Output),
		errOut:   opts.ErrOutput,
		logger:   zerolog.Nop(),
	}
	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

// SetArgs overrides os.Args, for tests.
func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "payslip",
		Short:         "Fill payslip templates from payroll reports",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return cli.init(cmd)
		},
	}
	cmd.SetOut(cli.reporter.writer)
	cmd.SetErr(cli.errOut)

	cmd.PersistentFlags().StringVarP(&cli.cfgPath, "config", "c", "", "Path to a config file (yaml, toml or json)")
	cmd.PersistentFlags().StringVar(&cli.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	cmd.AddCommand(cli.newFillCmd())
	cmd.AddCommand(cli.newParseCmd())
	cmd.AddCommand(cli.newWordsCmd())
	cmd.AddCommand(cli.newWatchCmd())
	cmd.AddCommand(cli.newServeCmd())

	return cmd
}

func (cli *CLI) init(cmd *cobra.Command) error {
	if err := config.LoadEnvFile(); err != nil {
		return err
	}

	cfg, err := config.LoadConfig(cli.cfgPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = cli.logLevel
	}

	logger, err := config.NewLogger(cfg.Log, cli.errOut)
	if err != nil {
		return err
	}

	cli.cfg = cfg
	cli.logger = logger
	return nil
}

// reportReader wires the PDF processor and the OCR client.
func (cli *CLI) reportReader() (*service.ReportReader, func()) {
	tesseract := client.NewTesseractClient(cli.cfg.Tesseract, cli.logger)
	reader := service.NewReportReader(service.NewPDFProcessor(), tesseract, cli.cfg.Report, cli.logger)
	return reader, tesseract.Close
}

func (cli *CLI) payrollService() (*service.PayrollService, *service.ReportReader, func()) {
	reader, closeFn := cli.reportReader()
	svc := service.NewPayrollService(reader, document.NewRegistry(), cli.cfg.Template, cli.logger)
	return svc, reader, closeFn
}

// Execute runs the payslip command line with the process arguments.
func Execute() {
	if err := NewCLI(Options{}).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
