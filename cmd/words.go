package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Aashish23092/payslip-filler/utils/numeral"
)

func (cli *CLI) newWordsCmd() *cobra.Command {
	var lang, gender string

	cmd := &cobra.Command{
		Use:   "words <n>",
		Short: "Spell a whole number in words",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			n, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid number %q", args[0])
			}
			language, err := numeral.ParseLanguage(lang)
			if err != nil {
				return err
			}
			g, err := numeral.ParseGender(gender)
			if err != nil {
				return err
			}

			words, err := numeral.ToWords(n, language, numeral.WithGender(g))
			if err != nil {
				return err
			}
			return cli.reporter.Line(words)
		},
	}

	cmd.Flags().StringVarP(&lang, "lang", "l", "en", "Language: en or uk")
	cmd.Flags().StringVarP(&gender, "gender", "g", "masculine", "Gender of the counted noun: masculine, feminine or neuter")
	return cmd
}
