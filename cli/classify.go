package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/salesqa/callcheck/config"
)

var classifyCmd = &cobra.Command{
	Use:   "classify <text>...",
	Short: "Classify a single manager utterance",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := setup()
		if err != nil {
			return err
		}
		an, err := d.analyzer()
		if err != nil {
			return err
		}

		text := strings.Join(args, " ")
		ctx, cancel := context.WithTimeout(cmd.Context(), config.DurSeconds(d.cfg.Services.NLP.TimeoutSec))
		defer cancel()
		tokens, err := d.annotator().Annotate(ctx, text)
		if err != nil {
			return err
		}

		res := an.Analyze(tokens)
		cmd.Printf("greeting:  %t\n", res.Greeting)
		cmd.Printf("farewell:  %t\n", res.Farewell)
		cmd.Printf("manager:   %s\n", orDash(res.ManagerName))
		cmd.Printf("company:   %s\n", orDash(res.CompanyName))
		return nil
	},
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}
