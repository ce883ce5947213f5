package cli

import (
	"github.com/spf13/cobra"

	"github.com/salesqa/callcheck/orchestrator"
)

var (
	runOutputs string
	runNLPURL  string
	runFormats []string
)

var runCmd = &cobra.Command{
	Use:   "run [transcripts]",
	Short: "Evaluate every dialogue of a transcript file",
	Long: `Evaluate every dialogue of a transcript (CSV with dlg_id,line_n,role,text
columns, or a SQLite database with a transcripts table) and write the
compliance report into a new session directory under the outputs path.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := setup()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("outputs") {
			d.cfg.Paths.Outputs = runOutputs
		}
		if cmd.Flags().Changed("nlp-url") {
			d.cfg.Services.NLP.URL = runNLPURL
		}
		if cmd.Flags().Changed("format") {
			d.cfg.Report.Formats = runFormats
			if err := d.cfg.Validate(); err != nil {
				return err
			}
		}
		path := d.cfg.Paths.Transcripts
		if len(args) == 1 {
			path = args[0]
		}

		an, err := d.analyzer()
		if err != nil {
			return err
		}

		p := orchestrator.NewPipeline(d.cfg, d.annotator(), an, d.log)
		bundle, dir, err := p.Run(cmd.Context(), path)
		if err != nil {
			return err
		}

		compliant, partial, total := bundle.Summary()
		cmd.Printf("%d/%d dialogues compliant (%d partially evaluated, %d annotation failures)\n",
			compliant, total, partial, len(bundle.Diagnostics))
		cmd.Printf("report: %s\n", dir)
		return nil
	},
}

func init() {
	runCmd.Flags().StringVarP(&runOutputs, "outputs", "o", "", "override paths.outputs")
	runCmd.Flags().StringVar(&runNLPURL, "nlp-url", "", "override services.nlp.url")
	runCmd.Flags().StringSliceVarP(&runFormats, "format", "f", nil, "report formats: csv, json, sqlite")
	rootCmd.AddCommand(runCmd)
}
