// Package cli wires the callcheck commands.
package cli

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/salesqa/callcheck/analysis"
	"github.com/salesqa/callcheck/clients"
	"github.com/salesqa/callcheck/config"
	"github.com/salesqa/callcheck/gazetteer"
	"github.com/salesqa/callcheck/logging"
)

var (
	version = "dev"

	cfgFile  string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "callcheck",
	Short: "Check sales-call transcripts for greeting, introduction and farewell",
	Long: `callcheck reads two-party sales-call transcripts and reports, per dialogue,
whether the manager greeted the client, introduced themselves and their
company, and said goodbye.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default config/$CONFIG_ENV/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override pipeline.log_level")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// deps is what the commands share: config, logger and, once loaded, the
// analyzer and the annotation client.
type deps struct {
	cfg *config.Root
	log *logrus.Logger
}

func setup() (*deps, error) {
	c, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		c.Pipeline.LogLvl = logLevel
	}
	log, err := logging.New(c.Pipeline.LogLvl, c.Pipeline.LogFormat)
	if err != nil {
		return nil, err
	}
	return &deps{cfg: c, log: log}, nil
}

// analyzer loads the gazetteer. A missing or malformed gazetteer is fatal
// to the command.
func (d *deps) analyzer() (*analysis.Analyzer, error) {
	names, err := gazetteer.Load(d.cfg.Paths.Gazetteer)
	if err != nil {
		return nil, err
	}
	d.log.WithFields(logrus.Fields{"path": d.cfg.Paths.Gazetteer, "names": names.Len()}).Debug("gazetteer loaded")
	return analysis.NewAnalyzer(names), nil
}

func (d *deps) annotator() *clients.NLP {
	nlp := d.cfg.Services.NLP
	return clients.NewHTTP(config.DurSeconds(nlp.TimeoutSec), nlp.Retries).NLP(nlp.URL)
}
