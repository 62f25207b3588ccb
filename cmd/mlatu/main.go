package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mlatu-lang/mlatu/engine"
)

var (
	flagNoPrelude bool
	flagStepLimit int
	flagDedup     bool
	flagVerbose   bool
	flagConfig    string

	logger = zap.NewNop()
)

func main() {
	root := &cobra.Command{
		Use:          "mlatu [file ...]",
		Short:        "mlatu term rewriting system",
		Long:         "mlatu loads rewrite rules from the given files and starts an interactive session.",
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !flagVerbose {
				return nil
			}
			l, err := zap.NewDevelopment()
			if err != nil {
				return err
			}
			logger = l
			return nil
		},
		RunE: runRepl,
	}

	pf := root.PersistentFlags()
	pf.BoolVar(&flagNoPrelude, "no-prelude", false, "start without the standard rule set")
	pf.IntVar(&flagStepLimit, "step-limit", 0, "cap resolution steps per request, 0 for unlimited")
	pf.BoolVar(&flagDedup, "dedup", false, "drop duplicate solutions")
	pf.StringVar(&flagConfig, "config", "mlatu.yaml", "configuration file")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "log engine activity")

	root.AddCommand(&cobra.Command{
		Use:   "edit <file>",
		Short: "Edit a rule file interactively",
		Args:  cobra.ExactArgs(1),
		RunE:  runEdit,
	})

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// policy resolves the engine policy: configuration file first, flags win
// when set explicitly.
func policy(cmd *cobra.Command) (engine.Policy, error) {
	cfg, err := loadConfig(flagConfig)
	if err != nil {
		return engine.Policy{}, err
	}
	p := engine.Policy{StepLimit: cfg.StepLimit, Dedup: cfg.Dedup}
	if cmd.Flags().Changed("step-limit") {
		p.StepLimit = flagStepLimit
	}
	if cmd.Flags().Changed("dedup") {
		p.Dedup = flagDedup
	}
	return p, nil
}
