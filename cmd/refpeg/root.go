package main

import (
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
)

const logLevelEnv = "REFPEG_LOG_LEVEL"

type rootFlags struct {
	logLevel string
}

func newRootCmd() *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:   "refpeg",
		Short: "Parse legal cross-references such as \"Section 3(1)(a) and (b)\"",
		Long: `refpeg provides two features:
- Parses cross-reference expressions and prints the reference tree.
- Prints the grammar the parser uses.`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	level := os.Getenv(logLevelEnv)
	if level == "" {
		level = "warn"
	}

	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", level,
		"log level: trace, debug, info, warn, error (env "+logLevelEnv+")")

	cmd.AddCommand(newParseCmd(&flags), newGrammarCmd())

	return cmd
}

func (f *rootFlags) logger(w io.Writer) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:   "refpeg",
		Level:  hclog.LevelFromString(f.logLevel),
		Output: w,
	})
}

func Execute() error {
	err := newRootCmd().Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	return nil
}
