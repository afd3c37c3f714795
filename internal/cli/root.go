// Package cli implements the sleigh-go command tree.
package cli

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/lockbox/sleigh-go/pkg/sleigh"
)

var rootCmd = &cobra.Command{
	Use:   "sleigh-go",
	Short: "Decode machine code with a compiled processor spec",
	Long: `sleigh-go drives the native decode engine from the command line:
load program bytes, bind a compiled processor spec document, and print
assembly together with the p-code semantics of each instruction.`,
	Example: `
# Lift raw bytes
sleigh-go lift --spec specs/x86-64.sla --bytes f30f1efa5548 --base 0x401000

# Inspect an object file
sleigh-go sections ./a.out
  `,
	SilenceUsage: true,
}

func init() {
	rootCmd.Version = sleigh.WrapperVersion()
	rootCmd.PersistentFlags().Bool("plain", false, "Plain output without styling")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Debug logging")
}

// Execute runs the CLI. Styled help rendering engages only on a
// terminal so piped output stays clean.
func Execute() {
	// Flags are not parsed yet; scan the raw arguments so logging is
	// configured before any command code runs.
	debug := false
	for _, arg := range os.Args[1:] {
		if arg == "--debug" || arg == "-d" {
			debug = true
		}
	}
	setupLogging(debug)

	if !term.IsTerminal(os.Stdout.Fd()) {
		if err := rootCmd.Execute(); err != nil {
			os.Exit(1)
		}
		return
	}

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}
