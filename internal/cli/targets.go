package cli

import (
	"github.com/spf13/cobra"

	"github.com/lockbox/sleigh-go/pkg/objfile"
)

var targetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "List the object formats the BFD backend recognizes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		names, err := objfile.Targets()
		if err != nil {
			return err
		}
		p := newPrinter(cmd)
		for _, name := range names {
			p.printf("%s\n", name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(targetsCmd)
}
