package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var registersCmd = &cobra.Command{
	Use:   "registers",
	Short: "Print the register catalog of a spec",
	Long: `registers binds a processor spec and prints every register it names
together with the storage varnode behind it.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tr, err := newSession(cmd)
		if err != nil {
			return err
		}
		defer tr.Close()

		regs, err := tr.Registers()
		if err != nil {
			return err
		}

		p := newPrinter(cmd)
		for i := range regs {
			p.printf("%s %s\n",
				p.styled(mnemStyle, fmt.Sprintf("%-12s", regs[i].Name)),
				p.styled(dimStyle, regs[i].Varnode.String()))
		}
		return nil
	},
}

func init() {
	addSessionFlags(registersCmd)
	rootCmd.AddCommand(registersCmd)
}
