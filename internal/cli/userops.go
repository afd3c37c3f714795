package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var userOpsCmd = &cobra.Command{
	Use:   "userops",
	Short: "Print the pseudo-ops a spec defines",
	Long: `userops binds a processor spec and prints the pseudo-operations its
semantics may call out to, indexed by pseudo-op number.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tr, err := newSession(cmd)
		if err != nil {
			return err
		}
		defer tr.Close()

		ops, err := tr.UserOps()
		if err != nil {
			return err
		}

		p := newPrinter(cmd)
		for i, name := range ops {
			p.printf("%s  %s\n",
				p.styled(addrStyle, fmt.Sprintf("%4d", i)),
				p.styled(mnemStyle, name))
		}
		return nil
	},
}

func init() {
	addSessionFlags(userOpsCmd)
	rootCmd.AddCommand(userOpsCmd)
}
