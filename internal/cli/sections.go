package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lockbox/sleigh-go/pkg/objfile"
)

var sectionsCmd = &cobra.Command{
	Use:   "sections <file>",
	Short: "List the sections of an object file",
	Long: `sections prints the format, start address, and section layout of an
object file. The BFD backend handles every format the system library
was built with; without it a pure-Go ELF reader takes over.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := openObject(args[0])
		if err != nil {
			return err
		}

		p := newPrinter(cmd)
		p.printf("%s: %s, start %s\n\n",
			p.styled(headerStyle, f.Path),
			f.Format,
			p.styled(addrStyle, fmt.Sprintf("%#x", f.StartAddr)))
		p.printf("%s\n", p.styled(dimStyle, fmt.Sprintf("%3s  %-20s  %-12s  %10s  %s",
			"idx", "name", "addr", "size", "flags")))
		for i := range f.Sections {
			s := &f.Sections[i]
			p.printf("%3d  %s  %s  %10d  %s\n",
				s.Index,
				p.styled(mnemStyle, fmt.Sprintf("%-20s", s.Name)),
				p.styled(addrStyle, fmt.Sprintf("%#-12x", s.Addr)),
				s.Size,
				p.styled(dimStyle, s.Flags.String()))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sectionsCmd)
}

// openObject prefers the BFD backend and falls back to the pure-Go ELF
// reader when that backend is not linked in.
func openObject(path string) (*objfile.File, error) {
	if objfile.Available() {
		return objfile.Open(path)
	}
	return objfile.OpenELF(path)
}
