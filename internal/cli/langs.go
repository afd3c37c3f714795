package cli

import (
	"github.com/spf13/cobra"

	"github.com/lockbox/sleigh-go/pkg/sleigh/langdb"
)

var langsCmd = &cobra.Command{
	Use:   "langs",
	Short: "List the language catalog",
	Long: `langs prints every language the catalog maps to a spec document,
with its context defaults. Pass a language id to lift --lang to pick
one without naming the specfile.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		catalogFlag, _ := cmd.Flags().GetString("catalog")
		path := resolveCatalogPath(catalogFlag)
		catalog, err := langdb.Load(path)
		if err != nil {
			return err
		}

		p := newPrinter(cmd)
		p.printf("%s\n", p.styled(dimStyle, path))
		for i := range catalog.Languages {
			l := &catalog.Languages[i]
			p.printf("\n%s\n", p.styled(headerStyle, l.ID))
			if l.Description != "" {
				p.printf("  %s\n", l.Description)
			}
			p.printf("  specfile: %s\n", p.styled(mnemStyle, l.SpecFile))
			for _, name := range l.ContextNames() {
				p.printf("  context:  %s=%d\n", name, l.Context[name])
			}
		}
		return nil
	},
}

func init() {
	langsCmd.Flags().String("catalog", "", "Language catalog file (default $SLEIGHGO_CATALOG, then langs.yaml)")
	rootCmd.AddCommand(langsCmd)
}
