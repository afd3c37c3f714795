package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lockbox/sleigh-go/pkg/sleigh"
	"github.com/lockbox/sleigh-go/pkg/sleigh/langdb"
)

const (
	catalogEnv  = "SLEIGHGO_CATALOG"
	specPathEnv = "SLEIGHGO_SPEC_PATH"
)

// addSessionFlags registers the flags every command that binds a spec
// document shares.
func addSessionFlags(cmd *cobra.Command) {
	cmd.Flags().String("spec", "", "Compiled processor spec document (.sla)")
	cmd.Flags().String("lang", "", "Language id from the catalog (see langs)")
	cmd.Flags().String("catalog", "", "Language catalog file (default $SLEIGHGO_CATALOG, then langs.yaml)")
	cmd.Flags().StringArray("ctx", nil, "Context default as name=value (repeatable)")
	cmd.MarkFlagsMutuallyExclusive("spec", "lang")
}

// newSession builds a running translator from the session flags: the
// spec comes from --spec directly or from the catalog entry named by
// --lang, catalog context defaults apply first, then --ctx overrides.
func newSession(cmd *cobra.Command) (*sleigh.Translator, error) {
	flags := cmd.Flags()
	spec, _ := flags.GetString("spec")
	langID, _ := flags.GetString("lang")
	if spec == "" && langID == "" {
		return nil, fmt.Errorf("one of --spec or --lang is required")
	}

	var lang *langdb.Language
	if langID != "" {
		catalogFlag, _ := flags.GetString("catalog")
		catalogPath := resolveCatalogPath(catalogFlag)
		catalog, err := langdb.Load(catalogPath)
		if err != nil {
			return nil, err
		}
		l, ok := catalog.Find(langID)
		if !ok {
			return nil, fmt.Errorf("language %q not in %s (known: %s)",
				langID, catalogPath, strings.Join(catalog.IDs(), ", "))
		}
		lang = l
		spec, err = l.ResolveSpec(specSearchPath(catalogPath)...)
		if err != nil {
			return nil, err
		}
	}

	tr, err := sleigh.New(sleigh.Config{})
	if err != nil {
		return nil, err
	}
	ok := false
	defer func() {
		if !ok {
			tr.Close()
		}
	}()

	if err := tr.UseSpecFile(spec); err != nil {
		return nil, err
	}
	if err := tr.Begin(); err != nil {
		return nil, err
	}

	if lang != nil {
		for _, name := range lang.ContextNames() {
			if err := tr.SetContextDefault(name, lang.Context[name]); err != nil {
				return nil, err
			}
		}
	}
	pairs, _ := flags.GetStringArray("ctx")
	for _, pair := range pairs {
		name, value, err := parseCtxPair(pair)
		if err != nil {
			return nil, err
		}
		if err := tr.SetContextDefault(name, value); err != nil {
			return nil, err
		}
	}

	ok = true
	return tr, nil
}

func parseCtxPair(pair string) (string, uint32, error) {
	name, raw, found := strings.Cut(pair, "=")
	if !found || name == "" {
		return "", 0, fmt.Errorf("--ctx %q: want name=value", pair)
	}
	value, err := strconv.ParseUint(raw, 0, 32)
	if err != nil {
		return "", 0, fmt.Errorf("--ctx %q: %v", pair, err)
	}
	return name, uint32(value), nil
}

func resolveCatalogPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv(catalogEnv); env != "" {
		return env
	}
	return "langs.yaml"
}

// specSearchPath lists the directories a relative specfile resolves
// against: the catalog's own directory, the working directory, then
// the $SLEIGHGO_SPEC_PATH entries.
func specSearchPath(catalogPath string) []string {
	dirs := []string{filepath.Dir(catalogPath), "."}
	if env := os.Getenv(specPathEnv); env != "" {
		dirs = append(dirs, filepath.SplitList(env)...)
	}
	return dirs
}
