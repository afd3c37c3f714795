package internalcheck

import (
	"fmt"
	"go/parser"
	"go/token"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"golang.org/x/tools/go/packages"
)

// foreignDirs are the only directories that may reach into foreign
// memory. Everything else stays pure Go so the session API builds and
// tests on any platform without the native libraries.
var foreignDirs = []string{
	"bindings/c",
	"internal/bindings",
	"pkg/objfile",
}

func TestCgoConfinedToForeignLayers(t *testing.T) {
	checkImportConfined(t, "C")
}

func TestUnsafeConfinedToForeignLayers(t *testing.T) {
	checkImportConfined(t, "unsafe")
}

func checkImportConfined(t *testing.T, importPath string) {
	t.Helper()

	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedModule,
	}

	pkgs, err := packages.Load(cfg, "github.com/lockbox/sleigh-go/...")
	if err != nil {
		t.Fatalf("load packages: %v", err)
	}

	var findings []string

	for _, pkg := range pkgs {
		if pkg.Module == nil {
			continue
		}
		root := pkg.Module.Dir

		// IgnoredFiles holds sources excluded by the active build
		// configuration. The policy covers every backend, so parse
		// those too.
		files := append(append([]string{}, pkg.GoFiles...), pkg.IgnoredFiles...)
		for _, file := range files {
			if !strings.HasSuffix(file, ".go") {
				continue
			}
			if !fileImports(t, file, importPath) {
				continue
			}
			rel, err := filepath.Rel(root, file)
			if err != nil {
				t.Fatalf("relativize %s: %v", file, err)
			}
			if !confined(rel) {
				findings = append(findings, fmt.Sprintf("%s: import %q outside the foreign layers", rel, importPath))
			}
		}
	}

	if len(findings) > 0 {
		t.Fatalf("foreign isolation policy violation:\n%s", strings.Join(findings, "\n"))
	}
}

func fileImports(t *testing.T, path, importPath string) bool {
	t.Helper()

	file, err := parser.ParseFile(token.NewFileSet(), path, nil, parser.ImportsOnly)
	if err != nil {
		t.Fatalf("parse %s: %v", path, err)
	}

	for _, imp := range file.Imports {
		value, err := strconv.Unquote(imp.Path.Value)
		if err != nil {
			continue
		}
		if value == importPath {
			return true
		}
	}
	return false
}

func confined(rel string) bool {
	dir := filepath.ToSlash(filepath.Dir(rel))
	for _, allowed := range foreignDirs {
		if dir == allowed {
			return true
		}
	}
	return false
}
