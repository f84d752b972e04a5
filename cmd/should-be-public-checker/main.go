// Command should-be-public-checker finds items a crate's rustdoc output
// documents that are not reachable through any chain of public re-exports
// from the crate root -- items that should probably be `pub`, or that are
// leaking through a visibility bug.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sourcegraph/should-be-public-checker/internal/cargometa"
	"github.com/sourcegraph/should-be-public-checker/internal/docjson"
	"github.com/sourcegraph/should-be-public-checker/internal/graph"
	"github.com/sourcegraph/should-be-public-checker/internal/report"
	"github.com/sourcegraph/should-be-public-checker/log"
)

func main() {
	a, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if a.debug {
		log.SetLevel(log.Debug)
	} else if a.verbose {
		log.SetLevel(log.Info)
	}

	if err := run(a); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(a *args) error {
	outputOptions := a.outputOptions()

	manifestPath, err := manifestPathFor(a.path)
	if err != nil {
		return err
	}

	pkg := a.pkg
	if pkg == "" {
		pkg, err = cargometa.DefaultPackageName(manifestPath, outputOptions)
		if err != nil {
			return err
		}
	}

	doc, err := docjson.Build(manifestPath, pkg, outputOptions)
	if err != nil {
		return err
	}

	registry := graph.NewRegistry()
	pkgID := registry.LoadPackage(pkg, doc)
	root, ok := registry.RootModule(pkgID)
	if !ok {
		return fmt.Errorf("package %q has no crate root module", pkg)
	}

	leaks, errs := registry.Analyze(root)
	if a.strict && errs.ErrorOrNil() != nil {
		return errs
	}

	if err := report.Write(os.Stdout, leaks, report.Options{Docs: a.docs}); err != nil {
		return err
	}

	// Without --strict, BFS soft failures are summarized on stderr after the report.
	if errs.ErrorOrNil() != nil {
		fmt.Fprintf(os.Stderr, "warning: %d reference(s) could not be resolved and were skipped:\n", len(errs.Errors))
		for _, e := range errs.Errors {
			fmt.Fprintf(os.Stderr, "  %v\n", e)
		}
	}
	return nil
}

// manifestPathFor resolves the user-supplied path argument to a Cargo.toml
// path, the way the original's CliArgs does: a directory argument is
// assumed to contain Cargo.toml directly.
func manifestPathFor(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return filepath.Join(abs, "Cargo.toml"), nil
	}
	return abs, nil
}
