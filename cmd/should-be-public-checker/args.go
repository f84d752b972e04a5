package main

import (
	"github.com/alecthomas/kingpin"

	"github.com/sourcegraph/should-be-public-checker/internal/output"
)

type args struct {
	path       string
	pkg        string
	docs       bool
	strict     bool
	verbose    bool
	debug      bool
	noProgress bool
}

// parseArgs mirrors the teacher's cmd/lsif-go/args.go: a kingpin app with a
// handful of flags plus one optional positional argument, returning a
// plain struct the rest of main can use without any kingpin types leaking
// out.
func parseArgs(argv []string) (*args, error) {
	app := kingpin.New("should-be-public-checker", "Finds rustdoc-visible items that are not reachable through any chain of public re-exports.")

	a := &args{}
	app.Arg("path", "Path to the crate's Cargo.toml (or its containing directory).").Default(".").StringVar(&a.path)
	app.Flag("package", "Package to check. Defaults to the package cargo metadata resolves for path.").Short('p').StringVar(&a.pkg)
	app.Flag("docs", "Render each leaked item's doc comment under its label.").BoolVar(&a.docs)
	app.Flag("strict", "Treat BFS resolution failures as fatal instead of logging and continuing.").BoolVar(&a.strict)
	app.Flag("verbose", "Show elapsed time for each step.").Short('v').BoolVar(&a.verbose)
	app.Flag("debug", "Enable debug logging.").BoolVar(&a.debug)
	app.Flag("no-progress", "Disable animated progress output.").BoolVar(&a.noProgress)

	if _, err := app.Parse(argv); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *args) outputOptions() output.Options {
	verbosity := output.DefaultOutput
	switch {
	case a.debug:
		verbosity = output.VeryVerboseOutput
	case a.verbose:
		verbosity = output.VerboseOutput
	}
	return output.Options{
		Verbosity:      verbosity,
		ShowAnimations: !a.noProgress,
	}
}
