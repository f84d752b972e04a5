package output

import (
	"fmt"
	"time"

	"github.com/efritz/pentimento"

	"github.com/sourcegraph/should-be-public-checker/internal/util"
)

// Options controls how much progress output WithProgress prints.
type Options struct {
	Verbosity      Verbosity
	ShowAnimations bool
}

type Verbosity int

const (
	NoOutput Verbosity = iota
	DefaultOutput
	VerboseOutput
	VeryVerboseOutput
)

// ticker is the animated throbber used in withTitleAnimated.
var ticker = pentimento.NewAnimatedString([]string{
	"⠸", "⠼",
	"⠴", "⠦",
	"⠧", "⠇",
	"⠏", "⠋",
	"⠙", "⠹",
}, time.Second/4)

var successPrefix = "✔"

// WithProgress prints a spinner (or a static line, depending on outputOptions) while the
// given blocking function runs. The core analysis in this tool is single-threaded (see §5
// of the design notes): unlike the teacher package this is adapted from, there is no
// worker-pool variant here because nothing in this system runs sub-tasks concurrently.
func WithProgress(name string, fn func(), outputOptions Options) {
	if outputOptions.Verbosity == NoOutput {
		fn()
		return
	}

	if !outputOptions.ShowAnimations || outputOptions.Verbosity >= VeryVerboseOutput {
		withTitleStatic(name, outputOptions.Verbosity, fn)
		return
	}

	withTitleAnimated(name, outputOptions.Verbosity, fn)
}

// withTitleStatic invokes the given function with non-animated output.
func withTitleStatic(name string, verbosity Verbosity, fn func()) {
	start := time.Now()
	fmt.Printf("%s\n", name)
	fn()

	if verbosity > DefaultOutput {
		fmt.Printf("Finished in %s.\n\n", util.HumanElapsed(start))
	}
}

// withTitleAnimated invokes the given function with an animated spinner title.
func withTitleAnimated(name string, verbosity Verbosity, fn func()) {
	start := time.Now()
	fmt.Printf("%s %s... ", ticker, name)

	_ = pentimento.PrintProgress(func(printer *pentimento.Printer) error {
		defer func() {
			_ = printer.Reset()
		}()

		content := pentimento.NewContent()
		content.AddLine("%s %s...", ticker, name)
		printer.WriteContent(content)

		fn()
		return nil
	})

	if verbosity > DefaultOutput {
		fmt.Printf("%s %s... Done (%s)\n", successPrefix, name, util.HumanElapsed(start))
	} else {
		fmt.Printf("%s %s... Done\n", successPrefix, name)
	}
}
