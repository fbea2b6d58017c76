package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/chrisuehlinger/widgetkit/js"
)

func init() {
	RegisterCommand(&Command{
		Name:  "run",
		Short: "Run a script against an enhanced page",
		Long: `Parse a page, execute a script against it, and print the resulting
markup.

The script runs first, then the document-ready trigger fires: the
declarative scanner enhances the page and DOMContentLoaded is
dispatched. Scripts that need the scanned widgets should subscribe:

  document.addEventListener('DOMContentLoaded', function () {
    var w = Widget.getByNode(document.getElementById('save'));
    ...
  });

The scheduler drains before serialization, so DOM-sourced property
reconciles and timer callbacks are reflected in the output.

Flags:
  --script FILE    Execute FILE in the page's runtime
  -o FILE          Write the resulting markup to FILE instead of stdout`,
		Usage: "widgetkit run <page.html> [--script app.js] [-o out.html]",
		Run:   runRun,
	})
}

type runOptions struct {
	script string
	out    string
}

func runRun(args []string) error {
	paths, opts, err := parseRunArgs(args)
	if err != nil {
		return err
	}
	if len(paths) != 1 {
		return fmt.Errorf("run expects exactly one page\n\nUsage: widgetkit run <page.html> [--script app.js] [-o out.html]")
	}

	doc, err := loadPage(paths[0])
	if err != nil {
		return err
	}
	defer destroyWidgets(doc)

	rt := js.NewRuntime(doc)
	if opts.out == "" {
		// Markup goes to stdout, so console output moves aside.
		rt.SetConsoleOutput(os.Stderr)
	}

	if opts.script != "" {
		code, err := os.ReadFile(opts.script)
		if err != nil {
			return err
		}
		if err := rt.RunScript(opts.script, string(code)); err != nil {
			return fmt.Errorf("script failed: %w", err)
		}
	}

	rt.DispatchReady()
	rt.Drain()

	if errs := rt.Errors(); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "script error: %v\n", e)
		}
		return fmt.Errorf("%d script error(s)", len(errs))
	}
	return writeDocument(doc, opts.out)
}

func parseRunArgs(args []string) ([]string, runOptions, error) {
	var opts runOptions
	var paths []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--script":
			if i+1 >= len(args) {
				return nil, opts, fmt.Errorf("--script requires a file path")
			}
			opts.script = args[i+1]
			i++
		case strings.HasPrefix(arg, "--script="):
			opts.script = strings.TrimPrefix(arg, "--script=")
		case arg == "-o" || arg == "--out":
			if i+1 >= len(args) {
				return nil, opts, fmt.Errorf("%s requires a file path", arg)
			}
			opts.out = args[i+1]
			i++
		case strings.HasPrefix(arg, "-o="):
			opts.out = strings.TrimPrefix(arg, "-o=")
		case strings.HasPrefix(arg, "--out="):
			opts.out = strings.TrimPrefix(arg, "--out=")
		case strings.HasPrefix(arg, "-"):
			return nil, opts, fmt.Errorf("unknown flag %q", arg)
		default:
			paths = append(paths, arg)
		}
	}
	return paths, opts, nil
}
