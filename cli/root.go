// Package cli implements the widgetkit command line interface.
//
// The command structure follows standard Go CLI patterns with a root command
// that dispatches to subcommands (scan, enhance, run, types).
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/chrisuehlinger/widgetkit/controls"
	"github.com/chrisuehlinger/widgetkit/widget"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// Command represents a CLI command.
type Command struct {
	Name  string
	Short string
	Long  string
	Usage string
	Run   func(args []string) error
}

var rootCmd = &Command{
	Name:  "widgetkit",
	Short: "widgetkit - progressive enhancement for server-rendered widgets",
	Long: `Widgetkit enhances server-rendered HTML pages: elements declaring a
widget type are bound to live widget instances, their markup becomes the
instances' initial state, and scripts can drive them through the Widget API.

Use "widgetkit <command> --help" for more information about a command.`,
	Usage: "widgetkit <command> [flags]",
}

// Commands registered with the CLI.
var commands = make(map[string]*Command)

// subCommands keeps registration order for help output.
var subCommands []*Command

// RegisterCommand adds a command to the CLI.
func RegisterCommand(cmd *Command) {
	commands[cmd.Name] = cmd
	subCommands = append(subCommands, cmd)
}

// activeConfig holds the configuration loaded by Execute. Commands read it
// instead of reloading widgetkit.yaml themselves.
var activeConfig = &Config{}

// Execute runs the CLI with the given arguments.
func Execute() error {
	args := os.Args[1:]

	if len(args) == 0 {
		printHelp(rootCmd)
		return nil
	}

	switch args[0] {
	case "-h", "--help", "help":
		printHelp(rootCmd)
		return nil
	case "-v", "--version", "version":
		fmt.Printf("widgetkit version %s (built %s)\n", Version, BuildTime)
		return nil
	}

	cmdName := args[0]
	cmd, ok := commands[cmdName]
	if !ok {
		printHelp(rootCmd)
		return fmt.Errorf("unknown command: %s", cmdName)
	}

	cmdArgs := args[1:]
	for _, arg := range cmdArgs {
		if arg == "-h" || arg == "--help" || arg == "help" {
			printCommandHelp(cmd)
			return nil
		}
	}

	if err := setup(); err != nil {
		return err
	}
	return cmd.Run(cmdArgs)
}

// setup loads widgetkit.yaml from the working directory, points diagnostics
// at stderr, and registers the built-in widget types.
func setup() error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	cfg, err := LoadOptional(cwd)
	if err != nil {
		return err
	}
	activeConfig = cfg

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.LogLevel(),
	}))
	slog.SetDefault(logger)
	widget.SetLogger(logger)

	return controls.RegisterAll()
}

func printHelp(cmd *Command) {
	fmt.Println(cmd.Long)
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Printf("  %s\n", cmd.Usage)
	fmt.Println()
	fmt.Println("Commands:")
	for _, sub := range subCommands {
		fmt.Printf("  %-10s %s\n", sub.Name, sub.Short)
	}
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Println("  -h, --help       Show help for a command")
	fmt.Println("  -v, --version    Show version information")
	fmt.Println()
	fmt.Println("Configuration:")
	fmt.Println("  widgetkit.yaml in the working directory adjusts the log level,")
	fmt.Println("  the watch debounce, and scanner attribute handling.")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  widgetkit scan page.html                  Report declared widgets")
	fmt.Println("  widgetkit enhance page.html -o out.html   Write the enhanced markup")
	fmt.Println("  widgetkit run page.html --script app.js   Run a script against the page")
}

func printCommandHelp(cmd *Command) {
	fmt.Println(cmd.Long)
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Printf("  %s\n", cmd.Usage)
}
