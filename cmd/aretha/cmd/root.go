// Package cmd implements the aretha CLI commands.
//
// The root command dispatches to subcommands (demo, simulate, state, md5,
// uuid). Global flags select the configuration directory and state store.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-aretha/aretha/pkg/config"
	"github.com/go-aretha/aretha/pkg/errors"
	"github.com/go-aretha/aretha/pkg/statestore"
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
	Name:  "aretha",
	Short: "Aretha - a draggable two-state toggle",
	Long: `Aretha is a sliding toggle widget with drag, tap, and snap gestures.
The CLI runs an interactive terminal demo, replays gesture scripts,
and manages persisted toggle state.

Use "aretha <command> --help" for more information about a command.`,
	Usage: "aretha <command> [flags]",
}

// Commands registered with the CLI, in registration order.
var (
	commands = make(map[string]*Command)
	ordered  []*Command
)

// RegisterCommand adds a command to the CLI.
func RegisterCommand(cmd *Command) {
	commands[cmd.Name] = cmd
	ordered = append(ordered, cmd)
}

// globals holds values from global flags.
type globals struct {
	configDir string
	statePath string
	verbose   bool
}

var global = globals{configDir: "."}

// Execute runs the CLI with os.Args.
func Execute() error {
	return run(os.Args[1:])
}

func run(args []string) error {
	if len(args) == 0 {
		printHelp()
		return nil
	}

	var filteredArgs []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "-h", "--help", "help":
			if len(filteredArgs) == 0 {
				printHelp()
				return nil
			}
			filteredArgs = append(filteredArgs, arg)
		case "-v", "--version", "version":
			if len(filteredArgs) == 0 {
				fmt.Printf("aretha version %s (built %s)\n", Version, BuildTime)
				return nil
			}
			filteredArgs = append(filteredArgs, arg)
		case "--verbose":
			global.verbose = true
		case "--config-dir", "--state":
			if i+1 >= len(args) {
				return fmt.Errorf("%s requires a path", arg)
			}
			setGlobalPath(arg, args[i+1])
			i++
		default:
			if name, value, ok := strings.Cut(arg, "="); ok && (name == "--config-dir" || name == "--state") {
				setGlobalPath(name, value)
				continue
			}
			filteredArgs = append(filteredArgs, arg)
		}
	}
	args = filteredArgs

	errors.SetHandler(&errors.LogHandler{Verbose: global.verbose})

	if len(args) == 0 {
		printHelp()
		return nil
	}

	cmd, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", args[0])
		printHelp()
		return fmt.Errorf("unknown command: %s", args[0])
	}

	cmdArgs := args[1:]
	for _, arg := range cmdArgs {
		if arg == "-h" || arg == "--help" || arg == "help" {
			printCommandHelp(cmd)
			return nil
		}
	}

	return cmd.Run(cmdArgs)
}

func setGlobalPath(flag, value string) {
	if flag == "--config-dir" {
		global.configDir = value
	} else {
		global.statePath = value
	}
}

// resolveAttributes loads aretha.yaml from the configured directory.
func resolveAttributes() (config.Attributes, error) {
	return config.Resolve(global.configDir)
}

// openStore opens the state store. The --state flag wins over the
// store.path setting, which wins over the default location.
func openStore(attrs config.Attributes) (*statestore.Store, error) {
	path := global.statePath
	if path == "" {
		path = attrs.StorePath
	}
	if path == "" {
		var err error
		if path, err = statestore.DefaultPath(); err != nil {
			return nil, err
		}
	}
	return statestore.Open(path)
}

func printHelp() {
	fmt.Println(rootCmd.Long)
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Printf("  %s\n", rootCmd.Usage)
	fmt.Println()
	fmt.Println("Commands:")
	for _, sub := range ordered {
		fmt.Printf("  %-14s %s\n", sub.Name, sub.Short)
	}
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Println("  -h, --help           Show help for a command")
	fmt.Println("  -v, --version        Show version information")
	fmt.Println("  --config-dir DIR     Directory holding aretha.yaml (default: .)")
	fmt.Println("  --state PATH         State database path")
	fmt.Println("  --verbose            Include stack traces in error reports")
	fmt.Println()
	fmt.Println("Environment:")
	fmt.Println("  ARETHA_STATE_DIR     State directory override (lower priority than --state)")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  aretha demo                  Interactive toggle in the terminal")
	fmt.Println("  aretha simulate drag.yaml    Replay a gesture script")
	fmt.Println("  aretha state list            Show saved toggle states")
}

func printCommandHelp(cmd *Command) {
	fmt.Println(cmd.Long)
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Printf("  %s\n", cmd.Usage)
}
