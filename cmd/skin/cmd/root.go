// Package cmd implements the skin CLI commands.
//
// The root command dispatches to subcommands (inspect, view). Commands
// register themselves from init functions.
package cmd

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"text/tabwriter"
)

// Set with -ldflags "-X".
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// Command is one subcommand. Run receives the arguments after the
// command name.
type Command struct {
	Name  string
	Short string
	Long  string
	Usage string
	Run   func(args []string) error
}

const rootHelp = `skin loads a skin, lays it out headlessly and shows the result.

Use "skin <command> --help" for more information about a command.`

// commands in registration order.
var commands []*Command

// stdout is where commands print. Tests swap it.
var stdout io.Writer = os.Stdout

// RegisterCommand adds cmd to the CLI.
func RegisterCommand(cmd *Command) {
	commands = append(commands, cmd)
}

func lookup(name string) *Command {
	i := slices.IndexFunc(commands, func(c *Command) bool { return c.Name == name })
	if i < 0 {
		return nil
	}
	return commands[i]
}

func isHelp(arg string) bool { return arg == "-h" || arg == "--help" || arg == "help" }

// Execute runs the CLI with args, excluding the program name.
func Execute(args []string) error {
	if len(args) == 0 || isHelp(args[0]) {
		printHelp()
		return nil
	}
	if args[0] == "-v" || args[0] == "--version" || args[0] == "version" {
		fmt.Fprintf(stdout, "skin version %s (built %s)\n", Version, BuildTime)
		return nil
	}

	cmd := lookup(args[0])
	if cmd == nil {
		printHelp()
		return fmt.Errorf("unknown command %q", args[0])
	}
	if slices.ContainsFunc(args[1:], isHelp) {
		fmt.Fprintf(stdout, "%s\n\nUsage:\n  %s\n", cmd.Long, cmd.Usage)
		return nil
	}
	return cmd.Run(args[1:])
}

// splitArgs separates --name value and --name=value flags from positional
// arguments. Flags named in bools take no value.
func splitArgs(args []string, bools ...string) (flags map[string]string, positional []string, err error) {
	flags = make(map[string]string)
	for i := 0; i < len(args); i++ {
		rest, isFlag := strings.CutPrefix(args[i], "--")
		if !isFlag {
			positional = append(positional, args[i])
			continue
		}
		name, value, hasValue := strings.Cut(rest, "=")
		switch {
		case hasValue:
		case slices.Contains(bools, name):
			value = "true"
		case i+1 < len(args):
			i++
			value = args[i]
		default:
			return nil, nil, fmt.Errorf("--%s requires a value", name)
		}
		flags[name] = value
	}
	return flags, positional, nil
}

func printHelp() {
	fmt.Fprintf(stdout, "%s\n\nUsage:\n  skin <command> [flags]\n\nCommands:\n", rootHelp)
	w := tabwriter.NewWriter(stdout, 0, 0, 3, ' ', 0)
	for _, c := range commands {
		fmt.Fprintf(w, "  %s\t%s\n", c.Name, c.Short)
	}
	fmt.Fprintf(w, "  version\tShow version information\n")
	w.Flush()
	fmt.Fprint(stdout, `
Flags:
  -h, --help      Show help for a command
  -v, --version   Show version information

Examples:
  skin inspect              Dump the demo skin's layout
  skin view ./myskin        Browse a skin in the terminal
`)
}
