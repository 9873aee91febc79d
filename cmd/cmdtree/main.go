package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"golang.org/x/term"

	"github.com/footprint-tools/cmdtree/internal/app"
	"github.com/footprint-tools/cmdtree/internal/config"
	"github.com/footprint-tools/cmdtree/internal/dispatchers"
	"github.com/footprint-tools/cmdtree/internal/domain"
	"github.com/footprint-tools/cmdtree/internal/paths"
	"github.com/footprint-tools/cmdtree/internal/ui/browser"
	"github.com/footprint-tools/cmdtree/internal/ui/style"
	"github.com/footprint-tools/cmdtree/internal/usage"
)

const helpText = `usage: cmdtree [flags] [command...]

With a command, runs it once and exits with its status. Without one,
reads commands from stdin, one per line.

flags:
  --config=<path>  Configuration file (default ~/.cmdtree.toml)
  --db=<path>      World database, ":memory:" for a throwaway world
  --as=<name>      Run commands as this entity
  --no-color       Disable colored output
  --no-pager       Do not use a pager for long output
  -h, --help       Show this help

interactive commands:
  :suggest <partial>  List completions for partial input
  :usage              List every command
  :browse             Browse commands (terminal only)
  :quit               Exit
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	flags, commands := splitArgs(args)

	if slices.Contains(flags, "--help") || slices.Contains(flags, "-h") {
		fmt.Fprint(stdout, helpText)
		printConfigKeys(stdout)
		return 0
	}

	cfg, err := loadConfig(flags)
	if err != nil {
		fmt.Fprintln(stderr, err.Error())
		return usage.ExitCode(err)
	}

	h, err := app.New(app.Options{
		Config:        cfg,
		Out:           stdout,
		PagerDisabled: slices.Contains(flags, "--no-pager"),
		StyleEnabled:  colorEnabled(cfg, flags, stdout),
	})
	if err != nil {
		fmt.Fprintln(stderr, err.Error())
		return usage.ExitCode(err)
	}
	defer func() { _ = app.Close(h) }()

	if len(commands) > 0 {
		return execute(h, strings.Join(commands, " "), stderr)
	}
	return repl(h, stdin, stdout, stderr, isTerminal(stdin) && isTerminal(stdout))
}

func printConfigKeys(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "configuration keys:")
	for _, section := range domain.ConfigSections() {
		fmt.Fprintf(w, "  [%s]\n", section)
		for _, key := range domain.KeysInSection(section) {
			fmt.Fprintf(w, "    %-14s %s\n", key.Name, key.Description)
		}
	}
}

func loadConfig(flags []string) (*config.Config, error) {
	path := flagValue(flags, "--config")
	if path == "" {
		var err error
		if path, err = paths.ConfigFilePath(); err != nil {
			return nil, usage.InvalidConfig(err.Error())
		}
	}

	cfg, err := config.LoadFromPath(path)
	if err != nil {
		return nil, err
	}

	if db := flagValue(flags, "--db"); db != "" {
		cfg.DBPath = db
	}
	if as := flagValue(flags, "--as"); as != "" {
		cfg.Executor = as
	}
	return cfg, nil
}

func colorEnabled(cfg *config.Config, flags []string, stdout io.Writer) bool {
	if slices.Contains(flags, "--no-color") {
		return false
	}
	switch cfg.Color {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	return isTerminal(stdout)
}

// execute runs one command line and returns its exit code. A handler
// that reports failure exits 1.
func execute(h *app.Host, input string, stderr io.Writer) int {
	out, err := h.Execute(input)
	if err != nil {
		fmt.Fprintln(stderr, style.Error(err.Error()))
		return usage.ExitCode(err)
	}
	if out.Status == dispatchers.StatusFailure {
		return 1
	}
	return 0
}

// repl reads commands line by line until EOF or :quit. The exit code is
// that of the last command.
func repl(h *app.Host, in io.Reader, stdout, stderr io.Writer, interactive bool) int {
	prompt := func() {
		if interactive {
			fmt.Fprint(stdout, h.Config.Prompt)
		}
	}

	code := 0
	scanner := bufio.NewScanner(in)
	for prompt(); scanner.Scan(); prompt() {
		line := strings.TrimRight(scanner.Text(), "\r")

		switch {
		case strings.TrimSpace(line) == "":
			continue
		case line == ":quit" || line == ":q":
			return code
		case line == ":usage":
			for _, u := range h.Usage() {
				fmt.Fprintln(stdout, "/"+style.Usage(u))
			}
			continue
		case line == ":browse":
			if !interactive {
				fmt.Fprintln(stderr, style.Error(":browse requires an interactive terminal"))
				code = 1
				continue
			}
			if err := browser.Run(browser.Entries(h.Usage()), in, stdout); err != nil {
				fmt.Fprintln(stderr, style.Error(err.Error()))
				code = 1
			}
			continue
		case line == ":suggest" || strings.HasPrefix(line, ":suggest "):
			partial := strings.TrimPrefix(strings.TrimPrefix(line, ":suggest"), " ")
			for _, s := range h.Suggest(partial) {
				fmt.Fprintln(stdout, s)
			}
			continue
		case strings.HasPrefix(line, ":"):
			fmt.Fprintln(stderr, style.Error("unknown command "+line+"; try :usage, :suggest, :browse or :quit"))
			code = 2
			continue
		}

		line = strings.TrimPrefix(line, "/")
		res, err := h.Execute(line)
		switch {
		case err != nil:
			fmt.Fprintln(stderr, style.Error(err.Error()))
			code = usage.ExitCode(err)
		default:
			if interactive {
				fmt.Fprintln(stdout, style.Result(res.Result, fmt.Sprintf("=> %d", res.Result)))
			}
			code = 0
			if res.Status == dispatchers.StatusFailure {
				code = 1
			}
		}
	}

	if err := scanner.Err(); err != nil {
		fmt.Fprintln(stderr, err.Error())
		return 1
	}
	return code
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// splitArgs separates leading flags from the command. Flag parsing stops
// at the first non-flag argument or at "--", so negative numbers in the
// command are never read as flags.
func splitArgs(args []string) (flags, commands []string) {
	flags = []string{}
	for i, a := range args {
		if a == "--" {
			return flags, args[i+1:]
		}
		if !strings.HasPrefix(a, "-") || a == "-" {
			return flags, args[i:]
		}
		flags = append(flags, a)
	}
	return flags, []string{}
}

func flagValue(flags []string, name string) string {
	for _, f := range flags {
		if v, ok := strings.CutPrefix(f, name+"="); ok {
			return v
		}
	}
	return ""
}
