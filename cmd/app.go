// Package cmd implements the fk command line application to keep a ledger of incomes and expenses.
package cmd

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/finkeeper/finkeeper"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, cmd := range Commands() {
		c.Register(cmd, group(cmd))
	}
}

// Commands returns all the application subcommands.
func Commands() []subcommands.Command {
	return []subcommands.Command{
		&addCmd{},
		&addCmd{expense: true},
		&rmCmd{},
		&listCmd{},
		&totalCmd{},
		&exportCmd{},
		&shellCmd{},
		&topicCmd{},
	}
}

// IsCommand reports whether name is a built-in subcommand.
func IsCommand(name string) bool {
	switch name {
	case "help", "flags", "commands":
		return true
	}
	for _, c := range Commands() {
		if c.Name() == name {
			return true
		}
	}
	return false
}

func group(c subcommands.Command) string {
	switch c.(type) {
	case *addCmd, *rmCmd:
		return "records"
	case *topicCmd:
		return "help"
	default:
		return "reports"
	}
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	configFile = flag.String("config", "finkeeper.yaml", "Path to the YAML configuration file, ignored if missing")
	dataFile   = flag.String("data-file", "", "Path to the ledger data file (default from config, or "+finkeeper.DefaultDataFile+")")
	currency   = flag.String("currency", "", "ISO 4217 code of the currency amounts are displayed in")
	debug      = flag.Bool("debug", false, "Log debug messages on stderr")
)

// Settings resolves the configuration from the files, the environment and the global flags.
// It also sets up logging.
func Settings() (Config, error) {
	c, err := LoadConfig(*configFile, ".env")
	if err != nil {
		return c, err
	}
	if *dataFile != "" {
		c.DataFile = *dataFile
	}
	if *currency != "" {
		c.Currency = *currency
	}
	if *debug {
		c.LogLevel = "debug"
	}
	c.Currency = strings.ToUpper(strings.TrimSpace(c.Currency))
	if err := c.Validate(); err != nil {
		return c, err
	}
	setupLogging(os.Stderr, c)
	slog.Debug("configuration", "data_file", c.DataFile, "currency", c.Currency, "log_level", c.LogLevel)
	return c, nil
}

// openSession loads the ledger from the configured data file.
func openSession() (*finkeeper.Session, Config, subcommands.ExitStatus) {
	c, err := Settings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error in configuration: %v\n", err)
		return nil, c, subcommands.ExitUsageError
	}
	return finkeeper.OpenSession(c.DataFile), c, subcommands.ExitSuccess
}

// renderMarkdown formats markdown for the terminal, falling back to the raw markdown.
func renderMarkdown(md string) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		slog.Debug("rendering markdown", "error", err)
		return md
	}
	return out
}

func printMarkdown(md string) {
	fmt.Print(renderMarkdown(md))
}
