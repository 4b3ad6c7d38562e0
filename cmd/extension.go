package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
)

// ExtensionPrefix prefixes the name of external binaries run as subcommands:
// 'fk hello' runs 'fk-hello' when hello is not a built-in subcommand.
const ExtensionPrefix = "fk-"

// RunExtension attempts to find and execute an external fk-<subcommand> binary.
// The resolved configuration is passed in the environment.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found.
func RunExtension(subcommand string, args []string, c Config) (bool, int) {
	return runExtension(subcommand, args, c, os.Stdin, os.Stdout, os.Stderr)
}

func runExtension(subcommand string, args []string, c Config, stdin io.Reader, stdout, stderr io.Writer) (bool, int) {
	name := ExtensionPrefix + subcommand
	lp, err := exec.LookPath(name)
	if err != nil {
		slog.Debug("extension not found", "name", name, "error", err)
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.Env = append(os.Environ(),
		EnvDataFile+"="+c.DataFile,
		EnvCurrency+"="+c.Currency,
		EnvLogLevel+"="+c.LogLevel,
	)

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return true, exitErr.ExitCode()
		}
		fmt.Fprintf(stderr, "Error executing external command %q: %v\n", name, err)
		return true, 1
	}
	return true, 0
}
