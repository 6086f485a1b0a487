// Command cminer mines closed frequent subsequences and association rules
// from symbol traces.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/roach88/cminer/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		// Commands print their own errors; cobra-level errors (unknown
		// command, bad flags) are printed here.
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(cli.ExitCommandError)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
