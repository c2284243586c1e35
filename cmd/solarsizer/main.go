// Command solarsizer sizes solar installations, issues PDF quotes and serves
// the same operations over HTTP.
package main

import (
	"context"
	"io"
	"os"

	"github.com/rshade/solarsizer/internal/cli"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev" //nolint:gochecknoglobals // Set via ldflags

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	root := cli.NewRootCmd(version)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(ctx)
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		// Cobra has already printed the error.
		os.Exit(1)
	}
}
