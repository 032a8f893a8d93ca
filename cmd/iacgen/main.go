// Command iacgen generates Terraform and Ansible code with retrieval-augmented
// prompting over a local documentation corpus.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/NovemberMoon/iac-generator-rag/internal/adapters/driving/cli"
	"github.com/NovemberMoon/iac-generator-rag/internal/app"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetVersion(version)
	cli.SetBootstrap(func(configDir string) (*cli.Services, error) {
		return app.Build(configDir, app.Options{})
	})

	if err := cli.Execute(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(cli.ExitCode(err))
	}
}
