// Command siteops is the operator console for the local site store.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/ycsite/siteops/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := cli.NewRootCommand().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		if hint := cli.Hint(err); hint != "" {
			fmt.Fprintln(os.Stderr, "Hint:", hint)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
