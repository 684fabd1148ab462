// Command queuectl inspects and validates queue documents and issues API
// tokens for development.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/fatih/color"

	"github.com/heartmarshall/queue-backend/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.New().ExecuteContext(ctx); err != nil {
		if !errors.Is(err, cli.ErrInvalid) {
			fmt.Fprintln(color.Error, color.RedString("error:"), err)
		}
		stop()
		os.Exit(1)
	}
}
