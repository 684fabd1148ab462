// Package cli implements queuectl, the command line companion of the queue
// server. It inspects and validates document files and issues API tokens.
package cli

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/queue-backend/internal/adapter/provider/template"
	"github.com/heartmarshall/queue-backend/internal/config"
	"github.com/heartmarshall/queue-backend/internal/domain"
)

// sourceOptions controls how documents are loaded.
type sourceOptions struct {
	Timeout  time.Duration
	MaxBytes int64
}

func (o *sourceOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().DurationVar(&o.Timeout, "timeout", 10*time.Second, "Timeout for fetching http(s) sources.")
	cmd.Flags().Int64Var(&o.MaxBytes, "max-bytes", 5<<20, "Maximum document size in bytes.")
}

// load reads and validates a document from a URL, file:// URL or path.
func (o *sourceOptions) load(ctx context.Context, source string) (domain.Document, error) {
	p := template.NewProvider(config.TemplatesConfig{
		FetchTimeout: o.Timeout,
		MaxBytes:     o.MaxBytes,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return p.Fetch(ctx, source)
}

// New creates the queuectl root command.
func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "queuectl",
		Short:         "Inspect queue documents and issue API tokens.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

// AddCommands registers every queuectl subcommand on topLevel.
func AddCommands(topLevel *cobra.Command) {
	addInspect(topLevel)
	addValidate(topLevel)
	addToken(topLevel)
	addVersion(topLevel)
}
