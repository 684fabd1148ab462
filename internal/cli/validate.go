package cli

import (
	"errors"
	"io"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/queue-backend/internal/domain"
)

// ErrInvalid is returned by validate for documents that fail validation,
// after the problems have been printed.
var ErrInvalid = errors.New("document is invalid")

func addValidate(topLevel *cobra.Command) {
	o := &sourceOptions{}
	cmd := &cobra.Command{
		Use:   "validate <source>",
		Short: "Check that a document parses and validates.",
		Example: `
queuectl validate ./deck.json
queuectl validate file:///srv/templates/outro.json
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := o.load(cmd.Context(), args[0])
			return report(cmd.OutOrStdout(), args[0], doc, err)
		},
	}
	o.addFlags(cmd)

	topLevel.AddCommand(cmd)
}

func report(w io.Writer, source string, doc domain.Document, err error) error {
	p := printer{w: w}

	var ve *domain.ValidationError
	switch {
	case err == nil:
		objects := 0
		for _, pg := range doc.Pages {
			objects += len(pg.Objects)
		}
		p.ok("%s: %d pages, %d objects", source, len(doc.Pages), objects)
		return nil
	case errors.As(err, &ve):
		p.fail("%s: %d problems", source, len(ve.Errors))
		tbl := p.table("Field", "Problem")
		for _, fe := range ve.Errors {
			tbl.AddRow(fe.Field, fe.Message)
		}
		p.print(tbl)
		return ErrInvalid
	default:
		return err
	}
}
