package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/queue-backend/internal/domain"
	"github.com/heartmarshall/queue-backend/internal/timeline"
)

type inspectOptions struct {
	sourceOptions
	MaxIndex int
	Page     string
}

func addInspect(topLevel *cobra.Command) {
	o := &inspectOptions{}
	cmd := &cobra.Command{
		Use:   "inspect <source>",
		Short: "Print the pages, objects and timeline tracks of a document.",
		Example: `
queuectl inspect ./deck.json
queuectl inspect https://templates.example.com/intro.json --page Page-2
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := o.load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return o.inspect(cmd.OutOrStdout(), doc)
		},
	}
	o.addFlags(cmd)
	cmd.Flags().IntVar(&o.MaxIndex, "max-index", 50, "Display maximum of the timeline.")
	cmd.Flags().StringVar(&o.Page, "page", "", "Only show the page with this id or name.")

	topLevel.AddCommand(cmd)
}

func (o *inspectOptions) inspect(w io.Writer, doc domain.Document) error {
	p := printer{w: w}

	p.title("%s", doc.DocumentName)
	p.faint("id %s  %gx%g  fill %s", doc.ID, doc.DocumentRect.Width, doc.DocumentRect.Height, doc.DocumentRect.Fill)
	p.newline()

	pages := p.table("#", "Page", "ID", "Objects", "Effects")
	for _, pg := range doc.Pages {
		pages.AddRow(pg.Index, pg.PageName, pg.ID, len(pg.Objects), countEffects(pg.Objects))
	}
	p.print(pages)

	shown := 0
	for _, pg := range doc.Pages {
		if o.Page != "" && o.Page != pg.ID && o.Page != pg.PageName {
			continue
		}
		shown++
		o.inspectPage(p, pg)
	}
	if o.Page != "" && shown == 0 {
		return domain.NewNotFoundError("page", o.Page)
	}
	return nil
}

func (o *inspectOptions) inspectPage(p printer, pg domain.Page) {
	p.title("%s", pg.PageName)

	if len(pg.Objects) == 0 {
		p.none()
		return
	}
	objects := p.table("Object", "Type", "Effects")
	for _, obj := range pg.Objects {
		typ := string(obj.Type)
		if obj.IconType != "" {
			typ += " (" + obj.IconType + ")"
		}
		objects.AddRow(obj.ID, typ, len(obj.Effects))
	}
	p.print(objects)

	tracks := timeline.DeriveTracks(pg.Objects, o.MaxIndex)
	if len(tracks.Tracks) == 0 {
		p.faint("  no tracks")
		p.newline()
		return
	}
	tbl := p.table("Track", "Start", "End", "Shown until", "Removed", "Queue", "Colour")
	for _, t := range tracks.Tracks {
		removed := "no"
		if t.Terminated {
			removed = "yes"
		}
		tbl.AddRow(t.ObjectID, t.StartQueueIndex, t.EndQueueIndex, t.DisplayEndQueueIndex, removed, joinInts(t.QueueList), t.UniqueColor)
	}
	p.print(tbl)
}

func countEffects(objects []domain.Object) int {
	n := 0
	for _, o := range objects {
		n += len(o.Effects)
	}
	return n
}
