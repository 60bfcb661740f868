// Package key prints the legend for the marks used in worklog listings.
package key

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/worklog/pkg/glyph"
)

// Key prints the entry marks followed by the bookmark marks.
type Key struct {
	// Out defaults to color.Output.
	Out io.Writer
}

func (k *Key) out() io.Writer {
	if k.Out != nil {
		return k.Out
	}
	return color.Output
}

// Do renders both tables.
func (k *Key) Do(ctx context.Context) error {
	_, _ = fmt.Fprintln(k.out(), "")
	k.Key(ctx, glyph.DefaultGlyphs(), false)
	_, _ = fmt.Fprintln(k.out(), "")
	k.Key(ctx, glyph.DefaultGlyphs(), true)
	_, _ = fmt.Fprintln(k.out(), "")
	return nil
}

// Key renders one table; structural selects the bookmark marks.
func (k *Key) Key(_ context.Context, glyphs []glyph.Glyph, structural bool) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	if structural {
		tbl.AddRow(bold.Sprint("Bookmarks"), bold.Sprint("Meaning"))
	} else {
		tbl.AddRow(bold.Sprint("  Entries"), bold.Sprint("Meaning"))
	}
	for _, g := range glyphs {
		if g.Structural == structural {
			tbl.AddRow(g.Symbol, g.Meaning)
		}
	}
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(k.out(), tbl)
}
