package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/wtw0212/ff14-stratboard-decode/internal/catalog"
	"github.com/wtw0212/ff14-stratboard-decode/pkg/stgy"
)

const rule = "------------------------------------------------------------------------"

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func swatch(c stgy.Color, colored bool) string {
	hex := fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	if !colored {
		return hex
	}
	return color.RGB(int(c.R), int(c.G), int(c.B)).Sprint("■") + " " + hex
}

func printDocument(w io.Writer, doc *stgy.Document, colored bool) {
	fmt.Fprintf(w, "Binary Size: %d bytes\n", doc.RawSize)
	fmt.Fprintf(w, "Title: %s\n", doc.Title)
	fmt.Fprintf(w, "Object Count: %d (from %s)\n", doc.Count(), doc.CountSource)
	if len(doc.Missing) > 0 {
		names := make([]string, len(doc.Missing))
		for i, k := range doc.Missing {
			names[i] = k.String()
		}
		fmt.Fprintf(w, "Defaulted blocks: %s\n", strings.Join(names, ", "))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "%-4s %-20s %8s %8s %5s %6s %5s %s\n", "#", "Type", "X", "Y", "Size", "Angle", "Alpha", "Color")
	fmt.Fprintln(w, rule)
	for i, o := range doc.Objects {
		name := catalog.TypeName(o.TypeID)
		if o.Text != "" {
			name = fmt.Sprintf("%s %q", name, o.Text)
		}
		fmt.Fprintf(w, "%-4d %-20s %8.1f %8.1f %5d %6d %5d %s\n",
			i+1, name, o.X, o.Y, o.Size, o.Angle, o.Transparency, swatch(o.Color, colored))
	}
	fmt.Fprintln(w, rule)
}

func printSummary(w io.Writer, sum *stgy.Summary) {
	fmt.Fprintf(w, "Binary Size: %d bytes\n", sum.RawSize)
	fmt.Fprintf(w, "Title: %s\n", sum.Title)
	if sum.Partial {
		fmt.Fprintln(w, "Objects: unavailable (Size or Coord block not found)")
		return
	}
	fmt.Fprintf(w, "Object Count: %d\n\n", len(sum.Objects))
	fmt.Fprintf(w, "%-4s %-25s %8s %8s\n", "#", "Type", "X", "Y")
	for _, o := range sum.Objects {
		fmt.Fprintf(w, "%-4d %-25s %8.1f %8.1f\n", o.Index, catalog.TypeName(o.TypeID), o.X, o.Y)
	}
}

func printAnalysis(w io.Writer, a *stgy.Analysis) {
	fmt.Fprintf(w, "Size: %d bytes\n", a.Size)
	fmt.Fprintf(w, "Title offset: %d\n", a.TitleOffset)
	fmt.Fprintf(w, "Title: %s\n", a.Title)
	fmt.Fprintf(w, "Object count: %d (from %s)\n", a.Count, a.CountSource)
	for _, p := range a.Header {
		fmt.Fprintf(w, "Header: %s\n", p)
	}
	fmt.Fprintln(w)
	for _, b := range a.Blocks {
		if b.Found {
			fmt.Fprintf(w, "%-7s offset %4d via %s\n", b.Kind, b.Offset, b.Method)
		} else {
			fmt.Fprintf(w, "%-7s not found\n", b.Kind)
		}
	}
}
