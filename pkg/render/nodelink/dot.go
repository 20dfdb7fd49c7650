package nodelink

import (
	"bytes"
	"cmp"
	"context"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/skyline/pkg/building"
	"github.com/matzehuels/skyline/pkg/street"
)

// Options configures street plan rendering.
type Options struct {
	// Detailed adds height, owner and gaps between buildings to the plan.
	// When false, labels show only the category and the span.
	Detailed bool
	// Title labels the whole graph, typically the street name.
	Title string
}

var categoryFill = map[building.Category]string{
	building.House:      "lightcoral",
	building.Office:     "lightsteelblue",
	building.Market:     "lightgoldenrod",
	building.Playground: "palegreen",
}

// ToDOT converts a street to a Graphviz plan: one cluster per row, buildings
// ordered by position and chained left to right. The resulting DOT string can
// be rendered using [RenderSVG] or [RenderPNG].
func ToDOT(s *street.Street, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph Street {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  nodesep=0.3;\n")
	if opts.Title != "" {
		fmt.Fprintf(&buf, "  label=%q;\n  labelloc=t;\n", fmt.Sprintf("%s (%d m)", opts.Title, s.Length()))
	}

	for _, r := range street.Rows {
		buf.WriteString("\n")
		writeRow(&buf, s, r, opts.Detailed)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func writeRow(buf *bytes.Buffer, s *street.Street, r street.RowID, detailed bool) {
	row := s.Row(r)
	slices.SortFunc(row, func(a, b building.Building) int { return cmp.Compare(a.Left, b.Left) })

	fmt.Fprintf(buf, "  subgraph cluster_%s {\n", r)
	fmt.Fprintf(buf, "    label=%q;\n", fmt.Sprintf("%s row", r.Ordinal()))
	buf.WriteString("    style=dashed;\n")

	start := fmt.Sprintf("%s_start", r)
	end := fmt.Sprintf("%s_end", r)
	fmt.Fprintf(buf, "    %q [label=\"0\", shape=plaintext, style=\"\"];\n", start)
	for _, b := range row {
		fmt.Fprintf(buf, "    %q [%s];\n", b.ID, strings.Join(fmtAttrs(b, fmtLabel(b, detailed)), ", "))
	}
	fmt.Fprintf(buf, "    %q [label=%q, shape=plaintext, style=\"\"];\n", end, strconv.Itoa(s.Length()))

	prev, prevRight := start, -1
	for _, b := range row {
		writeLink(buf, prev, b.ID, b.Left-prevRight-1, detailed)
		prev, prevRight = b.ID, b.Right()
	}
	writeLink(buf, prev, end, s.Length()-prevRight-1, detailed)
	buf.WriteString("  }\n")
}

func writeLink(buf *bytes.Buffer, from, to string, gap int, detailed bool) {
	if detailed && gap > 0 {
		fmt.Fprintf(buf, "    %q -> %q [arrowhead=none, style=dotted, label=%q];\n", from, to, fmt.Sprintf("%d m", gap))
		return
	}
	fmt.Fprintf(buf, "    %q -> %q [arrowhead=none, style=dotted];\n", from, to)
}

func fmtLabel(b building.Building, detailed bool) string {
	label := fmt.Sprintf("%s [%d,%d]", b.Category.Title(), b.Left, b.Right())
	if !detailed {
		return label
	}

	parts := []string{label, "id: " + building.ShortID(b.ID)}
	if b.Category != building.Playground {
		parts = append(parts, fmt.Sprintf("height: %d", b.Height))
	}
	if b.Owner != "" {
		parts = append(parts, "owner: "+b.Owner)
	}
	switch b.Category {
	case building.House:
		parts = append(parts, fmt.Sprintf("rooms: %d", b.Rooms))
	case building.Office:
		if b.Business != "" {
			parts = append(parts, "business: "+b.Business)
		}
	case building.Market:
		parts = append(parts, fmt.Sprintf("hours: %s-%s", b.Opening, b.Closing))
	}
	return strings.Join(parts, "\n")
}

func fmtAttrs(b building.Building, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if fill, ok := categoryFill[b.Category]; ok {
		attrs = append(attrs, "fillcolor="+fill)
	}
	if b.Category == building.Playground {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	out, err := renderDOT(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(out), nil
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return renderDOT(ctx, dot, graphviz.PNG)
}

func renderDOT(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
