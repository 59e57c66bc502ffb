package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	appio "github.com/archpadhq/archpad/pkg/io"
)

// positionScale converts canvas pixels to Graphviz points. The canvas works
// in hundreds of pixels; dividing keeps snapshots at a readable size.
const positionScale = 2.0

// Options configures snapshot rendering.
type Options struct {
	// Detailed appends the node description below the label.
	Detailed bool
}

// ToDOT converts a diagram envelope to Graphviz DOT for snapshot rendering.
// Canvas positions are pinned (neato "!" syntax) so the snapshot matches the
// arrangement the user drew; the y axis is flipped because canvas coordinates
// grow downward. Custom nodes get a dashed outline.
func ToDOT(d appio.Diagram, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	for _, n := range d.Nodes {
		label := fmtLabel(n, opts.Detailed)
		attrs := []string{
			fmt.Sprintf("label=%q", label),
			fmt.Sprintf("pos=\"%.1f,%.1f!\"", n.Position.X/positionScale, -n.Position.Y/positionScale),
		}
		if n.Data.IsCustom {
			attrs = append(attrs, "style=\"rounded,filled,dashed\"")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range d.Edges {
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.Source, e.Target)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n appio.Node, detailed bool) string {
	label := n.Data.Label
	if label == "" {
		label = n.ID
	}
	if detailed && n.Data.Description != "" {
		label += "\n" + n.Data.Description
	}
	return label
}

// RenderSVG renders a DOT snapshot to SVG using Graphviz with the neato
// engine, which honors the pinned node positions emitted by [ToDOT].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return renderFormat(ctx, dot, graphviz.SVG)
}

// RenderPNG renders a DOT snapshot to PNG. Same engine rules as [RenderSVG].
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return renderFormat(ctx, dot, graphviz.PNG)
}

func renderFormat(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

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
