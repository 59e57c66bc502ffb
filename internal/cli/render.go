package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/archpadhq/archpad/pkg/cache"
	"github.com/archpadhq/archpad/pkg/catalog"
	"github.com/archpadhq/archpad/pkg/diagram"
	appio "github.com/archpadhq/archpad/pkg/io"
	"github.com/archpadhq/archpad/pkg/render"
)

// Output formats accepted by --formats.
const (
	formatDOT = "dot"
	formatSVG = "svg"
	formatPNG = "png"
)

// renderCommand creates the render command for turning design files into images.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output       string
		formats      string
		detailed     bool
		descriptions string
		noCache      bool
	)

	cmd := &cobra.Command{
		Use:   "render [design.json]",
		Short: "Render a design file to DOT, SVG, or PNG",
		Long: `Render a design file to DOT, SVG, or PNG.

The input is a design exported from the editor (or fetched from
/api/designs/{name}). Node positions from the canvas are preserved in the
rendered image. With --detailed, node descriptions are included in labels.

Designs with edges pointing at missing nodes are rejected.

Rendered artifacts are cached locally (~/.cache/archpad/) keyed by diagram
content, so re-rendering an unchanged design is instant.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], output, parseFormats(formats), detailed, descriptions, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output base path (default: input without extension)")
	cmd.Flags().StringVarP(&formats, "formats", "f", formatSVG, "comma-separated output formats: dot, svg, png")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include node descriptions in labels")
	cmd.Flags().StringVar(&descriptions, "descriptions", "", "descriptions file for re-seeding empty node descriptions")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// newCache builds the render cache. Failures to resolve a cache directory
// silently disable caching rather than failing the render.
func newCache(noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache()
	}
	c, err := cache.NewFileCache(dir)
	if err != nil {
		return cache.NewNullCache()
	}
	return c
}

// cacheDir returns the cache directory using XDG standard (~/.cache/archpad/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, "archpad"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", "archpad"), nil
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{formatSVG}
	}
	return strings.Split(s, ",")
}

func (c *CLI) runRender(ctx context.Context, input, output string, formats []string, detailed bool, descriptions string, noCache bool) error {
	describe := diagram.DescribeFunc(func(string) string { return "" })
	if descriptions != "" {
		index, err := catalog.LoadIndex(descriptions)
		if err != nil {
			return fmt.Errorf("load descriptions: %w", err)
		}
		describe = index.Describe
	}

	doc, err := appio.ImportJSON(input, describe)
	if err != nil {
		return fmt.Errorf("load design %s: %w", input, err)
	}

	base := output
	if base == "" {
		base = strings.TrimSuffix(input, filepath.Ext(input))
	}

	d := appio.FromDocument(doc)
	dot := render.ToDOT(d, render.Options{Detailed: detailed})

	artifacts := newCache(noCache)
	defer artifacts.Close()

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, "Rendering...")
	spinner.Start()

	var written []string
	for _, format := range formats {
		path := base + "." + format
		var data []byte

		switch format {
		case formatDOT:
			data = []byte(dot)
		case formatSVG:
			data, err = renderCached(ctx, artifacts, dot, format, render.RenderSVG)
		case formatPNG:
			data, err = renderCached(ctx, artifacts, dot, format, render.RenderPNG)
		default:
			spinner.StopWithError("Unknown format: " + format)
			return fmt.Errorf("unknown format %q", format)
		}
		if err != nil {
			spinner.StopWithError("Render failed")
			return fmt.Errorf("render %s: %w", format, err)
		}

		if err := os.WriteFile(path, data, 0644); err != nil {
			spinner.StopWithError("Write failed")
			return fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	prog.done(fmt.Sprintf("Rendered %d format(s)", len(written)))
	printSuccess("Render complete")
	for _, path := range written {
		printFile(path)
	}
	printStats(doc.NodeCount(), doc.EdgeCount())

	return nil
}

// renderCached renders through the artifact cache: identical diagram content
// in the same format is rendered once.
func renderCached(ctx context.Context, artifacts cache.Cache, dot, format string, fn func(context.Context, string) ([]byte, error)) ([]byte, error) {
	key := cache.RenderKey(dot, format)

	if data, found, err := artifacts.Get(ctx, key); err == nil && found {
		return data, nil
	}

	data, err := fn(ctx, dot)
	if err != nil {
		return nil, err
	}
	_ = artifacts.Set(ctx, key, data, 0)
	return data, nil
}
