// Package render produces static snapshots of diagrams via Graphviz.
//
// The browser canvas is the primary renderer; this package exists for the
// places a live canvas cannot go - README embeds, design review attachments,
// and the POST /api/render endpoint. [ToDOT] pins every node to its canvas
// position so the snapshot matches what the user drew, then [RenderSVG] or
// [RenderPNG] rasterizes it with the neato engine.
package render
