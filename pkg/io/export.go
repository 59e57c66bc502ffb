package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/archpadhq/archpad/pkg/diagram"
)

// DefaultExportName is the filename offered to the browser when the user
// exports the current diagram.
const DefaultExportName = "architecture.json"

// Node type discriminators used by the canvas widget to pick a renderer.
const (
	NodeTypeDefault = "default"
	NodeTypeCustom  = "custom"
)

// Diagram is the canonical serialization envelope for a diagram document.
// It is the shape written to export files, stored design entries, and API
// payloads. Missing nodes or edges arrays decode as empty, not as an error.
type Diagram struct {
	Nodes []Node `json:"nodes" bson:"nodes"`
	Edges []Edge `json:"edges" bson:"edges"`
}

// Node is the serialized form of a diagram node. Label, description, and the
// custom flag travel inside Data, mirroring what the canvas widget expects.
type Node struct {
	ID       string           `json:"id" bson:"id"`
	Type     string           `json:"type,omitempty" bson:"type,omitempty"`
	Position diagram.Position `json:"position" bson:"position"`
	Data     NodeData         `json:"data" bson:"data"`
}

// NodeData carries the user-facing node payload.
type NodeData struct {
	Label       string `json:"label" bson:"label"`
	Description string `json:"description" bson:"description"`
	IsCustom    bool   `json:"isCustom" bson:"is_custom"`
}

// Edge is the serialized form of a diagram edge, presentation flags included.
type Edge struct {
	ID           string `json:"id" bson:"id"`
	Source       string `json:"source" bson:"source"`
	Target       string `json:"target" bson:"target"`
	SourceHandle string `json:"sourceHandle,omitempty" bson:"source_handle,omitempty"`
	TargetHandle string `json:"targetHandle,omitempty" bson:"target_handle,omitempty"`
	Animated     bool   `json:"animated,omitempty" bson:"animated,omitempty"`
	MarkerEnd    string `json:"markerEnd,omitempty" bson:"marker_end,omitempty"`
}

// FromDocument converts a live document to its serialization envelope.
// Node and edge order is preserved. The node type discriminator is derived
// from the custom flag.
func FromDocument(doc *diagram.Document) Diagram {
	nodes := doc.Nodes()
	edges := doc.Edges()

	out := Diagram{
		Nodes: make([]Node, len(nodes)),
		Edges: make([]Edge, len(edges)),
	}

	for i, n := range nodes {
		nodeType := NodeTypeDefault
		if n.Custom {
			nodeType = NodeTypeCustom
		}
		out.Nodes[i] = Node{
			ID:       n.ID,
			Type:     nodeType,
			Position: n.Position,
			Data: NodeData{
				Label:       n.Label,
				Description: n.Description,
				IsCustom:    n.Custom,
			},
		}
	}
	for i, e := range edges {
		out.Edges[i] = Edge{
			ID:           e.ID,
			Source:       e.Source,
			Target:       e.Target,
			SourceHandle: e.SourceHandle,
			TargetHandle: e.TargetHandle,
			Animated:     e.Animated,
			MarkerEnd:    e.MarkerEnd,
		}
	}

	return out
}

// WriteJSON encodes a document as its JSON envelope and writes it to w.
// The output is indented for hand-inspection and can be restored with
// [ReadJSON] for full round-trip fidelity.
func WriteJSON(doc *diagram.Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(FromDocument(doc)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a document to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(doc *diagram.Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(doc, f)
}
