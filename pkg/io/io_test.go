package io

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/archpadhq/archpad/pkg/diagram"
)

func buildDocument(t *testing.T) *diagram.Document {
	t.Helper()
	d := diagram.New(nil)
	a := d.CreateNode("Kafka", false, diagram.Position{X: 0, Y: 0})
	b := d.CreateNode("Spark", false, diagram.Position{X: 200, Y: 40})
	c := d.CreateNode("Notes", true, diagram.Position{X: 400, Y: 80})
	d.Redescribe(a.ID, "event backbone")
	if _, err := d.Connect(a.ID, b.ID, "right", "left"); err != nil {
		t.Fatal(err)
	}
	if _, err := d.Connect(b.ID, c.ID, "", ""); err != nil {
		t.Fatal(err)
	}
	return d
}

func TestRoundTrip(t *testing.T) {
	doc := buildDocument(t)

	var first bytes.Buffer
	if err := WriteJSON(doc, &first); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	restored, err := ReadJSON(bytes.NewReader(first.Bytes()), nil)
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}

	var second bytes.Buffer
	if err := WriteJSON(restored, &second); err != nil {
		t.Fatalf("WriteJSON after import: %v", err)
	}

	// Export idempotence: Export(Import(Export(d))) == Export(d).
	if first.String() != second.String() {
		t.Errorf("round-trip not idempotent:\nfirst:\n%s\nsecond:\n%s", first.String(), second.String())
	}

	// Structural equality spot checks.
	if restored.NodeCount() != doc.NodeCount() {
		t.Errorf("nodes = %d, want %d", restored.NodeCount(), doc.NodeCount())
	}
	if restored.EdgeCount() != doc.EdgeCount() {
		t.Errorf("edges = %d, want %d", restored.EdgeCount(), doc.EdgeCount())
	}
	n, ok := restored.Node("node_0")
	if !ok {
		t.Fatal("node_0 missing after round-trip")
	}
	if n.Label != "Kafka" || n.Description != "event backbone" {
		t.Errorf("node_0 = %q/%q, want Kafka/event backbone", n.Label, n.Description)
	}
	if n.Position.X != 0 || n.Position.Y != 0 {
		t.Errorf("node_0 position = %+v", n.Position)
	}
}

func TestImportCounterResync(t *testing.T) {
	input := `{
		"nodes": [
			{"id": "node_2", "data": {"label": "S3"}},
			{"id": "node_7", "data": {"label": "Athena"}},
			{"id": "custom_x", "data": {"label": "Legacy"}}
		],
		"edges": []
	}`

	doc, err := ReadJSON(strings.NewReader(input), nil)
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if doc.Counter() != 8 {
		t.Errorf("counter = %d, want 8", doc.Counter())
	}
	if n := doc.CreateNode("fresh", false, diagram.Position{}); n.ID != "node_8" {
		t.Errorf("next ID = %s, want node_8", n.ID)
	}
}

func TestImportDefaults(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"EmptyObject", `{}`},
		{"NullArrays", `{"nodes": null, "edges": null}`},
		{"MissingEdges", `{"nodes": []}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ReadJSON(strings.NewReader(tt.input), nil)
			if err != nil {
				t.Fatalf("ReadJSON: %v", err)
			}
			if doc.NodeCount() != 0 || doc.EdgeCount() != 0 {
				t.Errorf("document = %d nodes/%d edges, want empty", doc.NodeCount(), doc.EdgeCount())
			}
			if doc.Counter() != 0 {
				t.Errorf("counter = %d, want 0", doc.Counter())
			}
		})
	}
}

func TestImportCustomFlagDefault(t *testing.T) {
	input := `{"nodes": [{"id": "node_0", "data": {"label": "X"}}]}`

	doc, err := ReadJSON(strings.NewReader(input), nil)
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	n, ok := doc.Node("node_0")
	if !ok {
		t.Fatal("node_0 missing")
	}
	if n.Custom {
		t.Error("isCustom should default to false")
	}
}

func TestImportErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error // nil means any error is acceptable
	}{
		{"Malformed", `not json at all`, nil},
		{"TopLevelArray", `[]`, ErrNotObject},
		{"TopLevelNull", `null`, ErrNotObject},
		{"TopLevelString", `"nodes"`, ErrNotObject},
		{"TrailingData", `{"nodes": []} extra`, ErrTrailingData},
		{"TwoObjects", `{}{}`, ErrTrailingData},
		{"DuplicateNode", `{"nodes": [{"id": "a"}, {"id": "a"}]}`, diagram.ErrDuplicateNodeID},
		{"EmptyNodeID", `{"nodes": [{"id": ""}]}`, diagram.ErrInvalidNodeID},
		{
			"DanglingEdgeSource",
			`{"nodes": [{"id": "a"}], "edges": [{"id": "e1", "source": "ghost", "target": "a"}]}`,
			diagram.ErrUnknownSourceNode,
		},
		{
			"DanglingEdgeTarget",
			`{"nodes": [{"id": "a"}], "edges": [{"id": "e1", "source": "a", "target": "ghost"}]}`,
			diagram.ErrUnknownTargetNode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.input), nil)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestExportShape(t *testing.T) {
	doc := diagram.New(nil)
	doc.CreateNode("Lambda", false, diagram.Position{X: 1, Y: 2})
	doc.CreateNode("Note", true, diagram.Position{})

	env := FromDocument(doc)
	if env.Nodes[0].Type != NodeTypeDefault {
		t.Errorf("catalog node type = %q, want %q", env.Nodes[0].Type, NodeTypeDefault)
	}
	if env.Nodes[1].Type != NodeTypeCustom {
		t.Errorf("custom node type = %q, want %q", env.Nodes[1].Type, NodeTypeCustom)
	}
	if !env.Nodes[1].Data.IsCustom {
		t.Error("custom flag lost in envelope")
	}
}

func TestImportExportFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultExportName)

	doc := buildDocument(t)
	if err := ExportJSON(doc, path); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}

	restored, err := ImportJSON(path, nil)
	if err != nil {
		t.Fatalf("ImportJSON: %v", err)
	}
	if restored.NodeCount() != doc.NodeCount() {
		t.Errorf("nodes = %d, want %d", restored.NodeCount(), doc.NodeCount())
	}

	if _, err := ImportJSON(filepath.Join(dir, "missing.json"), nil); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{{{"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ImportJSON(bad, nil); err == nil {
		t.Error("expected error for malformed file")
	}
}

func TestUnmarshalDiagram(t *testing.T) {
	env, err := UnmarshalDiagram([]byte(`{"nodes": [{"id": "a", "data": {"label": "A"}}]}`))
	if err != nil {
		t.Fatalf("UnmarshalDiagram: %v", err)
	}
	if len(env.Nodes) != 1 || env.Nodes[0].Data.Label != "A" {
		t.Errorf("envelope = %+v", env)
	}

	if _, err := UnmarshalDiagram([]byte(`nope`)); err == nil {
		t.Error("expected error for malformed bytes")
	}
	if _, err := UnmarshalDiagram([]byte(`null`)); !errors.Is(err, ErrNotObject) {
		t.Errorf("null envelope err = %v, want ErrNotObject", err)
	}
	if _, err := UnmarshalDiagram([]byte(`{"nodes": []}garbage`)); !errors.Is(err, ErrTrailingData) {
		t.Errorf("trailing bytes err = %v, want ErrTrailingData", err)
	}
}
