package diagram

import (
	"errors"
	"testing"
)

func TestCreateNodeIDs(t *testing.T) {
	d := New(nil)

	a := d.CreateNode("Lambda", false, Position{X: 10, Y: 20})
	b := d.CreateNode("Custom box", true, Position{})

	if a.ID != "node_0" {
		t.Errorf("first ID = %s, want node_0", a.ID)
	}
	if b.ID != "node_1" {
		t.Errorf("second ID = %s, want node_1", b.ID)
	}
	if d.Counter() != 2 {
		t.Errorf("counter = %d, want 2", d.Counter())
	}
	if a.Position.X != 10 || a.Position.Y != 20 {
		t.Errorf("position = %+v, want {10 20}", a.Position)
	}
}

func TestCreateNodeSeedsDescription(t *testing.T) {
	lookup := func(label string) string {
		if label == "Lambda" {
			return "Serverless compute"
		}
		return ""
	}
	d := New(lookup)

	known := d.CreateNode("Lambda", false, Position{})
	unknown := d.CreateNode("Mystery", false, Position{})

	if known.Description != "Serverless compute" {
		t.Errorf("description = %q, want seeded value", known.Description)
	}
	if unknown.Description != "" {
		t.Errorf("description = %q, want empty for unknown label", unknown.Description)
	}
}

func TestAddNode(t *testing.T) {
	tests := []struct {
		name    string
		node    Node
		prep    func(d *Document)
		wantErr error
	}{
		{
			name: "External ID",
			node: Node{ID: "custom_x", Label: "X"},
		},
		{
			name:    "EmptyID",
			node:    Node{Label: "X"},
			wantErr: ErrInvalidNodeID,
		},
		{
			name:    "Duplicate",
			node:    Node{ID: "node_0"},
			prep:    func(d *Document) { d.CreateNode("A", false, Position{}) },
			wantErr: ErrDuplicateNodeID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New(nil)
			if tt.prep != nil {
				tt.prep(d)
			}
			err := d.AddNode(tt.node)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("AddNode = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestConnect(t *testing.T) {
	d := New(nil)
	a := d.CreateNode("A", false, Position{})
	b := d.CreateNode("B", false, Position{})

	e, err := d.Connect(a.ID, b.ID, "right", "left")
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if e.ID == "" {
		t.Error("edge ID not assigned")
	}
	if !e.Animated {
		t.Error("edge not animated")
	}
	if e.MarkerEnd != MarkerArrowClosed {
		t.Errorf("marker = %q, want %q", e.MarkerEnd, MarkerArrowClosed)
	}
	if e.SourceHandle != "right" || e.TargetHandle != "left" {
		t.Errorf("handles = %q/%q, want right/left", e.SourceHandle, e.TargetHandle)
	}

	// Parallel edge with different handles is permitted.
	if _, err := d.Connect(a.ID, b.ID, "bottom", "top"); err != nil {
		t.Fatalf("parallel Connect: %v", err)
	}
	if d.EdgeCount() != 2 {
		t.Errorf("edges = %d, want 2", d.EdgeCount())
	}
}

func TestConnectMissingEndpoints(t *testing.T) {
	d := New(nil)
	a := d.CreateNode("A", false, Position{})

	if _, err := d.Connect("ghost", a.ID, "", ""); !errors.Is(err, ErrUnknownSourceNode) {
		t.Errorf("missing source = %v, want ErrUnknownSourceNode", err)
	}
	if _, err := d.Connect(a.ID, "ghost", "", ""); !errors.Is(err, ErrUnknownTargetNode) {
		t.Errorf("missing target = %v, want ErrUnknownTargetNode", err)
	}
	if d.EdgeCount() != 0 {
		t.Errorf("edges = %d, want 0 after rejected connects", d.EdgeCount())
	}
}

func TestRemoveNodeCascade(t *testing.T) {
	// A -> B -> C; removing B must delete exactly the edges touching B.
	d := New(nil)
	a := d.CreateNode("A", false, Position{})
	b := d.CreateNode("B", false, Position{})
	c := d.CreateNode("C", false, Position{})
	if _, err := d.Connect(a.ID, b.ID, "", ""); err != nil {
		t.Fatal(err)
	}
	if _, err := d.Connect(b.ID, c.ID, "", ""); err != nil {
		t.Fatal(err)
	}

	d.RemoveNode(b.ID)

	if d.NodeCount() != 2 {
		t.Errorf("nodes = %d, want 2", d.NodeCount())
	}
	if d.EdgeCount() != 0 {
		t.Errorf("edges = %d, want 0 after cascade", d.EdgeCount())
	}
	for _, e := range d.Edges() {
		if e.Source == b.ID || e.Target == b.ID {
			t.Errorf("edge %s still references removed node", e.ID)
		}
	}

	// Removing an absent node is a no-op.
	d.RemoveNode("ghost")
	if d.NodeCount() != 2 {
		t.Error("no-op removal changed node count")
	}
}

func TestRemoveNodeKeepsUnrelatedEdges(t *testing.T) {
	d := New(nil)
	a := d.CreateNode("A", false, Position{})
	b := d.CreateNode("B", false, Position{})
	c := d.CreateNode("C", false, Position{})
	kept, err := d.Connect(a.ID, b.ID, "", "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := d.Connect(a.ID, c.ID, "", ""); err != nil {
		t.Fatal(err)
	}

	d.RemoveNode(c.ID)

	if d.EdgeCount() != 1 {
		t.Fatalf("edges = %d, want 1", d.EdgeCount())
	}
	if d.Edges()[0].ID != kept.ID {
		t.Errorf("surviving edge = %s, want %s", d.Edges()[0].ID, kept.ID)
	}
}

func TestRelabelPolicy(t *testing.T) {
	d := New(nil)
	custom := d.CreateNode("Note", true, Position{})
	fixed := d.CreateNode("Lambda", false, Position{})

	if !d.Relabel(custom.ID, "Renamed") {
		t.Error("relabel of custom node rejected")
	}
	if custom.Label != "Renamed" {
		t.Errorf("label = %q, want Renamed", custom.Label)
	}

	if d.Relabel(fixed.ID, "Hacked") {
		t.Error("relabel of catalog node accepted")
	}
	if fixed.Label != "Lambda" {
		t.Errorf("label = %q, want unchanged Lambda", fixed.Label)
	}

	if d.Relabel("ghost", "X") {
		t.Error("relabel of missing node accepted")
	}
}

func TestRedescribe(t *testing.T) {
	d := New(nil)
	fixed := d.CreateNode("Lambda", false, Position{})

	if !d.Redescribe(fixed.ID, "our ingest functions") {
		t.Error("redescribe rejected")
	}
	if fixed.Description != "our ingest functions" {
		t.Errorf("description = %q", fixed.Description)
	}
	if d.Redescribe("ghost", "x") {
		t.Error("redescribe of missing node accepted")
	}
}

func TestSyncCounter(t *testing.T) {
	tests := []struct {
		name string
		ids  []string
		want int
	}{
		{"Empty", nil, 0},
		{"GeneratedOnly", []string{"node_2", "node_7"}, 8},
		{"MixedExternal", []string{"node_2", "node_7", "custom_x"}, 8},
		{"ExternalOnly", []string{"custom_a", "custom_b"}, 0},
		{"NonMatching", []string{"node_", "node_x", "xnode_3"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New(nil)
			for _, id := range tt.ids {
				if err := d.AddNode(Node{ID: id}); err != nil {
					t.Fatalf("AddNode(%s): %v", id, err)
				}
			}
			d.SyncCounter()
			if d.Counter() != tt.want {
				t.Errorf("counter = %d, want %d", d.Counter(), tt.want)
			}

			// A subsequently created node must not collide.
			n := d.CreateNode("fresh", false, Position{})
			for _, id := range tt.ids {
				if n.ID == id {
					t.Errorf("new node ID %s collides with restored ID", n.ID)
				}
			}
		})
	}
}

func TestApplyChanges(t *testing.T) {
	d := New(nil)
	a := d.CreateNode("A", false, Position{})
	b := d.CreateNode("B", false, Position{})
	e, err := d.Connect(a.ID, b.ID, "", "")
	if err != nil {
		t.Fatal(err)
	}

	// Node removal and its incident edge removal in the same batch: the
	// cascade must hold no matter which delta lands first.
	d.ApplyChanges([]Change{
		{Kind: ChangeRemoveNode, ID: b.ID},
		{Kind: ChangeRemoveEdge, ID: e.ID},
		{Kind: ChangePosition, ID: a.ID, Position: Position{X: 5, Y: 6}},
	})

	if d.NodeCount() != 1 {
		t.Errorf("nodes = %d, want 1", d.NodeCount())
	}
	if d.EdgeCount() != 0 {
		t.Errorf("edges = %d, want 0", d.EdgeCount())
	}
	if a.Position.X != 5 || a.Position.Y != 6 {
		t.Errorf("position = %+v, want {5 6}", a.Position)
	}
}

func TestParseGeneratedID(t *testing.T) {
	tests := []struct {
		id     string
		want   int
		wantOK bool
	}{
		{"node_0", 0, true},
		{"node_42", 42, true},
		{"node_", 0, false},
		{"node_x", 0, false},
		{"custom_7", 0, false},
		{"node_7x", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseGeneratedID(tt.id)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseGeneratedID(%q) = %d,%v, want %d,%v", tt.id, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestParseDropPayload(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    DropPayload
		wantErr bool
	}{
		{"Catalog", `{"label":"Lambda","isCustom":false}`, DropPayload{Label: "Lambda"}, false},
		{"Custom", `{"label":"Note","isCustom":true}`, DropPayload{Label: "Note", Custom: true}, false},
		{"MissingLabel", `{"isCustom":true}`, DropPayload{}, true},
		{"Garbage", `not json`, DropPayload{}, true},
		{"Empty", ``, DropPayload{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDropPayload([]byte(tt.input))
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidPayload) {
					t.Fatalf("err = %v, want ErrInvalidPayload", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDropPayload: %v", err)
			}
			if got != tt.want {
				t.Errorf("payload = %+v, want %+v", got, tt.want)
			}
		})
	}
}
