package diagram_test

import (
	"fmt"

	"github.com/archpadhq/archpad/pkg/diagram"
)

func ExampleDocument_basic() {
	// Compose a small pipeline: source feeds a transform feeds a sink.
	d := diagram.New(nil)
	src := d.CreateNode("Kafka", false, diagram.Position{X: 0, Y: 0})
	xfm := d.CreateNode("Spark", false, diagram.Position{X: 200, Y: 0})
	snk := d.CreateNode("Snowflake", false, diagram.Position{X: 400, Y: 0})
	_, _ = d.Connect(src.ID, xfm.ID, "", "")
	_, _ = d.Connect(xfm.ID, snk.ID, "", "")

	fmt.Println("Nodes:", d.NodeCount())
	fmt.Println("Edges:", d.EdgeCount())
	fmt.Println("First ID:", src.ID)
	// Output:
	// Nodes: 3
	// Edges: 2
	// First ID: node_0
}

func ExampleDocument_SyncCounter() {
	// Restore a diagram that mixes generated and externally authored IDs.
	d := diagram.New(nil)
	_ = d.AddNode(diagram.Node{ID: "node_2", Label: "S3"})
	_ = d.AddNode(diagram.Node{ID: "node_7", Label: "Athena"})
	_ = d.AddNode(diagram.Node{ID: "custom_x", Label: "Legacy"})
	d.SyncCounter()

	next := d.CreateNode("Glue", false, diagram.Position{})
	fmt.Println("Next ID:", next.ID)
	// Output:
	// Next ID: node_8
}

func ExampleDocument_RemoveNode() {
	d := diagram.New(nil)
	a := d.CreateNode("A", false, diagram.Position{})
	b := d.CreateNode("B", false, diagram.Position{})
	c := d.CreateNode("C", false, diagram.Position{})
	_, _ = d.Connect(a.ID, b.ID, "", "")
	_, _ = d.Connect(b.ID, c.ID, "", "")

	d.RemoveNode(b.ID)

	fmt.Println("Nodes:", d.NodeCount())
	fmt.Println("Edges:", d.EdgeCount())
	// Output:
	// Nodes: 2
	// Edges: 0
}
