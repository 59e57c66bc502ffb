package diagram

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strconv"

	"github.com/google/uuid"
)

var (
	// ErrInvalidNodeID is returned by [Document.AddNode] when the node ID is
	// empty. All nodes must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Document.AddNode] when a node with
	// the same ID already exists in the document. Node IDs must be unique.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrDuplicateEdgeID is returned by [Document.AddEdge] when an edge with
	// the same ID already exists in the document.
	ErrDuplicateEdgeID = errors.New("duplicate edge ID")

	// ErrUnknownSourceNode is returned by [Document.Connect] and
	// [Document.AddEdge] when the source node does not exist.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [Document.Connect] and
	// [Document.AddEdge] when the target node does not exist.
	ErrUnknownTargetNode = errors.New("unknown target node")
)

// MarkerArrowClosed is the arrowhead marker carried on edges created by
// [Document.Connect]. It is a presentation flag for the canvas widget and has
// no structural meaning.
const MarkerArrowClosed = "arrowclosed"

// idPrefix is the prefix of generated node identifiers.
const idPrefix = "node_"

// generatedIDPattern matches identifiers produced by [Document.CreateNode].
// Externally authored IDs that do not match are valid document members but
// never advance the ID counter.
var generatedIDPattern = regexp.MustCompile(`^node_(\d+)$`)

// Position is a 2D coordinate in canvas space. Positions are never validated
// against canvas bounds; the widget owns clamping and zoom.
type Position struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Node is a labeled, positioned, describable vertex in the diagram.
//
// Custom distinguishes free-form nodes (user-authored label, editable via
// [Document.Relabel]) from catalog-derived nodes whose label is fixed.
type Node struct {
	ID          string
	Label       string
	Description string
	Custom      bool
	Position    Position
}

// Edge is a directed connection between two nodes. Source and Target always
// name nodes present in the same document; removing a node cascades to every
// edge referencing it.
//
// Animated and MarkerEnd are presentation flags carried for the canvas widget.
// Handles identify the attachment points on each node; parallel edges between
// the same pair of nodes are permitted when handles differ.
type Edge struct {
	ID           string
	Source       string
	Target       string
	SourceHandle string
	TargetHandle string
	Animated     bool
	MarkerEnd    string
}

// DescribeFunc looks up the default description for a tool label. It seeds
// the Description of nodes created by [Document.CreateNode]. A nil lookup
// leaves descriptions empty.
type DescribeFunc func(label string) string

// Document is the authoritative in-memory representation of a diagram.
// It owns identifier assignment: generated IDs follow the node_<n> pattern
// with a per-document counter, resynchronized after restores via
// [Document.SyncCounter] so new nodes never collide with restored ones.
//
// Node and edge order is preserved as insertion order for serialization
// fidelity. Document is not safe for concurrent use without external
// synchronization; all mutations are expected to arrive from a single
// event-dispatch goroutine.
type Document struct {
	nodes    []*Node
	edges    []*Edge
	byID     map[string]*Node
	edgeByID map[string]*Edge
	nextID   int
	describe DescribeFunc
}

// New creates an empty document. The describe lookup may be nil, in which
// case created nodes start with an empty description.
func New(describe DescribeFunc) *Document {
	return &Document{
		byID:     make(map[string]*Node),
		edgeByID: make(map[string]*Edge),
		describe: describe,
	}
}

// CreateNode allocates the next generated ID, advances the counter, and
// appends a new node. The description is seeded from the describe lookup by
// label, or left empty. CreateNode always succeeds; the position is not
// validated against canvas bounds.
func (d *Document) CreateNode(label string, custom bool, pos Position) *Node {
	n := &Node{
		ID:       fmt.Sprintf("%s%d", idPrefix, d.nextID),
		Label:    label,
		Custom:   custom,
		Position: pos,
	}
	if d.describe != nil {
		n.Description = d.describe(label)
	}
	d.nextID++
	d.nodes = append(d.nodes, n)
	d.byID[n.ID] = n
	return n
}

// AddNode appends a node with an externally supplied ID, typically while
// restoring an imported diagram. Returns ErrInvalidNodeID if the ID is empty
// or ErrDuplicateNodeID if the ID is already taken.
//
// AddNode does not advance the ID counter - call [Document.SyncCounter] once
// after restoring all nodes.
func (d *Document) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := d.byID[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	node := &n
	d.nodes = append(d.nodes, node)
	d.byID[node.ID] = node
	return nil
}

// AddEdge appends an edge with an externally supplied ID, typically while
// restoring an imported diagram. Both endpoints must already exist:
// ErrUnknownSourceNode or ErrUnknownTargetNode is returned otherwise.
func (d *Document) AddEdge(e Edge) error {
	if _, ok := d.byID[e.Source]; !ok {
		return ErrUnknownSourceNode
	}
	if _, ok := d.byID[e.Target]; !ok {
		return ErrUnknownTargetNode
	}
	if e.ID != "" {
		if _, exists := d.edgeByID[e.ID]; exists {
			return ErrDuplicateEdgeID
		}
	}
	edge := &e
	d.edges = append(d.edges, edge)
	if edge.ID != "" {
		d.edgeByID[edge.ID] = edge
	}
	return nil
}

// Connect creates a directed edge between two existing nodes and assigns it a
// unique ID. The edge is marked animated with a closed-arrowhead marker for
// the canvas widget. Handles may be empty.
//
// Returns ErrUnknownSourceNode or ErrUnknownTargetNode when an endpoint is
// missing; no edge is created in that case.
func (d *Document) Connect(source, target, sourceHandle, targetHandle string) (*Edge, error) {
	if _, ok := d.byID[source]; !ok {
		return nil, ErrUnknownSourceNode
	}
	if _, ok := d.byID[target]; !ok {
		return nil, ErrUnknownTargetNode
	}
	e := &Edge{
		ID:           uuid.NewString(),
		Source:       source,
		Target:       target,
		SourceHandle: sourceHandle,
		TargetHandle: targetHandle,
		Animated:     true,
		MarkerEnd:    MarkerArrowClosed,
	}
	d.edges = append(d.edges, e)
	d.edgeByID[e.ID] = e
	return e, nil
}

// RemoveNode deletes the node with the given ID and every edge whose source
// or target references it. Removing an absent node is a no-op, not an error.
// Node and edge removal become visible together.
func (d *Document) RemoveNode(id string) {
	if _, ok := d.byID[id]; !ok {
		return
	}
	delete(d.byID, id)
	d.nodes = slices.DeleteFunc(d.nodes, func(n *Node) bool { return n.ID == id })
	d.edges = slices.DeleteFunc(d.edges, func(e *Edge) bool {
		if e.Source != id && e.Target != id {
			return false
		}
		if e.ID != "" {
			delete(d.edgeByID, e.ID)
		}
		return true
	})
}

// RemoveEdge deletes the edge with the given ID. Removing an absent edge is a
// no-op.
func (d *Document) RemoveEdge(id string) {
	if _, ok := d.edgeByID[id]; !ok {
		return
	}
	delete(d.edgeByID, id)
	d.edges = slices.DeleteFunc(d.edges, func(e *Edge) bool { return e.ID == id })
}

// Relabel sets the label of a custom node and reports whether the label
// changed. Relabeling a catalog-derived node, or a node that does not exist,
// is silently ignored: catalog labels are fixed by policy, and the canvas
// widget treats the attempt as a non-event rather than an error.
func (d *Document) Relabel(id, label string) bool {
	n, ok := d.byID[id]
	if !ok || !n.Custom {
		return false
	}
	n.Label = label
	return true
}

// Redescribe sets the description of a node unconditionally and reports
// whether the node exists. Descriptions are user-editable on every node kind.
func (d *Document) Redescribe(id, description string) bool {
	n, ok := d.byID[id]
	if !ok {
		return false
	}
	n.Description = description
	return true
}

// MoveNode updates a node's canvas position and reports whether the node
// exists.
func (d *Document) MoveNode(id string, pos Position) bool {
	n, ok := d.byID[id]
	if !ok {
		return false
	}
	n.Position = pos
	return true
}

// Node returns the node with the given ID, or false when absent.
func (d *Document) Node(id string) (*Node, bool) {
	n, ok := d.byID[id]
	return n, ok
}

// Nodes returns the document's nodes in insertion order. The slice is a copy;
// the pointed-to nodes are live.
func (d *Document) Nodes() []*Node {
	return slices.Clone(d.nodes)
}

// Edges returns the document's edges in insertion order. The slice is a copy;
// the pointed-to edges are live.
func (d *Document) Edges() []*Edge {
	return slices.Clone(d.edges)
}

// NodeCount returns the number of nodes in the document.
func (d *Document) NodeCount() int { return len(d.nodes) }

// EdgeCount returns the number of edges in the document.
func (d *Document) EdgeCount() int { return len(d.edges) }

// Counter returns the integer the next generated node ID will use.
func (d *Document) Counter() int { return d.nextID }

// SyncCounter advances the ID counter past every generated-pattern ID present
// in the document: max numeric suffix + 1, or 0 when no node matches the
// node_<n> pattern. Call it after restoring nodes with external IDs so a
// subsequent [Document.CreateNode] never collides with a restored node.
func (d *Document) SyncCounter() {
	next := 0
	for _, n := range d.nodes {
		if v, ok := ParseGeneratedID(n.ID); ok && v+1 > next {
			next = v + 1
		}
	}
	d.nextID = next
}

// ParseGeneratedID extracts the integer suffix of a generated node ID.
// It returns false for externally authored IDs that do not match the
// node_<n> pattern.
func ParseGeneratedID(id string) (int, bool) {
	m := generatedIDPattern.FindStringSubmatch(id)
	if m == nil {
		return 0, false
	}
	v, err := strconv.Atoi(m[1])
	if err != nil {
		// Suffix too large to represent - treat as externally authored.
		return 0, false
	}
	return v, true
}
