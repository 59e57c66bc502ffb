package diagram

// ChangeKind identifies the kind of incremental delta emitted by the canvas
// widget during interaction.
type ChangeKind int

const (
	// ChangePosition moves a node to a new canvas position.
	ChangePosition ChangeKind = iota
	// ChangeRemoveNode deletes a node and cascades to its incident edges.
	ChangeRemoveNode
	// ChangeRemoveEdge deletes a single edge.
	ChangeRemoveEdge
)

// Change is one incremental delta from the canvas widget: a node position
// update, a node removal, or an edge removal.
type Change struct {
	Kind     ChangeKind
	ID       string
	Position Position // used by ChangePosition only
}

// ApplyChanges applies canvas deltas in the order received. Deltas naming
// absent nodes or edges are skipped, which keeps mixed batches safe: when a
// node removal and the removals of its incident edges arrive in the same
// batch, the cascade from the node removal leaves the later edge removals as
// no-ops regardless of ordering.
func (d *Document) ApplyChanges(changes []Change) {
	for _, c := range changes {
		switch c.Kind {
		case ChangePosition:
			d.MoveNode(c.ID, c.Position)
		case ChangeRemoveNode:
			d.RemoveNode(c.ID)
		case ChangeRemoveEdge:
			d.RemoveEdge(c.ID)
		}
	}
}
