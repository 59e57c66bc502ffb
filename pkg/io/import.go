package io

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/archpadhq/archpad/pkg/diagram"
)

var (
	// ErrNotObject is returned when the top-level JSON value of an
	// envelope is null, an array, or any other non-object.
	ErrNotObject = errors.New("top-level value is not an object")

	// ErrTrailingData is returned when bytes follow the envelope object.
	ErrTrailingData = errors.New("trailing data after diagram object")
)

// ReadJSON decodes a JSON diagram envelope from r into a new document.
//
// The input must be a JSON object; "nodes" and "edges" may each be absent and
// default to empty. Each node needs an "id"; "data.isCustom" defaults to
// false when omitted. Each edge must reference node IDs present in the same
// envelope.
//
// ReadJSON returns an error if:
//   - The JSON is malformed, or anything follows the envelope object
//   - The top-level value is null or not an object
//   - A node has an empty or duplicate ID
//   - An edge references a node missing from the envelope
//
// Errors are wrapped with the node or edge that caused the problem. On error
// no document is returned, so a caller's current document stays untouched.
//
// The returned document has its ID counter advanced past every generated
// node_<n> identifier, so nodes created after an import never collide with
// imported ones. The describe lookup is bound to the new document for future
// node creation; it never overwrites imported descriptions.
func ReadJSON(r io.Reader, describe diagram.DescribeFunc) (*diagram.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	d, err := UnmarshalDiagram(data)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return ToDocument(d, describe)
}

// ImportJSON reads a JSON diagram file at path and returns the restored
// document. It opens the file, decodes it with [ReadJSON], and closes the
// file, wrapping any failure with the path for context.
func ImportJSON(path string, describe diagram.DescribeFunc) (*diagram.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f, describe)
}

// UnmarshalDiagram deserializes JSON bytes to a [Diagram] envelope without
// building a document. Useful when only structural validation or storage is
// needed.
//
// The input must be exactly one JSON object: a null or non-object top level
// returns [ErrNotObject], and bytes after the object return [ErrTrailingData]
// rather than being silently accepted.
func UnmarshalDiagram(data []byte) (Diagram, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return Diagram{}, err
	}
	if len(raw) == 0 || raw[0] != '{' {
		return Diagram{}, ErrNotObject
	}
	if dec.More() {
		return Diagram{}, ErrTrailingData
	}

	var d Diagram
	if err := json.Unmarshal(raw, &d); err != nil {
		return Diagram{}, err
	}
	return d, nil
}

// ToDocument builds a live document from a serialization envelope.
//
// Edges whose endpoints are missing from the envelope are rejected rather
// than restored dangling: the document invariant that every edge names
// present nodes holds from the moment of import. The ID counter is
// synchronized before ToDocument returns.
func ToDocument(d Diagram, describe diagram.DescribeFunc) (*diagram.Document, error) {
	doc := diagram.New(describe)

	for _, n := range d.Nodes {
		err := doc.AddNode(diagram.Node{
			ID:          n.ID,
			Label:       n.Data.Label,
			Description: n.Data.Description,
			Custom:      n.Data.IsCustom,
			Position:    n.Position,
		})
		if err != nil {
			return nil, fmt.Errorf("node %s: %w", n.ID, err)
		}
	}
	for _, e := range d.Edges {
		err := doc.AddEdge(diagram.Edge{
			ID:           e.ID,
			Source:       e.Source,
			Target:       e.Target,
			SourceHandle: e.SourceHandle,
			TargetHandle: e.TargetHandle,
			Animated:     e.Animated,
			MarkerEnd:    e.MarkerEnd,
		})
		if err != nil {
			return nil, fmt.Errorf("edge %s->%s: %w", e.Source, e.Target, err)
		}
	}

	doc.SyncCounter()
	return doc, nil
}
