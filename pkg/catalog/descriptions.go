package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// DescriptionRecord pairs a tool name with its default description.
type DescriptionRecord struct {
	Tool        string `json:"tool"`
	Description string `json:"description"`
}

// Index maps tool names to default descriptions, used to pre-fill the
// description of newly created nodes. The zero value is usable and empty.
type Index struct {
	byTool map[string]string
}

// BuildIndex builds a lookup from description records. On duplicate tool
// names the last record wins.
func BuildIndex(records []DescriptionRecord) Index {
	byTool := make(map[string]string, len(records))
	for _, r := range records {
		byTool[r.Tool] = r.Description
	}
	return Index{byTool: byTool}
}

// Describe returns the default description for a tool, or the empty string
// when the tool is unknown. The method value satisfies diagram.DescribeFunc.
func (i Index) Describe(tool string) string {
	return i.byTool[tool]
}

// Len returns the number of tools with a description.
func (i Index) Len() int { return len(i.byTool) }

// All returns a copy of the full tool-to-description mapping.
func (i Index) All() map[string]string {
	out := make(map[string]string, len(i.byTool))
	for tool, desc := range i.byTool {
		out[tool] = desc
	}
	return out
}

// ReadDescriptions decodes a JSON array of description records from r.
func ReadDescriptions(r io.Reader) ([]DescriptionRecord, error) {
	var records []DescriptionRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode descriptions: %w", err)
	}
	return records, nil
}

// LoadIndex reads a description file and builds its lookup. Same degraded
// policy as [LoadTaxonomy]: callers log the error and fall back to an empty
// index.
func LoadIndex(path string) (Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return Index{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	records, err := ReadDescriptions(f)
	if err != nil {
		return Index{}, fmt.Errorf("%s: %w", path, err)
	}
	return BuildIndex(records), nil
}
