package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
)

// Platform is one of the recognized tool platforms. The set is fixed; catalog
// records carrying other platform keys are ignored.
type Platform string

const (
	PlatformAWS        Platform = "AWS"
	PlatformAzure      Platform = "Azure"
	PlatformGCP        Platform = "GCP"
	PlatformOpenSource Platform = "Open Source"
	PlatformVendor     Platform = "Vendor"
)

// Platforms lists the recognized platforms in presentation order. Taxonomy
// output follows this order regardless of record order in the source file.
var Platforms = []Platform{
	PlatformAWS,
	PlatformAzure,
	PlatformGCP,
	PlatformOpenSource,
	PlatformVendor,
}

// Record is one raw catalog entry: a category/type pair with per-platform
// tool name lists. Absent platforms simply contribute nothing.
type Record struct {
	Category   string   `json:"category"`
	Type       string   `json:"type"`
	AWS        []string `json:"AWS,omitempty"`
	Azure      []string `json:"Azure,omitempty"`
	GCP        []string `json:"GCP,omitempty"`
	OpenSource []string `json:"Open Source,omitempty"`
	Vendor     []string `json:"Vendor,omitempty"`
}

// tools returns the record's tool names for a platform.
func (r Record) tools(p Platform) []string {
	switch p {
	case PlatformAWS:
		return r.AWS
	case PlatformAzure:
		return r.Azure
	case PlatformGCP:
		return r.GCP
	case PlatformOpenSource:
		return r.OpenSource
	case PlatformVendor:
		return r.Vendor
	}
	return nil
}

// Taxonomy is the three-level palette grouping: platform, then category, then
// type, each level in first-seen order (platforms in enumeration order).
// A taxonomy is built once per catalog load and treated as immutable.
type Taxonomy struct {
	Platforms []PlatformGroup `json:"platforms"`
}

// PlatformGroup holds the categories of one platform.
type PlatformGroup struct {
	Platform   Platform        `json:"platform"`
	Categories []CategoryGroup `json:"categories"`
}

// CategoryGroup holds the types of one category.
type CategoryGroup struct {
	Name  string      `json:"name"`
	Types []TypeGroup `json:"types"`
}

// TypeGroup holds the deduplicated tool names of one type, in first-seen
// order. Dedup is case-sensitive exact match.
type TypeGroup struct {
	Name  string   `json:"name"`
	Tools []string `json:"tools"`
}

// ToolCount returns the total number of tool entries in the taxonomy.
func (t Taxonomy) ToolCount() int {
	total := 0
	for _, p := range t.Platforms {
		for _, c := range p.Categories {
			for _, ty := range c.Types {
				total += len(ty.Tools)
			}
		}
	}
	return total
}

// BuildTaxonomy groups raw catalog records into the palette taxonomy.
// Only platforms that contribute at least one tool appear in the output.
func BuildTaxonomy(records []Record) Taxonomy {
	var tax Taxonomy
	platIdx := make(map[Platform]int)

	for _, p := range Platforms {
		catIdx := make(map[string]int)
		typeIdx := make(map[string]map[string]int)

		for _, r := range records {
			tools := r.tools(p)
			if len(tools) == 0 {
				continue
			}

			pi, ok := platIdx[p]
			if !ok {
				pi = len(tax.Platforms)
				platIdx[p] = pi
				tax.Platforms = append(tax.Platforms, PlatformGroup{Platform: p})
			}
			plat := &tax.Platforms[pi]

			ci, ok := catIdx[r.Category]
			if !ok {
				ci = len(plat.Categories)
				catIdx[r.Category] = ci
				typeIdx[r.Category] = make(map[string]int)
				plat.Categories = append(plat.Categories, CategoryGroup{Name: r.Category})
			}
			cat := &plat.Categories[ci]

			ti, ok := typeIdx[r.Category][r.Type]
			if !ok {
				ti = len(cat.Types)
				typeIdx[r.Category][r.Type] = ti
				cat.Types = append(cat.Types, TypeGroup{Name: r.Type})
			}
			typ := &cat.Types[ti]

			for _, tool := range tools {
				if !slices.Contains(typ.Tools, tool) {
					typ.Tools = append(typ.Tools, tool)
				}
			}
		}
	}

	return tax
}

// ReadRecords decodes a JSON array of catalog records from r.
func ReadRecords(r io.Reader) ([]Record, error) {
	var records []Record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return records, nil
}

// LoadTaxonomy reads a catalog file and builds its taxonomy. A missing or
// malformed file is an error; callers degrade to an empty taxonomy and log,
// the palette tolerates emptiness.
func LoadTaxonomy(path string) (Taxonomy, error) {
	f, err := os.Open(path)
	if err != nil {
		return Taxonomy{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	records, err := ReadRecords(f)
	if err != nil {
		return Taxonomy{}, fmt.Errorf("%s: %w", path, err)
	}
	return BuildTaxonomy(records), nil
}
