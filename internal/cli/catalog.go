package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/archpadhq/archpad/pkg/catalog"
)

// catalogCommand creates the catalog command for validating and summarizing
// catalog files.
func (c *CLI) catalogCommand() *cobra.Command {
	var descriptions string

	cmd := &cobra.Command{
		Use:   "catalog [catalog.json]",
		Short: "Validate and summarize a catalog file",
		Long: `Validate and summarize a catalog file.

Parses the catalog, reports per-platform tool counts, and - when a
descriptions file is given - lists tools that have no description. Useful
before deploying updated palette data.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCatalog(args[0], descriptions)
		},
	}

	cmd.Flags().StringVar(&descriptions, "descriptions", "", "descriptions file to check coverage against")

	return cmd
}

func (c *CLI) runCatalog(path, descriptions string) error {
	taxonomy, err := catalog.LoadTaxonomy(path)
	if err != nil {
		printError("Catalog invalid")
		return err
	}

	printSuccess("Catalog valid")
	printFile(path)
	printNewline()

	for _, p := range taxonomy.Platforms {
		tools := 0
		for _, cat := range p.Categories {
			for _, typ := range cat.Types {
				tools += len(typ.Tools)
			}
		}
		printKeyValue(string(p.Platform), fmt.Sprintf("%d categories, %d tools", len(p.Categories), tools))
	}
	printNewline()
	printInfo("%d tools total", taxonomy.ToolCount())

	if descriptions == "" {
		printNewline()
		printNextStep("Browse interactively", "archpad browse "+path)
		return nil
	}

	index, err := catalog.LoadIndex(descriptions)
	if err != nil {
		printError("Descriptions invalid")
		return err
	}

	var missing []string
	for _, p := range taxonomy.Platforms {
		for _, cat := range p.Categories {
			for _, typ := range cat.Types {
				for _, tool := range typ.Tools {
					if index.Describe(tool) == "" {
						missing = append(missing, tool)
					}
				}
			}
		}
	}

	printNewline()
	if len(missing) == 0 {
		printSuccess("Every tool has a description")
		return nil
	}
	printWarning("%d tool(s) without a description:", len(missing))
	for _, tool := range missing {
		fmt.Println("  " + StyleDim.Render(tool))
	}

	return nil
}
