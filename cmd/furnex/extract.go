package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/furnex/furnex"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	result, err := deps.Extractor.ExtractProducts(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", furnex.ErrorMessage(err))
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	if len(result.Methods) == 0 {
		fmt.Fprintf(deps.Stdout, "No data could be retrieved from %s\n", c.URL)
		return nil
	}

	fmt.Fprintf(deps.Stdout, "URL:      %s\n", result.URL)
	fmt.Fprintf(deps.Stdout, "Methods:  %s\n", strings.Join(result.Methods, ", "))
	fmt.Fprintf(deps.Stdout, "Products: %d\n\n", result.TotalCount)
	for _, p := range result.Products {
		fmt.Fprintf(deps.Stdout, "  %s\n", p)
	}

	return nil
}
