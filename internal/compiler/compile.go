package compiler

import (
	"fmt"

	"github.com/inventhouse/statemachine/pkg/registry"
)

// Compiled is the full output of compiling rule sources: the bound rules in
// match-precedence order and the final alias dictionary.
type Compiled struct {
	Bound []Bound
	Dict  Dict
}

// CompileSource runs the whole front end: block extraction over the file
// texts, three-pass alias resolution across the two provenances, and rule
// building against the registry. Authoritative add-rules precede file
// add-rules in the result, so they win first-match precedence.
func CompileSource(named, add, files []string, reg *registry.Registry) (*Compiled, error) {
	var bulkNamed, bulkAdd []string
	for i, text := range files {
		blocks, err := ExtractBlocks(text)
		if err != nil {
			return nil, fmt.Errorf("extracting rule blocks from file %d: %w", i+1, err)
		}
		bulkNamed = append(bulkNamed, blocks.Named...)
		bulkAdd = append(bulkAdd, blocks.Add...)
	}

	dict, err := Resolve(named, bulkNamed)
	if err != nil {
		return nil, fmt.Errorf("resolving named rules: %w", err)
	}

	addLines := make([]string, 0, len(add)+len(bulkAdd))
	addLines = append(addLines, add...)
	addLines = append(addLines, bulkAdd...)

	bound, err := BuildRules(addLines, dict, reg)
	if err != nil {
		return nil, err
	}

	return &Compiled{Bound: bound, Dict: dict}, nil
}
