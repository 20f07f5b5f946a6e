package todo

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed seed.json
var seedJSON []byte

// Seed returns the bundled default collection, sorted id-descending.
func Seed() (Collection, error) {
	var c Collection
	if err := json.Unmarshal(seedJSON, &c); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}
	SortByIDDesc(c)
	return c, nil
}
