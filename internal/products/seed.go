package products

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// SeedFromFile inserts the products listed in a JSON file into an empty
// store. A store that already holds products is left untouched so restarts
// do not duplicate the seed data. Returns the number of inserted products.
func SeedFromFile(ctx context.Context, store *Store, path string) (int, error) {
	count, err := store.Count(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read seed file: %w", err)
	}
	var docs []Document
	if err := json.Unmarshal(raw, &docs); err != nil {
		return 0, fmt.Errorf("decode seed file: %w", err)
	}

	inserted := 0
	for _, doc := range docs {
		if _, err := store.Insert(ctx, doc); err != nil {
			return inserted, err
		}
		inserted++
	}
	return inserted, nil
}
