package ingest

import (
	"encoding/json"
	"fmt"
)

// ParseDocument decodes an imported JSON document into the raw feedback
// records. Accepted shapes: a top-level array, or an object holding exactly
// one array-valued property (that array is taken as the feedback list).
// Anything else is an input-format error and fatal to the import.
func ParseDocument(data []byte) ([]any, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid JSON document: %w", err)
	}

	switch v := doc.(type) {
	case []any:
		return v, nil

	case map[string]any:
		var arrays []string
		for key, val := range v {
			if _, ok := val.([]any); ok {
				arrays = append(arrays, key)
			}
		}
		switch len(arrays) {
		case 0:
			return nil, fmt.Errorf("could not find a feedback array in the imported JSON")
		case 1:
			return v[arrays[0]].([]any), nil
		default:
			return nil, fmt.Errorf("ambiguous document: %d array-valued properties, expected exactly one", len(arrays))
		}

	default:
		return nil, fmt.Errorf("unsupported document shape: expected an array or an object containing one")
	}
}
