package common

import (
	"encoding/json"
	"fmt"
)

// ParseJSON extracts the first JSON object from an LLM reply and unmarshals
// it into T. Models routinely wrap JSON in markdown fences or prose, so we
// scan for the outermost '{' ... '}' instead of unmarshaling the raw reply.
func ParseJSON[T any](response string) (T, error) {
	var zero T

	start, end := -1, -1
	for i := 0; i < len(response); i++ {
		if response[i] == '{' {
			start = i
			break
		}
	}
	for i := len(response) - 1; i >= 0; i-- {
		if response[i] == '}' {
			end = i + 1
			break
		}
	}

	if start == -1 || end == -1 || start >= end {
		return zero, fmt.Errorf("no JSON object found in response")
	}

	var result T
	if err := json.Unmarshal([]byte(response[start:end]), &result); err != nil {
		return zero, fmt.Errorf("failed to unmarshal JSON: %w\nData: %s", err, response[start:end])
	}
	return result, nil
}

// ParseJSONList is ParseJSON for array-shaped replies ('[' ... ']').
func ParseJSONList[T any](response string) ([]T, error) {
	start, end := -1, -1
	for i := 0; i < len(response); i++ {
		if response[i] == '[' {
			start = i
			break
		}
	}
	for i := len(response) - 1; i >= 0; i-- {
		if response[i] == ']' {
			end = i + 1
			break
		}
	}

	if start == -1 || end == -1 || start >= end {
		return nil, fmt.Errorf("no JSON array found in response")
	}

	var result []T
	if err := json.Unmarshal([]byte(response[start:end]), &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON array: %w\nData: %s", err, response[start:end])
	}
	return result, nil
}
