package parse

import (
	"encoding/json"
	"fmt"

	"github.com/kaptinlin/jsonrepair"
)

// JSONAs decodes content into T. If standard unmarshaling fails, the input is
// run through jsonrepair and decoded again: language models routinely emit
// almost-JSON (single quotes, unquoted keys, trailing commas, surrounding
// prose) and repairing is cheaper than a retry round-trip to the model.
//
// Example:
//
//	type Person struct {
//	    Name string `json:"name"`
//	    Age  int    `json:"age"`
//	}
//
//	// Valid JSON decodes directly.
//	person, err := parse.JSONAs[Person](`{"name":"John","age":30}`)
//
//	// Invalid JSON is repaired first.
//	person, err := parse.JSONAs[Person](`{name: 'John', age: 30}`)
func JSONAs[T any](content string) (T, error) {
	var result T

	err := json.Unmarshal([]byte(content), &result)
	if err == nil {
		return result, nil
	}

	repaired, repairErr := jsonrepair.JSONRepair(content)
	if repairErr != nil {
		return result, fmt.Errorf("failed to unmarshal content as %T and failed to repair JSON: unmarshal error: %w, repair error: %v", result, err, repairErr)
	}

	if err := json.Unmarshal([]byte(repaired), &result); err != nil {
		return result, fmt.Errorf("failed to unmarshal repaired JSON as %T: %w (original content: %s, repaired: %s)", result, err, content, repaired)
	}
	return result, nil
}
