package testutils

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Fixture loads one of the embedded canned responses and decodes it the same
// way the transport does, with numbers left as json.Number.
func Fixture(name string) (map[string]any, error) {
	b, err := yahoodata.ReadFile(fmt.Sprintf("yahoodata/%s", name))
	if err != nil {
		return nil, fmt.Errorf("error reading fixture %s: %w", name, err)
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("error parsing fixture %s: %w", name, err)
	}
	return doc, nil
}
