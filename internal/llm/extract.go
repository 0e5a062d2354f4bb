package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Models wrap JSON in markdown fences often enough that every structured
// response goes through this cleanup before decoding.
func CleanJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	return strings.TrimSpace(raw)
}

// DecodeObject strips fences and decodes raw into v.
func DecodeObject(raw string, v any) error {
	cleaned := CleanJSON(raw)
	if err := json.Unmarshal([]byte(cleaned), v); err != nil {
		return fmt.Errorf("decode structured output: %w", err)
	}
	return nil
}

// DecodeItems strips fences and decodes raw into v, which must be a pointer
// to a slice. Three response shapes are accepted: a bare array, an object
// with key "news", or an object with key "items".
func DecodeItems(raw string, v any) error {
	cleaned := CleanJSON(raw)

	if strings.HasPrefix(cleaned, "[") {
		if err := json.Unmarshal([]byte(cleaned), v); err != nil {
			return fmt.Errorf("decode item array: %w", err)
		}
		return nil
	}

	var wrapper struct {
		News  json.RawMessage `json:"news"`
		Items json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal([]byte(cleaned), &wrapper); err != nil {
		return fmt.Errorf("decode item wrapper: %w", err)
	}

	inner := wrapper.News
	if inner == nil {
		inner = wrapper.Items
	}
	if inner == nil {
		return fmt.Errorf("no recognized item key in response")
	}

	if err := json.Unmarshal(inner, v); err != nil {
		return fmt.Errorf("decode wrapped items: %w", err)
	}
	return nil
}
