package pipeline

import (
	"github.com/shirakawa-dev/denpyo/constants"
)

// BuildDraftJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map. Drafts are validated against it before persistence; the store
// accepts partial documents (ingestion never rejects) but not malformed ones.
func BuildDraftJSONSchema() map[string]any {
	party := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"name":    map[string]any{"type": "string", "minLength": 1},
			"address": map[string]any{"type": "string"},
			"phone":   map[string]any{"type": "string"},
		},
		"required": []string{"name"},
	}
	item := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"itemName":  map[string]any{"type": "string", "minLength": 1},
			"quantity":  map[string]any{"type": "integer", "minimum": 0},
			"unitPrice": map[string]any{"type": "integer", "minimum": 0},
			"amount":    map[string]any{"type": "integer", "minimum": 0},
			"taxRate":   map[string]any{"type": "number", "minimum": 0, "maximum": 1},
			"taxAmount": map[string]any{"type": "integer", "minimum": 0},
		},
		"required": []string{"itemName", "quantity", "unitPrice", "amount"},
	}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": true,
		"properties": map[string]any{
			"docType":     map[string]any{"type": "string", "enum": constants.DocTypeStrings()},
			"subject":     map[string]any{"type": "string"},
			"vendor":      party,
			"customer":    party,
			"items":       map[string]any{"type": "array", "items": item},
			"subtotal":    map[string]any{"type": "integer", "minimum": 0},
			"taxRate":     map[string]any{"type": "number", "minimum": 0, "maximum": 1},
			"taxAmount":   map[string]any{"type": "integer", "minimum": 0},
			"totalAmount": map[string]any{"type": "integer", "minimum": 0},
			"notes":       map[string]any{"type": "string"},
		},
		"required": []string{"docType", "vendor", "customer", "items", "subtotal", "taxAmount", "totalAmount"},
	}
}
