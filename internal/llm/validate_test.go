package llm

import (
	"errors"
	"testing"
)

func testSchema() *Schema {
	return &Schema{
		Name: "test-items",
		Definition: map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"name":  map[string]any{"type": "string", "minLength": 1},
					"age":   map[string]any{"type": "integer", "minimum": 0},
					"grade": map[string]any{"type": "string", "enum": []any{"A", "B", "C"}},
				},
				"required": []any{"name", "age"},
			},
		},
	}
}

func TestValidateJSON(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `[{"name":"Alice","age":10,"grade":"A"}]`, false},
		{"without optional", `[{"name":"Bob","age":8}]`, false},
		{"empty array", `[]`, false},
		{"missing required", `[{"name":"Charlie"}]`, true},
		{"wrong type", `[{"name":"Dave","age":"ten"}]`, true},
		{"invalid enum", `[{"name":"Eve","age":9,"grade":"D"}]`, true},
		{"empty string", `[{"name":"","age":9}]`, true},
		{"object root", `{"name":"Eve","age":9}`, true},
		{"malformed", `{not json}`, true},
		{"empty", ``, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateJSON(testSchema(), tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateJSON() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var invErr *ErrInvalidResponse
				if !errors.As(err, &invErr) {
					t.Fatalf("expected ErrInvalidResponse, got: %T", err)
				}
			}
		})
	}
}

func TestValidateJSON_NilSchema(t *testing.T) {
	if err := ValidateJSON(nil, `{"anything":"goes"}`); err != nil {
		t.Fatalf("expected no error with nil schema, got: %v", err)
	}
}
