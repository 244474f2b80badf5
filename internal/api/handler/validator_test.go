package handler

import (
	"strings"
	"testing"
)

func TestValidator_NamesFieldsByJSONTag(t *testing.T) {
	v := NewValidator()

	type req struct {
		RecipientID string `json:"recipient_id" validate:"required"`
	}
	err := v.Validate(&req{})
	if err == nil || !strings.Contains(err.Error(), "recipient_id is required") {
		t.Fatalf("expected json-named message, got %v", err)
	}
}

func TestValidator_MessagesPerTag(t *testing.T) {
	v := NewValidator()

	type req struct {
		Email  string   `json:"email" validate:"required,email"`
		Tier   string   `json:"tier" validate:"required,oneof=free premium enterprise"`
		Events []string `json:"events" validate:"min=2"`
		Days   int      `json:"days" validate:"gte=0"`
	}
	err := v.Validate(&req{Email: "nope", Tier: "gold", Events: []string{"one"}, Days: -1})
	if err == nil {
		t.Fatalf("expected validation failure")
	}
	for _, want := range []string{
		"email must be a valid email",
		"tier must be one of: free premium enterprise",
		"events must contain at least 2 items",
		"days must be 0 or more",
	} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("missing %q in %q", want, err.Error())
		}
	}
}

func TestValidator_ValidStructPasses(t *testing.T) {
	v := NewValidator()

	type req struct {
		Email string `json:"email" validate:"required,email"`
	}
	if err := v.Validate(&req{Email: "a@example.com"}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}
