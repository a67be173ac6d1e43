package i18n

import "testing"

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	if msg := T("invalid_type", map[string]string{"expected": "string"}); msg != "expected string" {
		t.Fatalf("unexpected english message %q", msg)
	}

	SetLanguage("ja")
	defer SetLanguage("en")
	if msg := T("required", nil); msg != "必須です" {
		t.Fatalf("expected japanese message, got %q", msg)
	}
}

func TestTranslator_FallbacksAndPlaceholders(t *testing.T) {
	if msg := T("no_such_code", nil); msg != "no_such_code" {
		t.Fatalf("unknown code should echo, got %q", msg)
	}
	if msg := T("too_small", map[string]string{"min": "3"}); msg != "must be greater than or equal to 3" {
		t.Fatalf("placeholder not substituted: %q", msg)
	}
	SetLanguage("fr")
	if msg := T("required", nil); msg != "required" {
		t.Fatalf("unknown language should select english, got %q", msg)
	}
}

type upper struct{}

func (upper) Message(code string, _ map[string]string) string { return "X-" + code }

func TestTranslator_Custom(t *testing.T) {
	SetTranslator(upper{})
	defer SetTranslator(nil)
	if msg := T("required", nil); msg != "X-required" {
		t.Fatalf("custom translator not used: %q", msg)
	}
}
