package validate

import (
	"strings"
	"testing"
)

func TestUnknownMethodPassesThrough(t *testing.T) {
	in := map[string]any{"anything": "goes"}
	out, err := Method("someFutureMethod", in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out["anything"] != "goes" {
		t.Error("params altered on passthrough")
	}
}

func TestRequiredMissing(t *testing.T) {
	_, err := Method("sendMessage", map[string]any{"chat_id": float64(1)})
	if err == nil {
		t.Fatal("expected error for missing text")
	}
	if !strings.Contains(err.Error(), "Validation failed") {
		t.Errorf("error = %q, want Validation failed prefix", err.Error())
	}
	if !strings.Contains(err.Error(), "text") {
		t.Errorf("error should name the missing field: %q", err.Error())
	}
}

func TestUnknownExtraFieldsPreserved(t *testing.T) {
	in := map[string]any{
		"chat_id":            float64(1),
		"text":               "hi",
		"future_flag_442":    true,
		"another_new_option": map[string]any{"x": 1},
	}
	out, err := Method("sendMessage", in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out["future_flag_442"] != true {
		t.Error("unknown field dropped")
	}
}

func TestTypeMismatch(t *testing.T) {
	_, err := Method("sendMessage", map[string]any{
		"chat_id": float64(1),
		"text":    42,
	})
	if err == nil {
		t.Fatal("expected type error for numeric text")
	}
	if !strings.Contains(err.Error(), "text: expected string") {
		t.Errorf("error = %q", err.Error())
	}
}

func TestEnumViolation(t *testing.T) {
	_, err := Method("sendMessage", map[string]any{
		"chat_id":    float64(1),
		"text":       "hi",
		"parse_mode": "BBCode",
	})
	if err == nil {
		t.Fatal("expected enum error")
	}
	if !strings.Contains(err.Error(), "parse_mode") {
		t.Errorf("error = %q", err.Error())
	}
}

func TestNumericRange(t *testing.T) {
	_, err := Method("sendLocation", map[string]any{
		"chat_id":   float64(1),
		"latitude":  float64(123.4),
		"longitude": float64(10),
	})
	if err == nil {
		t.Fatal("expected range error for latitude 123.4")
	}
	if !strings.Contains(err.Error(), "latitude") {
		t.Errorf("error = %q", err.Error())
	}
}

func TestIntegerRejectsFraction(t *testing.T) {
	_, err := Method("getUpdates", map[string]any{"limit": float64(2.5)})
	if err == nil {
		t.Fatal("expected error for fractional limit")
	}
}

func TestArrayItemPath(t *testing.T) {
	_, err := Method("deleteMessages", map[string]any{
		"chat_id":     float64(1),
		"message_ids": []any{float64(1), "two", float64(3)},
	})
	if err == nil {
		t.Fatal("expected item type error")
	}
	if !strings.Contains(err.Error(), "message_ids.1") {
		t.Errorf("error should carry the dotted index path: %q", err.Error())
	}
}

func TestMultipleProblemsJoined(t *testing.T) {
	_, err := Method("sendMessage", map[string]any{
		"parse_mode": 7,
	})
	if err == nil {
		t.Fatal("expected errors")
	}
	if !strings.Contains(err.Error(), "; ") {
		t.Errorf("problems should be semicolon-joined: %q", err.Error())
	}
}

func TestEditMessageTextEitherAddressing(t *testing.T) {
	// chat_id + message_id is one valid addressing mode.
	if _, err := Method("editMessageText", map[string]any{
		"chat_id": float64(1), "message_id": float64(2), "text": "x",
	}); err != nil {
		t.Errorf("chat addressing rejected: %v", err)
	}

	// inline_message_id alone is the other.
	if _, err := Method("editMessageText", map[string]any{
		"inline_message_id": "abc", "text": "x",
	}); err != nil {
		t.Errorf("inline addressing rejected: %v", err)
	}

	// Neither mode present must fail.
	_, err := Method("editMessageText", map[string]any{"text": "x"})
	if err == nil {
		t.Fatal("expected cross-field error")
	}
	if !strings.Contains(err.Error(), "inline_message_id") {
		t.Errorf("error should mention the alternatives: %q", err.Error())
	}

	// chat_id without message_id is an incomplete group.
	if _, err := Method("editMessageText", map[string]any{
		"chat_id": float64(1), "text": "x",
	}); err == nil {
		t.Fatal("expected error for incomplete chat_id+message_id group")
	}
}

func TestNilOptionalSkipped(t *testing.T) {
	if _, err := Method("sendMessage", map[string]any{
		"chat_id":    float64(1),
		"text":       "hi",
		"parse_mode": nil,
	}); err != nil {
		t.Errorf("nil optional should be skipped: %v", err)
	}
}
