package utils

import (
	"testing"

	"github.com/google/uuid"
)

func TestDocumentFields(t *testing.T) {
	fields := DocumentFields([]byte(`{"fields":[{"column":"name","label":"Name"}],"meta":{}}`))
	if len(fields) != 1 {
		t.Fatalf("expected one field, got %v", fields)
	}
	if FieldString(fields[0], "column") != "name" {
		t.Fatalf("unexpected column: %v", fields[0])
	}

	if fields := DocumentFields(nil); fields != nil {
		t.Fatalf("expected nil for empty document, got %v", fields)
	}
	if fields := DocumentFields([]byte(`not json`)); fields != nil {
		t.Fatalf("expected nil for malformed document, got %v", fields)
	}
}

func TestFieldStringFallsBackAcrossKeys(t *testing.T) {
	field := map[string]interface{}{"label": "Name", "column": ""}
	if got := FieldString(field, "column", "label"); got != "Name" {
		t.Fatalf("expected fallback to label, got %q", got)
	}
	if got := FieldString(field, "missing"); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}

func TestParseIDsDeduplicates(t *testing.T) {
	first := uuid.New()
	second := uuid.New()

	ids, bad := ParseIDs([]string{first.String(), second.String(), first.String()})
	if bad != "" {
		t.Fatalf("unexpected invalid id: %s", bad)
	}
	if len(ids) != 2 {
		t.Fatalf("expected 2 deduplicated ids, got %d", len(ids))
	}
	if ids[0] != first || ids[1] != second {
		t.Fatalf("order not preserved: %v", ids)
	}

	if _, bad := ParseIDs([]string{"nope"}); bad != "nope" {
		t.Fatalf("expected invalid id reported, got %q", bad)
	}
}
