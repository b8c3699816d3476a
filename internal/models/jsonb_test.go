package models

import (
	"testing"
)

func TestJSONB_ValueAndScan(t *testing.T) {
	original := JSONB{"name": "Jane Doe", "skills": []interface{}{"Python", "Go"}}

	value, err := original.Value()
	if err != nil {
		t.Fatalf("expected no error from Value, got %v", err)
	}

	var restored JSONB
	if err := restored.Scan(value.([]byte)); err != nil {
		t.Fatalf("expected no error from Scan, got %v", err)
	}

	if restored["name"] != "Jane Doe" {
		t.Errorf("expected name 'Jane Doe', got %v", restored["name"])
	}
}

func TestJSONB_ScanNil(t *testing.T) {
	var j JSONB
	if err := j.Scan(nil); err != nil {
		t.Fatalf("expected no error scanning nil, got %v", err)
	}
	if j != nil {
		t.Errorf("expected nil JSONB, got %v", j)
	}
}

func TestStringList_ValueAndScan(t *testing.T) {
	original := StringList{"Python", "JavaScript", "React"}

	value, err := original.Value()
	if err != nil {
		t.Fatalf("expected no error from Value, got %v", err)
	}

	var restored StringList
	if err := restored.Scan(value.([]byte)); err != nil {
		t.Fatalf("expected no error from Scan, got %v", err)
	}

	if len(restored) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(restored))
	}
	// Order matters: skills are an ordered sequence
	if restored[0] != "Python" || restored[2] != "React" {
		t.Errorf("expected order preserved, got %v", restored)
	}
}

func TestStringList_ScanInvalidType(t *testing.T) {
	var l StringList
	if err := l.Scan(42); err == nil {
		t.Fatal("expected error scanning non-bytes value, got nil")
	}
}
