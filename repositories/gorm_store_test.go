package repositories

import (
	"testing"
	"time"
)

func TestToColumns_MapsPublicNames(t *testing.T) {
	now := time.Now()
	cols, err := toColumns(Fields{"thumbUrl": "http://x", "name": "Cabin"}, propertyColumns)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cols["thumb_url"] != "http://x" || cols["name"] != "Cabin" {
		t.Errorf("Unexpected columns %v", cols)
	}

	cols, err = toColumns(Fields{"end": now, "propertyName": "Cabin"}, reservationColumns)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cols["end_at"] != now || cols["property_name"] != "Cabin" {
		t.Errorf("Unexpected columns %v", cols)
	}
}

func TestToColumns_RejectsUnknownField(t *testing.T) {
	if _, err := toColumns(Fields{"password": "x"}, propertyColumns); err == nil {
		t.Fatal("Expected error for unknown field, got nil")
	}
}
