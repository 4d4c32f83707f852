package providers

import (
	"context"
	"testing"
)

func TestParseExtraction(t *testing.T) {
	values, err := parseExtraction(`{"clientName":"ABC Corp"}`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if values["clientName"] != "ABC Corp" {
		t.Fatalf("unexpected value %v", values["clientName"])
	}
}

func TestParseExtractionFenced(t *testing.T) {
	raw := "```json\n{\"total\": 99}\n```"
	values, err := parseExtraction(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if values["total"] != float64(99) {
		t.Fatalf("unexpected value %v", values["total"])
	}
}

func TestParseExtractionMalformed(t *testing.T) {
	if _, err := parseExtraction("sorry, I cannot do that"); err == nil {
		t.Fatalf("expected error for non-JSON response")
	}
	if _, err := parseExtraction(""); err == nil {
		t.Fatalf("expected error for empty response")
	}
}

func TestLocalProviderExtract(t *testing.T) {
	provider := NewLocalProvider()
	values, err := provider.Extract(context.Background(), "khách hàng là ABC Corp", []string{"clientName"})
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if values["clientName"] != "khách hàng là ABC Corp" {
		t.Fatalf("unexpected value %v", values["clientName"])
	}
	if _, err := provider.Extract(context.Background(), "text", nil); err == nil {
		t.Fatalf("expected error when no fields requested")
	}
}
