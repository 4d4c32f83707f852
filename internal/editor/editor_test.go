package editor

import (
	"reflect"
	"testing"

	"github.com/lavishq/docpilot/internal/doctmpl"
)

func quoteTemplate() doctmpl.Template {
	return doctmpl.Template{
		ID:   "quote",
		Name: "Quote",
		InitialData: doctmpl.Payload{
			"clientName": "ACME",
			"total":      float64(100),
			"lineItems": []interface{}{
				map[string]interface{}{"sku": "A-1", "price": float64(40)},
			},
		},
	}
}

func TestFinalizeReportsEdits(t *testing.T) {
	session := NewSession(quoteTemplate())
	if err := session.SetValue("clientName", "Globex"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := session.SetValue("lineItems.0.price", float64(55)); err != nil {
		t.Fatalf("set: %v", err)
	}
	data, changed := session.Finalize()
	if data["clientName"] != "Globex" {
		t.Fatalf("edited value not applied: %v", data["clientName"])
	}
	want := []string{"clientName", "lineItems.0.price"}
	if !reflect.DeepEqual(changed, want) {
		t.Fatalf("changed = %v, want %v", changed, want)
	}
}

func TestFinalizeWithoutEdits(t *testing.T) {
	session := NewSession(quoteTemplate())
	_, changed := session.Finalize()
	if len(changed) != 0 {
		t.Fatalf("no edits should yield no changed paths, got %v", changed)
	}
}

func TestTemplateDefaultsNotMutated(t *testing.T) {
	tmpl := quoteTemplate()
	session := NewSession(tmpl)
	if err := session.SetValue("clientName", "Globex"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if tmpl.InitialData["clientName"] != "ACME" {
		t.Fatalf("session edit leaked into template defaults")
	}
}

func TestSelectNonexistentPath(t *testing.T) {
	session := NewSession(quoteTemplate())
	session.SelectField("no.such.path")
	if session.SelectedValue() != "" {
		t.Fatalf("nonexistent selection should edit as empty, got %v", session.SelectedValue())
	}
}

func TestSetValueMissingContainer(t *testing.T) {
	session := NewSession(quoteTemplate())
	if err := session.SetValue("shipping.address", "x"); err == nil {
		t.Fatalf("expected error for missing intermediate container")
	}
}
