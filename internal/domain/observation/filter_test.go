package observation

import (
	"testing"

	"github.com/ayusovnc/fhir-demo/internal/platform/fhir"
)

func TestFilterByCategory(t *testing.T) {
	lab := &Observation{ID: "lab", Category: []fhir.CodeableConcept{categoryEntry("Chemistry")}}
	vitals := &Observation{ID: "vitals", Category: []fhir.CodeableConcept{categoryEntry("Vital Signs")}}
	textOnly := &Observation{ID: "text", Category: []fhir.CodeableConcept{{Text: "laboratory"}}}
	none := &Observation{ID: "none"}
	all := []*Observation{lab, vitals, textOnly, none}

	tests := []struct {
		codes []string
		want  []string
	}{
		{[]string{"laboratory"}, []string{"lab"}},
		{[]string{"vital-signs"}, []string{"vitals"}},
		{[]string{"laboratory", "vital-signs"}, []string{"lab", "vitals"}},
		{[]string{"exam", "vital-signs"}, []string{"vitals"}},
		{[]string{"Laboratory"}, nil},
		{[]string{"exam"}, nil},
		{nil, []string{"lab", "vitals", "text", "none"}},
	}
	for _, tt := range tests {
		got := FilterByCategory(all, tt.codes...)
		var ids []string
		for _, o := range got {
			ids = append(ids, o.ID)
		}
		if len(ids) != len(tt.want) {
			t.Errorf("FilterByCategory(%q) = %v, want %v", tt.codes, ids, tt.want)
			continue
		}
		for i := range ids {
			if ids[i] != tt.want[i] {
				t.Errorf("FilterByCategory(%q) = %v, want %v", tt.codes, ids, tt.want)
				break
			}
		}
	}
}
