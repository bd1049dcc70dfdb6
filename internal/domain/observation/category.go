package observation

import (
	"strings"

	"github.com/ayusovnc/fhir-demo/internal/platform/fhir"
	"github.com/ayusovnc/fhir-demo/pkg/fhirmodels"
)

// Category is the observation category derived from a result's grouping label.
type Category int

const (
	CategoryNone Category = iota
	CategoryVitalSigns
	CategoryLaboratory
)

// Classify maps a free-text grouping label to a Category.
func Classify(label string) Category {
	if strings.TrimSpace(label) == "" {
		return CategoryNone
	}
	if strings.Contains(strings.ToLower(label), "vital signs") {
		return CategoryVitalSigns
	}
	return CategoryLaboratory
}

// Code is the observation-category code, empty for CategoryNone.
func (c Category) Code() string {
	switch c {
	case CategoryVitalSigns:
		return fhirmodels.ObsCategoryVitalSigns
	case CategoryLaboratory:
		return fhirmodels.ObsCategoryLaboratory
	default:
		return ""
	}
}

func (c Category) Coding() (fhir.Coding, bool) {
	switch c {
	case CategoryVitalSigns:
		return fhir.Coding{
			System:  fhirmodels.SystemObservationCategory,
			Code:    fhirmodels.ObsCategoryVitalSigns,
			Display: fhirmodels.ObsCategoryVitalSignsDisplay,
		}, true
	case CategoryLaboratory:
		return fhir.Coding{
			System:  fhirmodels.SystemObservationCategory,
			Code:    fhirmodels.ObsCategoryLaboratory,
			Display: fhirmodels.ObsCategoryLaboratoryDisplay,
		}, true
	default:
		return fhir.Coding{}, false
	}
}

// categoryEntry always keeps the raw label as text; the coding is added
// only when the label classifies to a real category.
func categoryEntry(label string) fhir.CodeableConcept {
	cc := fhir.CodeableConcept{Text: label}
	if coding, ok := Classify(label).Coding(); ok {
		cc.Coding = []fhir.Coding{coding}
	}
	return cc
}
