package patient

import (
	"strings"

	"github.com/ayusovnc/fhir-demo/internal/platform/fhir"
	"github.com/ayusovnc/fhir-demo/pkg/fhirmodels"
)

// GenderFromCode maps the clinic's single-letter gender code to
// AdministrativeGender. ok is false for codes with no mapping.
func GenderFromCode(code string) (string, bool) {
	switch code {
	case "F":
		return fhirmodels.GenderFemale, true
	case "M":
		return fhirmodels.GenderMale, true
	case "O", "T":
		return fhirmodels.GenderOther, true
	case "N":
		return fhirmodels.GenderUnknown, true
	default:
		return "", false
	}
}

type raceCategory struct {
	code    string
	display string
	// detailed codes are not OMB categories
	detailed bool
}

// CDC Race and Ethnicity Code Set v1.0.
var cdcRace = map[string]raceCategory{
	"r1": {"1002-5", "American Indian or Alaska Native", false},
	"r2": {"2028-9", "Asian", false},
	"r3": {"2054-5", "Black or African American", false},
	"r4": {"2076-8", "Native Hawaiian or Other Pacific Islander", false},
	"r5": {"2106-3", "White", false},
	"r9": {"2131-1", "Other Race", true},
}

// RaceFromCDCCode maps a clinic race code (r1..r9, case-insensitive) to a
// CDC race coding.
func RaceFromCDCCode(code string) (fhir.Coding, bool) {
	rc, ok := cdcRace[strings.ToLower(strings.TrimSpace(code))]
	if !ok {
		return fhir.Coding{}, false
	}
	return fhir.Coding{System: fhirmodels.SystemCDCRace, Code: rc.code, Display: rc.display}, true
}

// raceExtension builds a US Core race extension from comma-separated race
// codes. Unknown codes are returned so the caller can report them.
func raceExtension(codes string) (*fhir.Extension, []string) {
	var (
		inner   []fhir.Extension
		unknown []string
		text    []string
	)
	for _, raw := range strings.Split(codes, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		coding, ok := RaceFromCDCCode(raw)
		if !ok {
			unknown = append(unknown, raw)
			continue
		}
		url := "ombCategory"
		if cdcRace[strings.ToLower(raw)].detailed {
			url = "detailed"
		}
		c := coding
		inner = append(inner, fhir.Extension{URL: url, ValueCoding: &c})
		text = append(text, coding.Display)
	}
	if len(inner) == 0 {
		return nil, unknown
	}
	inner = append(inner, fhir.Extension{URL: "text", ValueString: strings.Join(text, ", ")})
	return &fhir.Extension{URL: fhirmodels.ExtensionUSCoreRace, Extension: inner}, unknown
}
