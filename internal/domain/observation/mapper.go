package observation

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ayusovnc/fhir-demo/internal/domain/terminology"
	"github.com/ayusovnc/fhir-demo/internal/platform/fhir"
	"github.com/ayusovnc/fhir-demo/pkg/fhirmodels"
)

// InterpretationPolicy decides when a result's interpretation text is attached.
type InterpretationPolicy string

const (
	// InterpretationAlways attaches an entry even when the source field is blank.
	InterpretationAlways      InterpretationPolicy = "always"
	InterpretationWhenPresent InterpretationPolicy = "when-present"
)

func ParseInterpretationPolicy(s string) (InterpretationPolicy, error) {
	switch p := InterpretationPolicy(s); p {
	case InterpretationAlways, InterpretationWhenPresent:
		return p, nil
	case "":
		return InterpretationAlways, nil
	default:
		return "", fmt.Errorf("unknown interpretation policy %q", s)
	}
}

// Mapper converts lab result rows into Observations. It holds no per-request
// state and is safe for concurrent use.
type Mapper struct {
	dir    *terminology.Directory
	policy InterpretationPolicy
	logger zerolog.Logger
}

func NewMapper(dir *terminology.Directory, policy InterpretationPolicy, logger zerolog.Logger) *Mapper {
	if dir == nil {
		dir = terminology.NewDirectory(nil, nil, "")
	}
	if policy == "" {
		policy = InterpretationAlways
	}
	return &Mapper{dir: dir, policy: policy, logger: logger}
}

// MapSingle builds the standalone Observation for one result.
func (m *Mapper) MapSingle(rec *LabResult) *Observation {
	obs := m.base(rec)
	obs.ID = recordID(rec.ID)
	obs.Code = analyteCode(rec)
	obs.Value = m.value(rec)
	obs.ReferenceRange = referenceRange(rec)
	obs.Interpretation = m.interpretation(rec)
	return obs
}

// MapComponent builds the same code, value, range and interpretation as
// MapSingle, shaped as a panel component.
func (m *Mapper) MapComponent(rec *LabResult) Component {
	return Component{
		Code:           analyteCode(rec),
		Value:          m.value(rec),
		ReferenceRange: referenceRange(rec),
		Interpretation: m.interpretation(rec),
	}
}

// base fills the fields shared by single and composite Observations.
func (m *Mapper) base(rec *LabResult) *Observation {
	return &Observation{
		Subject:   fhir.Reference{Reference: fhir.FormatReference("Patient", recordID(rec.PersonID))},
		Status:    fhirmodels.ObsStatusFinal,
		Effective: rec.PerformedOn,
		Category:  []fhir.CodeableConcept{categoryEntry(strVal(rec.GroupIdentifier))},
	}
}

func (m *Mapper) value(rec *LabResult) Value {
	return CoerceValue(rec.ID, strVal(rec.Quantity), strVal(rec.Unit), m.logger)
}

func (m *Mapper) interpretation(rec *LabResult) []fhir.CodeableConcept {
	text := strVal(rec.Interpretation)
	if m.policy == InterpretationWhenPresent && text == "" {
		return nil
	}
	return []fhir.CodeableConcept{{Text: text}}
}

func analyteCode(rec *LabResult) fhir.CodeableConcept {
	name := strVal(rec.ComponentName)
	return fhir.CodeableConcept{
		Coding: []fhir.Coding{{System: fhirmodels.SystemLOINC, Code: rec.LOINCCode, Display: name}},
		Text:   name,
	}
}

// referenceRange returns one entry whose low and high are set independently,
// or nil when the record has neither bound.
func referenceRange(rec *LabResult) []fhir.ReferenceRange {
	unit := strVal(rec.Unit)
	var rr fhir.ReferenceRange
	if rec.NormalRangeMin != nil {
		if q, ok := boundQuantity(*rec.NormalRangeMin, unit); ok {
			rr.Low = q
		}
	}
	if rec.NormalRangeMax != nil {
		if q, ok := boundQuantity(*rec.NormalRangeMax, unit); ok {
			rr.High = q
		}
	}
	if rr.Low == nil && rr.High == nil {
		return nil
	}
	return []fhir.ReferenceRange{rr}
}
