package observation

import (
	"strconv"
	"time"

	"github.com/ayusovnc/fhir-demo/internal/platform/fhir"
)

// LabResult maps to the clinic_test_results table.
type LabResult struct {
	ID                    int        `db:"id" json:"id"`
	ClinicID              *int       `db:"clinic_id" json:"clinic_id,omitempty"`
	PersonID              int        `db:"person_id" json:"person_id"`
	ExternalID            *string    `db:"external_id" json:"external_id,omitempty"`
	LOINCCode             string     `db:"loinc_code" json:"loinc_code"`
	Quantity              *string    `db:"quantity" json:"quantity,omitempty"`
	Unit                  *string    `db:"unit" json:"unit,omitempty"`
	Interpretation        *string    `db:"interpretation_concept" json:"interpretation_concept,omitempty"`
	PerformedOn           *time.Time `db:"performed_on" json:"performed_on,omitempty"`
	GroupIdentifier       *string    `db:"group_identifier" json:"group_identifier,omitempty"`
	ComponentName         *string    `db:"component_name" json:"component_name,omitempty"`
	FacilityComponentName *string    `db:"facility_component_name" json:"facility_component_name,omitempty"`
	NormalRangeMin        *float64   `db:"normal_range_min" json:"normal_range_min,omitempty"`
	NormalRangeMax        *float64   `db:"normal_range_max" json:"normal_range_max,omitempty"`
	ReportedOn            *time.Time `db:"reported_on" json:"reported_on,omitempty"`
	LabName               *string    `db:"lab_name" json:"lab_name,omitempty"`
	LabAddress            *string    `db:"lab_address" json:"lab_address,omitempty"`
	Sequence              *int       `db:"sequence" json:"sequence,omitempty"`
}

// ValueKind tags which arm of Value is set.
type ValueKind int

const (
	ValueNone ValueKind = iota
	ValueQuantity
	ValueString
)

// Value is Observation.value[x]: a numeric quantity or, when the source
// text is not a decimal, the text itself.
type Value struct {
	Kind     ValueKind
	Quantity fhir.Quantity
	Text     string
}

func QuantityValue(q fhir.Quantity) Value { return Value{Kind: ValueQuantity, Quantity: q} }

func StringValue(s string) Value { return Value{Kind: ValueString, Text: s} }

func (v Value) set(m map[string]interface{}) {
	switch v.Kind {
	case ValueQuantity:
		m["valueQuantity"] = v.Quantity
	case ValueString:
		m["valueString"] = v.Text
	}
}

// Observation is the mapped FHIR Observation. Instances are built fresh per
// request and not modified after they are returned.
type Observation struct {
	ID             string
	Subject        fhir.Reference
	Status         string
	Effective      *time.Time
	Code           fhir.CodeableConcept
	Category       []fhir.CodeableConcept
	Value          Value
	Interpretation []fhir.CodeableConcept
	ReferenceRange []fhir.ReferenceRange
	Component      []Component
}

// Component is one analyte nested in a composite panel Observation.
type Component struct {
	Code           fhir.CodeableConcept
	Value          Value
	Interpretation []fhir.CodeableConcept
	ReferenceRange []fhir.ReferenceRange
}

func (o *Observation) ToFHIR() map[string]interface{} {
	result := map[string]interface{}{
		"resourceType": "Observation",
		"id":           o.ID,
		"status":       o.Status,
		"code":         o.Code,
		"subject":      o.Subject,
	}
	if len(o.Category) > 0 {
		result["category"] = o.Category
	}
	if o.Effective != nil {
		result["effectiveDateTime"] = o.Effective.Format(time.RFC3339)
	}
	o.Value.set(result)
	if len(o.Interpretation) > 0 {
		result["interpretation"] = o.Interpretation
	}
	if len(o.ReferenceRange) > 0 {
		result["referenceRange"] = o.ReferenceRange
	}
	if len(o.Component) > 0 {
		comps := make([]map[string]interface{}, len(o.Component))
		for i := range o.Component {
			comps[i] = o.Component[i].ToFHIR()
		}
		result["component"] = comps
	}
	return result
}

func (c *Component) ToFHIR() map[string]interface{} {
	result := map[string]interface{}{
		"code": c.Code,
	}
	c.Value.set(result)
	if len(c.Interpretation) > 0 {
		result["interpretation"] = c.Interpretation
	}
	if len(c.ReferenceRange) > 0 {
		result["referenceRange"] = c.ReferenceRange
	}
	return result
}

func recordID(id int) string { return strconv.Itoa(id) }

func strVal(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
