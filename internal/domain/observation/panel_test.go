package observation

import (
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/ayusovnc/fhir-demo/internal/domain/terminology"
	"github.com/ayusovnc/fhir-demo/pkg/fhirmodels"
)

func componentCodes(obs *Observation) []string {
	var out []string
	for _, c := range obs.Component {
		out = append(out, c.Code.Coding[0].Code)
	}
	return out
}

func TestAggregate_GroupsByDate(t *testing.T) {
	m := testMapper(t)
	records := []*LabResult{
		labResult(1, "A", day1),
		labResult(2, "B", day1),
		labResult(3, "C", day2),
	}

	got := m.Aggregate(records, "P", terminology.UniversePanel)

	if len(got) != 2 {
		t.Fatalf("expected 2 composites, got %d", len(got))
	}
	if codes := componentCodes(got[0]); len(codes) != 2 || codes[0] != "A" || codes[1] != "B" {
		t.Errorf("first composite components = %v, want [A B]", codes)
	}
	if codes := componentCodes(got[1]); len(codes) != 1 || codes[0] != "C" {
		t.Errorf("second composite components = %v, want [C]", codes)
	}

	first := got[0]
	if first.ID != "P-1" {
		t.Errorf("expected composite id P-1, got %s", first.ID)
	}
	coding := first.Code.Coding[0]
	if coding.System != fhirmodels.SystemLOINC || coding.Code != "P" || coding.Display != "Panel P" {
		t.Errorf("unexpected panel coding %+v", coding)
	}
	if !first.Effective.Equal(day1) || first.Subject.Reference != "Patient/42" {
		t.Errorf("composite must take subject and effective from its first record")
	}
	if first.Value.Kind != ValueNone {
		t.Errorf("composite must not carry its own value, got %+v", first.Value)
	}
	if len(first.Category) != 1 || first.Category[0].Text != "Chemistry" {
		t.Errorf("unexpected composite category %+v", first.Category)
	}
}

func TestAggregate_NoComponentDroppedOrDuplicated(t *testing.T) {
	m := testMapper(t)
	records := []*LabResult{
		labResult(1, "A", day2),
		labResult(2, "Z", day1), // not a member
		labResult(3, "B", day1),
		labResult(4, "C", day2),
		labResult(5, "A", day1),
	}

	got := m.Aggregate(records, "P", terminology.UniversePanel)

	total := 0
	for _, obs := range got {
		if len(obs.Component) == 0 {
			t.Error("composite with zero components")
		}
		total += len(obs.Component)
	}
	if total != 4 {
		t.Errorf("expected 4 components across composites, got %d", total)
	}
	// first appearance order: day2 bucket was seen first
	if len(got) != 2 || !got[0].Effective.Equal(day2) || !got[1].Effective.Equal(day1) {
		t.Errorf("buckets must follow first appearance order")
	}
	if codes := componentCodes(got[1]); len(codes) != 2 || codes[0] != "B" || codes[1] != "A" {
		t.Errorf("bucket must keep record order, got %v", codes)
	}
}

func TestAggregate_SameInstantDifferentZone(t *testing.T) {
	m := testMapper(t)
	est := time.FixedZone("EST", -5*3600)
	records := []*LabResult{
		labResult(1, "A", day1),
		labResult(2, "B", day1.In(est)),
		labResult(3, "C", day1.Add(time.Second)),
	}

	got := m.Aggregate(records, "P", terminology.UniversePanel)
	if len(got) != 2 || len(got[0].Component) != 2 {
		t.Errorf("equal instants must share a bucket and a one second gap must not, got %d composites", len(got))
	}
}

func TestAggregate_MissingTimestamps(t *testing.T) {
	m := testMapper(t)
	a, b := labResult(1, "A", day1), labResult(2, "B", day1)
	a.PerformedOn, b.PerformedOn = nil, nil

	got := m.Aggregate([]*LabResult{a, b}, "P", terminology.UniversePanel)
	if len(got) != 1 || len(got[0].Component) != 2 {
		t.Errorf("records without a timestamp should share one bucket, got %d composites", len(got))
	}
}

func TestAggregate_LocalUniverse(t *testing.T) {
	m := testMapper(t)
	records := []*LabResult{labResult(1, "C", day1), labResult(2, "D", day1)}

	got := m.Aggregate(records, "L", terminology.UniverseLocal)
	if len(got) != 1 {
		t.Fatalf("expected 1 composite, got %d", len(got))
	}
	coding := got[0].Code.Coding[0]
	if coding.System != testLocalSystem || coding.Display != "Local L" {
		t.Errorf("unexpected local coding %+v", coding)
	}

	// L is not a panel
	if got := m.Aggregate(records, "L", terminology.UniversePanel); got != nil {
		t.Errorf("lookup in the wrong universe must be empty, got %d", len(got))
	}
}

func TestAggregate_UnknownOrEmpty(t *testing.T) {
	m := testMapper(t)
	records := []*LabResult{labResult(1, "A", day1)}

	if got := m.Aggregate(records, "NOPE", terminology.UniversePanel); got != nil {
		t.Errorf("unknown group must yield empty result, got %d", len(got))
	}
	if got := m.Aggregate(nil, "P", terminology.UniversePanel); got != nil {
		t.Errorf("no records must yield empty result, got %d", len(got))
	}
}

func TestAggregate_NilDirectory(t *testing.T) {
	m := NewMapper(nil, "", zerolog.Nop())
	if got := m.Aggregate([]*LabResult{labResult(1, "A", day1)}, "P", terminology.UniversePanel); got != nil {
		t.Errorf("empty directory knows no groups, got %d", len(got))
	}
}
