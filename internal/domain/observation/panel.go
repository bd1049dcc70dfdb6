package observation

import (
	"time"

	"github.com/ayusovnc/fhir-demo/internal/domain/terminology"
	"github.com/ayusovnc/fhir-demo/internal/platform/fhir"
)

type bucket struct {
	at      *time.Time
	records []*LabResult
}

func sameInstant(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

// Aggregate builds one composite Observation per distinct performed-on
// instant among the records that belong to groupID in universe u. Composites
// come back in order of first appearance; components keep record order.
// An unknown group yields nil.
func (m *Mapper) Aggregate(records []*LabResult, groupID string, u terminology.Universe) []*Observation {
	members, ok := m.dir.MembersOf(u, groupID)
	if !ok {
		return nil
	}

	var buckets []*bucket
	for _, rec := range records {
		if !members.Has(rec.LOINCCode) {
			continue
		}
		var b *bucket
		for _, existing := range buckets {
			if sameInstant(existing.at, rec.PerformedOn) {
				b = existing
				break
			}
		}
		if b == nil {
			b = &bucket{at: rec.PerformedOn}
			buckets = append(buckets, b)
		}
		b.records = append(b.records, rec)
	}

	if len(buckets) == 0 {
		return nil
	}

	display, _ := m.dir.DisplayName(u, groupID)
	code := fhir.CodeableConcept{
		Coding: []fhir.Coding{{System: m.dir.System(u), Code: groupID, Display: display}},
		Text:   display,
	}

	out := make([]*Observation, 0, len(buckets))
	for _, b := range buckets {
		first := b.records[0]
		obs := m.base(first)
		obs.ID = groupID + "-" + recordID(first.ID)
		obs.Code = code
		obs.Component = make([]Component, 0, len(b.records))
		for _, rec := range b.records {
			obs.Component = append(obs.Component, m.MapComponent(rec))
		}
		out = append(out, obs)
	}
	return out
}
