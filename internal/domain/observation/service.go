package observation

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/ayusovnc/fhir-demo/internal/domain/terminology"
)

// SearchParams is an Observation search for one subject. Codes may mix
// analyte codes with panel or local group ids.
type SearchParams struct {
	PersonID   int
	Categories []string
	Codes      []string
}

type Service struct {
	repo   Repository
	mapper *Mapper
	dir    *terminology.Directory
	logger zerolog.Logger
}

func NewService(repo Repository, mapper *Mapper, dir *terminology.Directory, logger zerolog.Logger) *Service {
	return &Service{repo: repo, mapper: mapper, dir: dir, logger: logger}
}

func (s *Service) GetObservation(ctx context.Context, id int) (*Observation, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.mapper.MapSingle(rec), nil
}

// SearchObservations maps a subject's results. Without codes every result is
// mapped singly. With codes, results whose own code was requested are mapped
// singly, requested groups are aggregated (panels first, then local groups,
// each in request order) and everything else is dropped. The category filter
// runs last and keeps observations in any of the requested categories.
func (s *Service) SearchObservations(ctx context.Context, p SearchParams) ([]*Observation, error) {
	records, err := s.repo.ListByPerson(ctx, p.PersonID)
	if err != nil {
		return nil, err
	}

	var out []*Observation
	if len(p.Codes) == 0 {
		out = make([]*Observation, 0, len(records))
		for _, rec := range records {
			out = append(out, s.mapper.MapSingle(rec))
		}
		return FilterByCategory(out, p.Categories...), nil
	}

	var panels, locals []string
	direct := make(map[string]bool)
	seen := make(map[string]bool)
	for _, code := range p.Codes {
		if code == "" || seen[code] {
			continue
		}
		seen[code] = true
		isPanel := s.dir.IsKnown(terminology.UniversePanel, code)
		isLocal := s.dir.IsKnown(terminology.UniverseLocal, code)
		if isPanel {
			panels = append(panels, code)
		}
		if isLocal {
			locals = append(locals, code)
		}
		if !isPanel && !isLocal {
			direct[code] = true
		}
	}

	for _, rec := range records {
		if direct[rec.LOINCCode] {
			out = append(out, s.mapper.MapSingle(rec))
		}
	}
	for _, id := range panels {
		out = append(out, s.mapper.Aggregate(records, id, terminology.UniversePanel)...)
	}
	for _, id := range locals {
		out = append(out, s.mapper.Aggregate(records, id, terminology.UniverseLocal)...)
	}

	s.logger.Debug().
		Int("person_id", p.PersonID).
		Int("records", len(records)).
		Int("panels", len(panels)).
		Int("local_groups", len(locals)).
		Int("results", len(out)).
		Msg("observation search routed")

	return FilterByCategory(out, p.Categories...), nil
}
