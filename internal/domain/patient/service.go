package patient

import (
	"context"

	"github.com/rs/zerolog"
)

type Service struct {
	repo   Repository
	logger zerolog.Logger
}

func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// GetPatient returns the FHIR Patient with its addresses.
func (s *Service) GetPatient(ctx context.Context, id int) (map[string]interface{}, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	addresses, err := s.repo.ListAddresses(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, code := range p.UnknownRaceCodes() {
		s.logger.Warn().Int("patient_id", id).Str("race_code", code).Msg("failed to decode race code")
	}
	return p.ToFHIR(addresses), nil
}
