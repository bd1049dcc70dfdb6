package observation

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ayusovnc/fhir-demo/internal/platform/db"
)

type repoPG struct{ q db.Querier }

func NewRepoPG(q db.Querier) Repository { return &repoPG{q: q} }

const labCols = `id, clinic_id, person_id, external_id, COALESCE(loinc_code, ''), quantity, unit,
	interpretation_concept, performed_on, group_identifier, component_name, facility_component_name,
	normal_range_min, normal_range_max, reported_on, lab_name, lab_address, sequence`

func scanLabResult(row pgx.Row) (*LabResult, error) {
	var r LabResult
	err := row.Scan(&r.ID, &r.ClinicID, &r.PersonID, &r.ExternalID, &r.LOINCCode, &r.Quantity, &r.Unit,
		&r.Interpretation, &r.PerformedOn, &r.GroupIdentifier, &r.ComponentName, &r.FacilityComponentName,
		&r.NormalRangeMin, &r.NormalRangeMax, &r.ReportedOn, &r.LabName, &r.LabAddress, &r.Sequence)
	return &r, err
}

func (r *repoPG) GetByID(ctx context.Context, id int) (*LabResult, error) {
	rec, err := scanLabResult(r.q.QueryRow(ctx, `SELECT `+labCols+` FROM clinic_test_results WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get lab result %d: %w", id, err)
	}
	return rec, nil
}

func (r *repoPG) ListByPerson(ctx context.Context, personID int) ([]*LabResult, error) {
	rows, err := r.q.Query(ctx, `SELECT `+labCols+` FROM clinic_test_results
		WHERE person_id = $1 ORDER BY performed_on NULLS LAST, sequence NULLS LAST, id`, personID)
	if err != nil {
		return nil, fmt.Errorf("list lab results for person %d: %w", personID, err)
	}
	defer rows.Close()

	var items []*LabResult
	for rows.Next() {
		rec, err := scanLabResult(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lab result: %w", err)
		}
		items = append(items, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list lab results for person %d: %w", personID, err)
	}
	return items, nil
}
