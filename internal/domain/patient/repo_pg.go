package patient

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ayusovnc/fhir-demo/internal/platform/db"
)

type repoPG struct{ q db.Querier }

func NewRepoPG(q db.Querier) Repository { return &repoPG{q: q} }

const patientCols = `id, first_name, last_name, gender, birthdate, race_codes, ethnicity_key,
	home_phone_number, work_phone_number, cell_phone_number, preferred_language_code`

func (r *repoPG) GetByID(ctx context.Context, id int) (*PatientRecord, error) {
	var p PatientRecord
	err := r.q.QueryRow(ctx, `SELECT `+patientCols+` FROM patient_informations WHERE id = $1`, id).Scan(
		&p.ID, &p.FirstName, &p.LastName, &p.Gender, &p.Birthdate, &p.RaceCodes, &p.EthnicityKey,
		&p.HomePhoneNumber, &p.WorkPhoneNumber, &p.CellPhoneNumber, &p.PreferredLanguageCode)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get patient %d: %w", id, err)
	}
	return &p, nil
}

func (r *repoPG) ListAddresses(ctx context.Context, patientID int) ([]*AddressRecord, error) {
	rows, err := r.q.Query(ctx, `SELECT street_address_line1, street_address_line2, locality,
		admin_district1, admin_district2, postal_code
		FROM addresses WHERE addressable_id = $1`, patientID)
	if err != nil {
		return nil, fmt.Errorf("list addresses for patient %d: %w", patientID, err)
	}
	defer rows.Close()

	var items []*AddressRecord
	for rows.Next() {
		var a AddressRecord
		if err := rows.Scan(&a.StreetAddressLine1, &a.StreetAddressLine2, &a.Locality,
			&a.AdminDistrict1, &a.AdminDistrict2, &a.PostalCode); err != nil {
			return nil, fmt.Errorf("scan address: %w", err)
		}
		items = append(items, &a)
	}
	return items, rows.Err()
}
