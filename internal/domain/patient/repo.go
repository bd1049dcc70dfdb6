package patient

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("patient not found")

type Repository interface {
	GetByID(ctx context.Context, id int) (*PatientRecord, error)
	ListAddresses(ctx context.Context, patientID int) ([]*AddressRecord, error)
}
