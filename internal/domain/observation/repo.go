package observation

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no lab result has the requested id.
var ErrNotFound = errors.New("lab result not found")

type Repository interface {
	GetByID(ctx context.Context, id int) (*LabResult, error)
	ListByPerson(ctx context.Context, personID int) ([]*LabResult, error)
}
