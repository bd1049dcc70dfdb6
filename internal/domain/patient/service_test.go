package patient

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

type mockRepo struct {
	patients  map[int]*PatientRecord
	addresses map[int][]*AddressRecord
}

func newMockRepo() *mockRepo {
	return &mockRepo{patients: map[int]*PatientRecord{}, addresses: map[int][]*AddressRecord{}}
}

func (m *mockRepo) GetByID(_ context.Context, id int) (*PatientRecord, error) {
	p, ok := m.patients[id]
	if !ok {
		return nil, ErrNotFound
	}
	return p, nil
}

func (m *mockRepo) ListAddresses(_ context.Context, patientID int) ([]*AddressRecord, error) {
	return m.addresses[patientID], nil
}

func TestService_GetPatient(t *testing.T) {
	repo := newMockRepo()
	p := samplePatient()
	p.RaceCodes = ptr("r1,zz")
	repo.patients[p.ID] = p
	repo.addresses[p.ID] = []*AddressRecord{{Locality: ptr("Columbus")}}

	var buf bytes.Buffer
	svc := NewService(repo, zerolog.New(&buf))

	got, err := svc.GetPatient(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := got["address"]; !ok {
		t.Error("expected addresses on the patient")
	}
	if !strings.Contains(buf.String(), `"race_code":"zz"`) {
		t.Errorf("expected warning for unknown race code, got %s", buf.String())
	}
}

func TestService_GetPatient_NotFound(t *testing.T) {
	svc := NewService(newMockRepo(), zerolog.Nop())
	if _, err := svc.GetPatient(context.Background(), 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
