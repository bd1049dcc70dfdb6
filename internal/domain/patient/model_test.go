package patient

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func ptr[T any](v T) *T { return &v }

func samplePatient() *PatientRecord {
	return &PatientRecord{
		ID:                    12,
		FirstName:             ptr("Ada"),
		LastName:              ptr("Lovelace"),
		Gender:                ptr("F"),
		Birthdate:             ptr(time.Date(1965, 12, 10, 0, 0, 0, 0, time.UTC)),
		RaceCodes:             ptr("r5"),
		HomePhoneNumber:       ptr("555-0100"),
		CellPhoneNumber:       ptr("555-0199"),
		PreferredLanguageCode: ptr("en"),
	}
}

func TestPatientRecord_ToFHIR(t *testing.T) {
	addresses := []*AddressRecord{{
		StreetAddressLine1: ptr("1 Main St"),
		Locality:           ptr("Springfield"),
		AdminDistrict1:     ptr("IL"),
		PostalCode:         ptr("62701"),
	}}

	raw, err := json.Marshal(samplePatient().ToFHIR(addresses))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got map[string]interface{}
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatal(err)
	}

	if got["resourceType"] != "Patient" || got["id"] != "12" {
		t.Errorf("unexpected envelope %v", got)
	}
	if got["gender"] != "female" {
		t.Errorf("expected female, got %v", got["gender"])
	}
	if got["birthDate"] != "1965-12-10" {
		t.Errorf("expected date-only birthDate, got %v", got["birthDate"])
	}

	names := got["name"].([]interface{})
	name := names[0].(map[string]interface{})
	if name["family"] != "Lovelace" {
		t.Errorf("unexpected family %v", name["family"])
	}

	telecom := got["telecom"].([]interface{})
	var uses []string
	for _, tc := range telecom {
		uses = append(uses, tc.(map[string]interface{})["use"].(string))
	}
	if diff := cmp.Diff([]string{"home", "mobile"}, uses); diff != "" {
		t.Errorf("telecom uses mismatch (-want +got):\n%s", diff)
	}

	addr := got["address"].([]interface{})[0].(map[string]interface{})
	if addr["use"] != "home" || addr["type"] != "physical" || addr["country"] != "USA" || addr["state"] != "IL" {
		t.Errorf("unexpected address %v", addr)
	}
	if lines := addr["line"].([]interface{}); len(lines) != 1 {
		t.Errorf("blank second line must be dropped, got %v", lines)
	}

	if _, ok := got["extension"]; !ok {
		t.Error("expected race extension")
	}
	if _, ok := got["communication"]; !ok {
		t.Error("expected communication for preferred language")
	}
}

func TestPatientRecord_ToFHIR_Sparse(t *testing.T) {
	got := (&PatientRecord{ID: 3, Gender: ptr("Z")}).ToFHIR(nil)

	for _, key := range []string{"gender", "birthDate", "telecom", "address", "extension", "communication"} {
		if _, ok := got[key]; ok {
			t.Errorf("expected %s to be omitted, got %v", key, got[key])
		}
	}
}
