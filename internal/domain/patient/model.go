package patient

import (
	"strconv"
	"time"

	"github.com/ayusovnc/fhir-demo/internal/platform/fhir"
	"github.com/ayusovnc/fhir-demo/pkg/fhirmodels"
)

// PatientRecord maps to the patient_informations table.
type PatientRecord struct {
	ID                    int        `db:"id" json:"id"`
	FirstName             *string    `db:"first_name" json:"first_name,omitempty"`
	LastName              *string    `db:"last_name" json:"last_name,omitempty"`
	Gender                *string    `db:"gender" json:"gender,omitempty"`
	Birthdate             *time.Time `db:"birthdate" json:"birthdate,omitempty"`
	RaceCodes             *string    `db:"race_codes" json:"race_codes,omitempty"`
	EthnicityKey          *string    `db:"ethnicity_key" json:"ethnicity_key,omitempty"`
	HomePhoneNumber       *string    `db:"home_phone_number" json:"home_phone_number,omitempty"`
	WorkPhoneNumber       *string    `db:"work_phone_number" json:"work_phone_number,omitempty"`
	CellPhoneNumber       *string    `db:"cell_phone_number" json:"cell_phone_number,omitempty"`
	PreferredLanguageCode *string    `db:"preferred_language_code" json:"preferred_language_code,omitempty"`
}

// AddressRecord maps to the addresses table.
type AddressRecord struct {
	StreetAddressLine1 *string `db:"street_address_line1" json:"street_address_line1,omitempty"`
	StreetAddressLine2 *string `db:"street_address_line2" json:"street_address_line2,omitempty"`
	Locality           *string `db:"locality" json:"locality,omitempty"`
	AdminDistrict1     *string `db:"admin_district1" json:"admin_district1,omitempty"`
	AdminDistrict2     *string `db:"admin_district2" json:"admin_district2,omitempty"`
	PostalCode         *string `db:"postal_code" json:"postal_code,omitempty"`
}

func (a *AddressRecord) ToFHIR() fhir.Address {
	addr := fhir.Address{
		Use:        "home",
		Type:       "physical",
		City:       strVal(a.Locality),
		District:   strVal(a.AdminDistrict2),
		State:      strVal(a.AdminDistrict1),
		PostalCode: strVal(a.PostalCode),
		Country:    "USA",
	}
	for _, l := range []*string{a.StreetAddressLine1, a.StreetAddressLine2} {
		if s := strVal(l); s != "" {
			addr.Line = append(addr.Line, s)
		}
	}
	return addr
}

func (p *PatientRecord) ToFHIR(addresses []*AddressRecord) map[string]interface{} {
	name := fhir.HumanName{Family: strVal(p.LastName)}
	if given := strVal(p.FirstName); given != "" {
		name.Given = []string{given}
	}

	result := map[string]interface{}{
		"resourceType": "Patient",
		"id":           strconv.Itoa(p.ID),
		"name":         []fhir.HumanName{name},
	}

	if g, ok := GenderFromCode(strVal(p.Gender)); ok {
		result["gender"] = g
	}
	if p.Birthdate != nil {
		result["birthDate"] = p.Birthdate.Format("2006-01-02")
	}
	if ext, _ := raceExtension(strVal(p.RaceCodes)); ext != nil {
		result["extension"] = []fhir.Extension{*ext}
	}

	var telecom []fhir.ContactPoint
	for _, tp := range []struct {
		value *string
		use   string
	}{
		{p.HomePhoneNumber, fhirmodels.ContactUseHome},
		{p.WorkPhoneNumber, fhirmodels.ContactUseWork},
		{p.CellPhoneNumber, fhirmodels.ContactUseMobile},
	} {
		if v := strVal(tp.value); v != "" {
			telecom = append(telecom, fhir.ContactPoint{System: fhirmodels.ContactSystemPhone, Value: v, Use: tp.use})
		}
	}
	if len(telecom) > 0 {
		result["telecom"] = telecom
	}

	if lang := strVal(p.PreferredLanguageCode); lang != "" {
		result["communication"] = []map[string]interface{}{{
			"language":  fhir.CodeableConcept{Coding: []fhir.Coding{{System: "urn:ietf:bcp:47", Code: lang}}},
			"preferred": true,
		}}
	}

	if len(addresses) > 0 {
		addrs := make([]fhir.Address, len(addresses))
		for i, a := range addresses {
			addrs[i] = a.ToFHIR()
		}
		result["address"] = addrs
	}
	return result
}

// UnknownRaceCodes lists race codes that have no CDC mapping.
func (p *PatientRecord) UnknownRaceCodes() []string {
	_, unknown := raceExtension(strVal(p.RaceCodes))
	return unknown
}

func strVal(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
