package fhirmodels

// Common FHIR value set constants used across the application.

// Code system URIs.
const (
	SystemLOINC               = "http://loinc.org"
	SystemUCUM                = "http://unitsofmeasure.org"
	SystemObservationCategory = "http://terminology.hl7.org/CodeSystem/observation-category"
	SystemCDCRace             = "urn:oid:2.16.840.1.113883.6.238"
)

// ObservationStatus values per FHIR R4.
const (
	ObsStatusRegistered  = "registered"
	ObsStatusPreliminary = "preliminary"
	ObsStatusFinal       = "final"
	ObsStatusAmended     = "amended"
)

// ObservationCategory codes.
const (
	ObsCategoryVitalSigns    = "vital-signs"
	ObsCategoryLaboratory    = "laboratory"
	ObsCategoryImaging       = "imaging"
	ObsCategorySocialHistory = "social-history"
	ObsCategorySurvey        = "survey"
	ObsCategoryExam          = "exam"
	ObsCategoryProcedure     = "procedure"
	ObsCategoryActivity      = "activity"
	ObsCategoryTherapy       = "therapy"
)

// ObservationCategory display names.
const (
	ObsCategoryVitalSignsDisplay = "Vital Signs"
	ObsCategoryLaboratoryDisplay = "Laboratory"
)

// AdministrativeGender codes.
const (
	GenderMale    = "male"
	GenderFemale  = "female"
	GenderOther   = "other"
	GenderUnknown = "unknown"
)

// ContactPoint system and use codes.
const (
	ContactSystemPhone = "phone"
	ContactUseHome     = "home"
	ContactUseWork     = "work"
	ContactUseMobile   = "mobile"
)

// Race extension (US Core).
const (
	ExtensionUSCoreRace = "http://hl7.org/fhir/us-core/StructureDefinition/us-core-race"
)
