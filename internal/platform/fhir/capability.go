package fhir

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// CapabilityStatement represents the FHIR CapabilityStatement (metadata).
type CapabilityStatement struct {
	ResourceType   string            `json:"resourceType"`
	Status         string            `json:"status"`
	Date           string            `json:"date"`
	Kind           string            `json:"kind"`
	FHIRVersion    string            `json:"fhirVersion"`
	Format         []string          `json:"format"`
	Software       *CSSoftware       `json:"software,omitempty"`
	Implementation *CSImplementation `json:"implementation,omitempty"`
	Rest           []CSRest          `json:"rest"`
}

type CSSoftware struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
}

type CSImplementation struct {
	Description string `json:"description"`
	URL         string `json:"url,omitempty"`
}

type CSRest struct {
	Mode     string       `json:"mode"`
	Resource []CSResource `json:"resource"`
}

type CSResource struct {
	Type        string          `json:"type"`
	Interaction []CSInteraction `json:"interaction"`
	SearchParam []CSSearchParam `json:"searchParam,omitempty"`
}

type CSInteraction struct {
	Code string `json:"code"`
}

type CSSearchParam struct {
	Name          string `json:"name"`
	Type          string `json:"type"`
	Documentation string `json:"documentation,omitempty"`
}

// NewCapabilityStatement creates the server's capability statement.
func NewCapabilityStatement(baseURL, version string, resources []CSResource) *CapabilityStatement {
	return &CapabilityStatement{
		ResourceType: "CapabilityStatement",
		Status:       "active",
		Date:         time.Now().UTC().Format("2006-01-02"),
		Kind:         "instance",
		FHIRVersion:  "4.0.1",
		Format:       []string{"json"},
		Software: &CSSoftware{
			Name:    "fhir-demo",
			Version: version,
		},
		Implementation: &CSImplementation{
			Description: "Read-only FHIR R4 facade over a clinical results database",
			URL:         baseURL,
		},
		Rest: []CSRest{
			{
				Mode:     "server",
				Resource: resources,
			},
		},
	}
}

// ReadOnlyCapability creates a CSResource that supports read and type search.
func ReadOnlyCapability(resourceType string, searchParams []CSSearchParam) CSResource {
	interactions := []CSInteraction{{Code: "read"}}
	if len(searchParams) > 0 {
		interactions = append(interactions, CSInteraction{Code: "search-type"})
	}
	return CSResource{
		Type:        resourceType,
		Interaction: interactions,
		SearchParam: searchParams,
	}
}

// CapabilityHandler serves a prebuilt statement on /metadata.
func CapabilityHandler(cs *CapabilityStatement) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, cs)
	}
}
