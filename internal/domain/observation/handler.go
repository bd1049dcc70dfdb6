package observation

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/ayusovnc/fhir-demo/internal/platform/auth"
	"github.com/ayusovnc/fhir-demo/internal/platform/fhir"
	"github.com/ayusovnc/fhir-demo/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(fhirGroup *echo.Group) {
	read := fhirGroup.Group("", auth.RequireRole(auth.ClinicalReadRoles...))
	read.GET("/Observation", h.SearchObservationsFHIR)
	read.POST("/Observation/_search", h.SearchObservationsFHIR)
	read.GET("/Observation/:id", h.GetObservationFHIR)
}

// SearchParamsCapability describes the supported search parameters for /metadata.
func SearchParamsCapability() []fhir.CSSearchParam {
	return []fhir.CSSearchParam{
		{Name: "subject", Type: "reference"},
		{Name: "patient", Type: "reference"},
		{Name: "code", Type: "token"},
		{Name: "category", Type: "token"},
	}
}

func (h *Handler) GetObservationFHIR(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, fhir.InvalidOutcome("observation id must be a number"))
	}
	obs, err := h.svc.GetObservation(c.Request().Context(), id)
	if errors.Is(err, ErrNotFound) {
		return c.JSON(http.StatusNotFound, fhir.NotFoundOutcome("Observation", c.Param("id")))
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, fhir.ErrorOutcome(err.Error()))
	}
	return c.JSON(http.StatusOK, obs.ToFHIR())
}

func (h *Handler) SearchObservationsFHIR(c echo.Context) error {
	params := fhir.ExtractSearchParams(c)

	subject := params["subject"]
	if subject == "" {
		subject = params["patient"]
	}
	if subject == "" {
		return c.JSON(http.StatusBadRequest, fhir.InvalidOutcome("subject or patient search parameter is required"))
	}
	personID, err := strconv.Atoi(fhir.ReferenceID(subject))
	if err != nil {
		return c.JSON(http.StatusBadRequest, fhir.InvalidOutcome("patient id must be a number"))
	}

	sp := SearchParams{PersonID: personID}
	for _, tok := range fhir.ParseTokenList(params["category"]) {
		sp.Categories = append(sp.Categories, tok.Code)
	}
	for _, tok := range fhir.ParseTokenList(params["code"]) {
		sp.Codes = append(sp.Codes, tok.Code)
	}

	items, err := h.svc.SearchObservations(c.Request().Context(), sp)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, fhir.ErrorOutcome(err.Error()))
	}

	pg := pagination.FromContext(c)
	start, end := pg.Window(len(items))
	resources := make([]map[string]interface{}, 0, end-start)
	for _, item := range items[start:end] {
		resources = append(resources, item.ToFHIR())
	}

	query := url.Values{}
	for k, v := range params {
		query.Set(k, v)
	}
	bundle, err := fhir.NewSearchBundleWithLinks(resources, fhir.SearchBundleParams{
		BaseURL:  "/fhir/Observation",
		QueryStr: fhir.QueryWithoutPaging(query),
		Count:    pg.Limit,
		Offset:   pg.Offset,
		Total:    len(items),
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, fhir.ErrorOutcome(err.Error()))
	}
	return c.JSON(http.StatusOK, bundle)
}
