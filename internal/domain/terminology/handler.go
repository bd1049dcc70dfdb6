package terminology

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ayusovnc/fhir-demo/internal/platform/auth"
	"github.com/ayusovnc/fhir-demo/pkg/pagination"
)

// Handler exposes the loaded code directory for inspection.
type Handler struct {
	dir *Directory
}

func NewHandler(dir *Directory) *Handler {
	return &Handler{dir: dir}
}

// RegisterRoutes registers directory routes on the API group.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	termGroup := api.Group("/terminology", auth.RequireRole(auth.ClinicalReadRoles...))
	termGroup.GET("/groups", h.ListGroups)
	termGroup.GET("/groups/:id", h.GetGroup)
}

type groupSummary struct {
	ID      string `json:"id"`
	Display string `json:"display,omitempty"`
	Size    int    `json:"size"`
}

type groupList struct {
	Universe string         `json:"universe"`
	Total    int            `json:"total"`
	Groups   []groupSummary `json:"groups"`
}

// ListGroups handles GET /api/v1/terminology/groups?universe=panel|local
func (h *Handler) ListGroups(c echo.Context) error {
	raw := c.QueryParam("universe")
	if raw == "" {
		raw = UniversePanel.String()
	}
	u, ok := ParseUniverse(raw)
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "universe must be 'panel' or 'local'")
	}

	ids := h.dir.IDs(u)
	pg := pagination.FromContext(c)
	start, end := pg.Window(len(ids))

	groups := make([]groupSummary, 0, end-start)
	for _, id := range ids[start:end] {
		members, _ := h.dir.MembersOf(u, id)
		name, _ := h.dir.DisplayName(u, id)
		groups = append(groups, groupSummary{ID: id, Display: name, Size: members.Len()})
	}
	return c.JSON(http.StatusOK, groupList{Universe: u.String(), Total: len(ids), Groups: groups})
}

// GetGroup handles GET /api/v1/terminology/groups/:id
func (h *Handler) GetGroup(c echo.Context) error {
	info := h.dir.Describe(c.Param("id"))
	if len(info) == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "group not found")
	}
	return c.JSON(http.StatusOK, info)
}
