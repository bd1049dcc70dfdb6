package terminology

import "github.com/ayusovnc/fhir-demo/pkg/fhirmodels"

// Directory holds the panel and local code-group tables. It is built once at
// startup and only read afterwards, so it needs no locking.
type Directory struct {
	panel       *GroupTable
	local       *GroupTable
	localSystem string
}

func NewDirectory(panel, local *GroupTable, localSystem string) *Directory {
	if panel == nil {
		panel = NewGroupTable()
	}
	if local == nil {
		local = NewGroupTable()
	}
	panel.seal()
	local.seal()
	return &Directory{panel: panel, local: local, localSystem: localSystem}
}

func (d *Directory) table(u Universe) *GroupTable {
	if u == UniverseLocal {
		return d.local
	}
	return d.panel
}

func (d *Directory) IsKnown(u Universe, id string) bool {
	return d.table(u).IsKnown(id)
}

func (d *Directory) MembersOf(u Universe, id string) (MemberSet, bool) {
	return d.table(u).MembersOf(id)
}

func (d *Directory) DisplayName(u Universe, id string) (string, bool) {
	return d.table(u).DisplayName(id)
}

// System is the coding system group ids of the universe belong to.
func (d *Directory) System(u Universe) string {
	if u == UniverseLocal {
		return d.localSystem
	}
	return fhirmodels.SystemLOINC
}

func (d *Directory) Len(u Universe) int {
	return d.table(u).Len()
}

func (d *Directory) IDs(u Universe) []string {
	return d.table(u).IDs()
}

// Lookup lists the universes that know id, panel first.
func (d *Directory) Lookup(id string) []Universe {
	var out []Universe
	for _, u := range []Universe{UniversePanel, UniverseLocal} {
		if d.IsKnown(u, id) {
			out = append(out, u)
		}
	}
	return out
}

// GroupInfo describes one group as seen from a single universe.
type GroupInfo struct {
	Universe string   `json:"universe"`
	System   string   `json:"system"`
	ID       string   `json:"id"`
	Display  string   `json:"display,omitempty"`
	Members  []string `json:"members"`
}

// Describe returns the group in every universe that knows id. The result is
// empty for an unknown id.
func (d *Directory) Describe(id string) []GroupInfo {
	var out []GroupInfo
	for _, u := range d.Lookup(id) {
		members, _ := d.MembersOf(u, id)
		name, _ := d.DisplayName(u, id)
		out = append(out, GroupInfo{
			Universe: u.String(),
			System:   d.System(u),
			ID:       id,
			Display:  name,
			Members:  members.Codes(),
		})
	}
	return out
}

// ParseUniverse accepts "panel" or "local".
func ParseUniverse(s string) (Universe, bool) {
	switch s {
	case "panel":
		return UniversePanel, true
	case "local":
		return UniverseLocal, true
	default:
		return 0, false
	}
}
