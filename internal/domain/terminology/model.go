package terminology

import "sort"

// Universe names which code-group table a lookup is addressed to.
type Universe int

const (
	UniversePanel Universe = iota
	UniverseLocal
)

func (u Universe) String() string {
	switch u {
	case UniversePanel:
		return "panel"
	case UniverseLocal:
		return "local"
	default:
		return "unknown"
	}
}

// MemberSet is a read-only set of member codes.
type MemberSet struct {
	codes map[string]struct{}
}

func (s MemberSet) Has(code string) bool {
	_, ok := s.codes[code]
	return ok
}

func (s MemberSet) Len() int { return len(s.codes) }

// Codes returns the members sorted.
func (s MemberSet) Codes() []string {
	out := make([]string, 0, len(s.codes))
	for c := range s.codes {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// GroupTable maps group ids to member codes and a display name. A group id
// only exists because at least one row created it, so every known group has
// one or more members.
type GroupTable struct {
	members map[string]map[string]struct{}
	names   map[string]string
	// ids is the sorted id list, built by seal once loading is done.
	ids []string
}

func NewGroupTable() *GroupTable {
	return &GroupTable{
		members: make(map[string]map[string]struct{}),
		names:   make(map[string]string),
	}
}

// add is only used while loading. The first row seen for a group sets its name.
func (t *GroupTable) add(groupID, member, name string) {
	set, ok := t.members[groupID]
	if !ok {
		set = make(map[string]struct{})
		t.members[groupID] = set
		t.names[groupID] = name
		t.ids = nil
	}
	set[member] = struct{}{}
}

func (t *GroupTable) IsKnown(id string) bool {
	_, ok := t.members[id]
	return ok
}

// MembersOf reports false for an unknown id, which is distinct from an empty set.
func (t *GroupTable) MembersOf(id string) (MemberSet, bool) {
	set, ok := t.members[id]
	if !ok {
		return MemberSet{}, false
	}
	return MemberSet{codes: set}, true
}

func (t *GroupTable) DisplayName(id string) (string, bool) {
	name, ok := t.names[id]
	return name, ok
}

func (t *GroupTable) Len() int { return len(t.members) }

// IDs returns every group id, sorted. A sealed table returns its shared
// list, which callers must not modify.
func (t *GroupTable) IDs() []string {
	if t.ids != nil {
		return t.ids
	}
	return t.sortedIDs()
}

// seal caches the sorted id list. The table must not change afterwards.
func (t *GroupTable) seal() {
	t.ids = t.sortedIDs()
}

func (t *GroupTable) sortedIDs() []string {
	out := make([]string, 0, len(t.members))
	for id := range t.members {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
