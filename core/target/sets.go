package target

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// SiteID identifies a site in the site catalog.
type SiteID int64

// ParseSiteID parses a decimal site id. Surrounding whitespace is ignored.
func ParseSiteID(s string) (SiteID, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSiteID, s)
	}
	return SiteID(v), nil
}

func (id SiteID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// SiteSet is an insertion ordered set of site ids.
// The zero value is an empty set ready to use.
type SiteSet struct {
	ids []SiteID
}

// NewSiteSet returns a set holding the given ids in order, duplicates removed.
func NewSiteSet(ids ...SiteID) SiteSet {
	var s SiteSet
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// Add appends id unless it is already present. Reports whether it was added.
func (s *SiteSet) Add(id SiteID) bool {
	if s.Contains(id) {
		return false
	}
	s.ids = append(s.ids, id)
	return true
}

func (s SiteSet) Contains(id SiteID) bool {
	for _, v := range s.ids {
		if v == id {
			return true
		}
	}
	return false
}

// IDs returns a copy of the ids in insertion order.
func (s SiteSet) IDs() []SiteID {
	if len(s.ids) == 0 {
		return nil
	}
	out := make([]SiteID, len(s.ids))
	copy(out, s.ids)
	return out
}

func (s SiteSet) Len() int { return len(s.ids) }

// String joins the ids with commas, e.g. "1,3,7".
func (s SiteSet) String() string {
	parts := make([]string, len(s.ids))
	for i, id := range s.ids {
		parts[i] = id.String()
	}
	return strings.Join(parts, ",")
}

func (s SiteSet) MarshalJSON() ([]byte, error) {
	if s.ids == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.ids)
}

func (s *SiteSet) UnmarshalJSON(data []byte) error {
	var ids []SiteID
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	*s = NewSiteSet(ids...)
	return nil
}

// NameSet is an insertion ordered set of host names.
// Names are lower-cased and trimmed on insert; empty names are ignored.
type NameSet struct {
	names []string
	index map[string]struct{}
}

func NewNameSet(names ...string) NameSet {
	var s NameSet
	s.AddAll(names...)
	return s
}

// ParseNameList builds a set from a comma separated list.
func ParseNameList(csv string) NameSet {
	return NewNameSet(strings.Split(csv, ",")...)
}

// Add inserts name. Reports whether the set changed.
func (s *NameSet) Add(name string) bool {
	name = normalizeName(name)
	if name == "" {
		return false
	}
	if _, ok := s.index[name]; ok {
		return false
	}
	if s.index == nil {
		s.index = make(map[string]struct{})
	}
	s.index[name] = struct{}{}
	s.names = append(s.names, name)
	return true
}

func (s *NameSet) AddAll(names ...string) {
	for _, n := range names {
		s.Add(n)
	}
}

func (s NameSet) Contains(name string) bool {
	_, ok := s.index[normalizeName(name)]
	return ok
}

// Names returns a copy of the names in insertion order.
func (s NameSet) Names() []string {
	if len(s.names) == 0 {
		return nil
	}
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

func (s NameSet) Len() int { return len(s.names) }

// Union returns a new set with the names of s followed by the new names of other.
func (s NameSet) Union(other NameSet) NameSet {
	out := s.Clone()
	out.AddAll(other.names...)
	return out
}

func (s NameSet) Clone() NameSet {
	return NewNameSet(s.names...)
}

// String joins the names with commas.
func (s NameSet) String() string {
	return strings.Join(s.names, ",")
}

func (s NameSet) MarshalJSON() ([]byte, error) {
	if s.names == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.names)
}

func (s *NameSet) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	*s = NewNameSet(names...)
	return nil
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
