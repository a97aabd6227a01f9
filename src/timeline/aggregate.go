package timeline

import (
	"cmp"
	"slices"
	"strings"
)

// TypeFilter is the history page type selector, in plural collection form.
type TypeFilter string

const (
	FilterAll     TypeFilter = "all"
	FilterRulers  TypeFilter = "rulers"
	FilterPlaces  TypeFilter = "places"
	FilterBattles TypeFilter = "battles"
	FilterPeople  TypeFilter = "people"
)

// Matches reports whether an entry of kind k passes the filter. The zero value
// behaves as FilterAll; an unknown filter matches nothing.
func (f TypeFilter) Matches(k Kind) bool {
	if f == "" || f == FilterAll {
		return true
	}
	return string(f) == k.Collection()
}

// Aggregate merges the four collections (rulers, places, battles, people) and
// sorts them by DisplayYear. Ties keep collection order.
func Aggregate(c Collections) []Entry {
	entries := c.Entries()
	slices.SortStableFunc(entries, func(a, b Entry) int {
		return cmp.Compare(DisplayYear(a), DisplayYear(b))
	})
	return entries
}

// Filter combines a free-text query with a type selector. Both must match.
type Filter struct {
	Query string
	Type  TypeFilter
}

// Apply returns the entries passing the filter in their original order.
// The input slice is never modified.
func (f Filter) Apply(entries []Entry) []Entry {
	query := strings.ToLower(strings.TrimSpace(f.Query))

	filtered := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if !f.Type.Matches(e.Kind()) {
			continue
		}
		if query != "" && !matchesQuery(e, query) {
			continue
		}
		filtered = append(filtered, e)
	}
	return filtered
}

func matchesQuery(e Entry, query string) bool {
	for _, field := range []string{e.Name(), e.Period(), e.Summary()} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

// Lookup finds the first entry of the given singular kind with the given id.
// Missing or unknown arguments are an ordinary miss.
func Lookup(c Collections, kind string, id string) (Entry, bool) {
	k, ok := ParseKind(kind)
	if !ok || id == "" {
		return nil, false
	}

	switch k {
	case KindRuler:
		for _, r := range c.Rulers {
			if r.ID == id {
				return RulerEntry{Ruler: r}, true
			}
		}
	case KindPlace:
		for _, p := range c.Places {
			if p.ID == id {
				return PlaceEntry{Place: p}, true
			}
		}
	case KindBattle:
		for _, b := range c.Battles {
			if b.ID == id {
				return BattleEntry{Battle: b}, true
			}
		}
	case KindPerson:
		for _, p := range c.People {
			if p.ID == id {
				return PersonEntry{Person: p}, true
			}
		}
	}
	return nil, false
}
