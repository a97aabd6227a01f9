// Package timeline merges the four history collections into one year-ordered
// view and answers the questions the history, detail and map pages ask of it.
// Everything here is pure: callers own the loaded snapshot and re-run the
// selectors whenever the filter or the scrub year changes.
package timeline

import "historyatlas/src/domain/entities"

// Kind tags which collection an entry came from.
type Kind string

const (
	KindRuler  Kind = "ruler"
	KindPlace  Kind = "place"
	KindBattle Kind = "battle"
	KindPerson Kind = "person"
)

// Collection returns the plural collection name used by the REST surface.
func (k Kind) Collection() string {
	switch k {
	case KindRuler:
		return "rulers"
	case KindPlace:
		return "places"
	case KindBattle:
		return "battles"
	case KindPerson:
		return "people"
	}
	return ""
}

// ParseKind accepts the singular detail-link form ("battle").
func ParseKind(s string) (Kind, bool) {
	switch Kind(s) {
	case KindRuler, KindPlace, KindBattle, KindPerson:
		return Kind(s), true
	}
	return "", false
}

func kindFromCollection(s string) (Kind, bool) {
	for _, k := range []Kind{KindRuler, KindPlace, KindBattle, KindPerson} {
		if k.Collection() == s {
			return k, true
		}
	}
	return "", false
}

// Collections is one loaded snapshot of the timeline collections.
type Collections struct {
	Rulers  []entities.Ruler  `json:"rulers"`
	Places  []entities.Place  `json:"places"`
	Battles []entities.Battle `json:"battles"`
	People  []entities.Person `json:"people"`
}

// Entry is a tagged union over the four timeline variants. The unexported
// method keeps the set closed so type switches over it stay exhaustive.
type Entry interface {
	Kind() Kind
	ID() string
	Name() string
	Period() string
	Summary() string
	Image() string
	Location() *entities.Location

	entry()
}

type RulerEntry struct{ Ruler entities.Ruler }

type PlaceEntry struct{ Place entities.Place }

type BattleEntry struct{ Battle entities.Battle }

type PersonEntry struct{ Person entities.Person }

func (RulerEntry) Kind() Kind                     { return KindRuler }
func (e RulerEntry) ID() string                   { return e.Ruler.ID }
func (e RulerEntry) Name() string                 { return e.Ruler.Name }
func (e RulerEntry) Period() string               { return e.Ruler.Period }
func (e RulerEntry) Summary() string              { return e.Ruler.Summary }
func (e RulerEntry) Image() string                { return e.Ruler.Image }
func (e RulerEntry) Location() *entities.Location { return e.Ruler.Location }
func (RulerEntry) entry()                         {}

func (PlaceEntry) Kind() Kind                     { return KindPlace }
func (e PlaceEntry) ID() string                   { return e.Place.ID }
func (e PlaceEntry) Name() string                 { return e.Place.Name }
func (e PlaceEntry) Period() string               { return e.Place.Period }
func (e PlaceEntry) Summary() string              { return e.Place.Summary }
func (e PlaceEntry) Image() string                { return e.Place.Image }
func (e PlaceEntry) Location() *entities.Location { return e.Place.Location }
func (PlaceEntry) entry()                         {}

func (BattleEntry) Kind() Kind                     { return KindBattle }
func (e BattleEntry) ID() string                   { return e.Battle.ID }
func (e BattleEntry) Name() string                 { return e.Battle.Name }
func (e BattleEntry) Period() string               { return e.Battle.Period }
func (e BattleEntry) Summary() string              { return e.Battle.Summary }
func (e BattleEntry) Image() string                { return e.Battle.Image }
func (e BattleEntry) Location() *entities.Location { return e.Battle.Location }
func (BattleEntry) entry()                         {}

func (PersonEntry) Kind() Kind                     { return KindPerson }
func (e PersonEntry) ID() string                   { return e.Person.ID }
func (e PersonEntry) Name() string                 { return e.Person.Name }
func (e PersonEntry) Period() string               { return e.Person.Period }
func (e PersonEntry) Summary() string              { return e.Person.Summary }
func (e PersonEntry) Image() string                { return e.Person.Image }
func (e PersonEntry) Location() *entities.Location { return e.Person.Location }
func (PersonEntry) entry()                         {}

// Entries wraps every collection in its variant, rulers first, in collection order.
func (c Collections) Entries() []Entry {
	all := make([]Entry, 0, len(c.Rulers)+len(c.Places)+len(c.Battles)+len(c.People))
	for _, r := range c.Rulers {
		all = append(all, RulerEntry{Ruler: r})
	}
	for _, p := range c.Places {
		all = append(all, PlaceEntry{Place: p})
	}
	for _, b := range c.Battles {
		all = append(all, BattleEntry{Battle: b})
	}
	for _, p := range c.People {
		all = append(all, PersonEntry{Person: p})
	}
	return all
}
