package timeline

import (
	"cmp"
	"encoding/json"
	"fmt"
	"slices"

	"historyatlas/src/domain/entities"
)

// Item is one element of the /api/timeline response: the entity document
// flattened with its plural collection name under "type".
type Item struct {
	Entry Entry
}

// ServerTimeline builds the /api/timeline payload. Collections are merged as
// rulers, battles, people, places and stably sorted by startYear, falling back
// to a battle's year, with missing years sorting as 0.
func ServerTimeline(c Collections) []Item {
	items := make([]Item, 0, len(c.Rulers)+len(c.Battles)+len(c.People)+len(c.Places))
	for _, r := range c.Rulers {
		items = append(items, Item{Entry: RulerEntry{Ruler: r}})
	}
	for _, b := range c.Battles {
		items = append(items, Item{Entry: BattleEntry{Battle: b}})
	}
	for _, p := range c.People {
		items = append(items, Item{Entry: PersonEntry{Person: p}})
	}
	for _, p := range c.Places {
		items = append(items, Item{Entry: PlaceEntry{Place: p}})
	}

	slices.SortStableFunc(items, func(a, b Item) int {
		return cmp.Compare(sortYear(a.Entry), sortYear(b.Entry))
	})
	return items
}

func sortYear(e Entry) int {
	switch v := e.(type) {
	case BattleEntry:
		return firstYear(v.Battle.Year)
	case RulerEntry:
		return firstYear(v.Ruler.StartYear)
	case PlaceEntry:
		return firstYear(v.Place.StartYear)
	case PersonEntry:
		return firstYear(v.Person.StartYear)
	}
	return 0
}

func (i Item) document() (any, error) {
	switch v := i.Entry.(type) {
	case RulerEntry:
		return v.Ruler, nil
	case PlaceEntry:
		return v.Place, nil
	case BattleEntry:
		return v.Battle, nil
	case PersonEntry:
		return v.Person, nil
	}
	return nil, fmt.Errorf("timeline item without entry")
}

func (i Item) MarshalJSON() ([]byte, error) {
	doc, err := i.document()
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}

	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}

	tag, _ := json.Marshal(i.Entry.Kind().Collection())
	fields["type"] = tag

	return json.Marshal(fields)
}

func (i *Item) UnmarshalJSON(data []byte) error {
	var tag struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &tag); err != nil {
		return err
	}

	kind, ok := kindFromCollection(tag.Type)
	if !ok {
		return fmt.Errorf("unknown timeline item type %q", tag.Type)
	}

	switch kind {
	case KindRuler:
		var r entities.Ruler
		if err := json.Unmarshal(data, &r); err != nil {
			return err
		}
		i.Entry = RulerEntry{Ruler: r}
	case KindPlace:
		var p entities.Place
		if err := json.Unmarshal(data, &p); err != nil {
			return err
		}
		// "type" carried the collection tag, not the place category.
		p.Type = ""
		i.Entry = PlaceEntry{Place: p}
	case KindBattle:
		var b entities.Battle
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		i.Entry = BattleEntry{Battle: b}
	case KindPerson:
		var p entities.Person
		if err := json.Unmarshal(data, &p); err != nil {
			return err
		}
		i.Entry = PersonEntry{Person: p}
	}
	return nil
}
