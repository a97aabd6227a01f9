package timeline

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"historyatlas/src/domain/entities"
)

const (
	portraitPlaceholder = "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=400&h=300&fit=crop"
	placePlaceholder    = "https://images.unsplash.com/photo-1506905925346-21bda4d32df4?w=400&h=300&fit=crop"
	battlePlaceholder   = "https://images.unsplash.com/photo-1574375927938-d5a98e8ffe85?w=400&h=300&fit=crop"

	cardSummaryLimit = 120
	listSummaryLimit = 100

	noSummary    = "No summary available."
	notAvailable = "N/A"
	wikipediaURL = "https://en.wikipedia.org/wiki/"
)

// Placeholder is the image shown for an entry without its own.
func Placeholder(k Kind) string {
	switch k {
	case KindPlace:
		return placePlaceholder
	case KindBattle:
		return battlePlaceholder
	}
	return portraitPlaceholder
}

func imageOrPlaceholder(e Entry) string {
	if e.Image() != "" {
		return e.Image()
	}
	return Placeholder(e.Kind())
}

// truncate cuts s to limit runes and appends suffix when something was cut.
func truncate(s string, limit int, suffix string) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + suffix
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// Card is one tile of the history timeline.
type Card struct {
	Kind        Kind
	ID          string
	DisplayYear int
	Label       string
	Name        string
	Period      string
	Summary     string
	Image       string
}

// Label is the short type badge of a card.
func Label(e Entry) string {
	switch v := e.(type) {
	case RulerEntry:
		return "Ruler"
	case PlaceEntry:
		return orDefault(v.Place.Type, "Place")
	case BattleEntry:
		return "Battle"
	case PersonEntry:
		return orDefault(v.Person.Title, "Person")
	}
	return ""
}

func NewCard(e Entry) Card {
	return Card{
		Kind:        e.Kind(),
		ID:          e.ID(),
		DisplayYear: DisplayYear(e),
		Label:       Label(e),
		Name:        e.Name(),
		Period:      e.Period(),
		Summary:     truncate(e.Summary(), cardSummaryLimit, "…"),
		Image:       imageOrPlaceholder(e),
	}
}

func Cards(entries []Entry) []Card {
	cards := make([]Card, len(entries))
	for i, e := range entries {
		cards[i] = NewCard(e)
	}
	return cards
}

// DetailField is one row of the detail page facts grid.
type DetailField struct {
	Label string
	Value string
}

type Detail struct {
	Kind         Kind
	ID           string
	Label        string
	Name         string
	Period       string
	Summary      string
	Image        string
	Fields       []DetailField
	Location     string
	WikipediaURL string
}

func NewDetail(e Entry) Detail {
	d := Detail{
		Kind:         e.Kind(),
		ID:           e.ID(),
		Name:         e.Name(),
		Period:       e.Period(),
		Summary:      orDefault(e.Summary(), noSummary),
		Image:        imageOrPlaceholder(e),
		Location:     FormatLocation(e.Location()),
		WikipediaURL: WikipediaURL(e.Name()),
	}

	switch v := e.(type) {
	case RulerEntry:
		d.Label = orDefault(v.Ruler.Title, "Ruler")
		d.Fields = []DetailField{
			{Label: "Title", Value: orDefault(v.Ruler.Title, notAvailable)},
			{Label: "Reign Duration", Value: formatDuration(v.Ruler.StartYear, v.Ruler.EndYear)},
			{Label: "Start Year", Value: formatYear(v.Ruler.StartYear)},
			{Label: "End Year", Value: formatYear(v.Ruler.EndYear)},
		}
	case PlaceEntry:
		d.Label = orDefault(v.Place.Type, "Place")
		d.Fields = []DetailField{
			{Label: "Type", Value: orDefault(v.Place.Type, "Place")},
			{Label: "Duration", Value: formatDuration(v.Place.StartYear, v.Place.EndYear)},
			{Label: "Start Year", Value: formatYear(v.Place.StartYear)},
			{Label: "End Year", Value: formatYear(v.Place.EndYear)},
		}
	case BattleEntry:
		d.Label = "Battle"
		d.Fields = []DetailField{
			{Label: "Year", Value: formatYear(v.Battle.Year)},
			{Label: "Type", Value: "Battle"},
		}
	case PersonEntry:
		d.Label = orDefault(v.Person.Title, "Person")
		d.Fields = []DetailField{
			{Label: "Title", Value: orDefault(v.Person.Title, notAvailable)},
			{Label: "Lifespan", Value: formatDuration(v.Person.StartYear, v.Person.EndYear)},
			{Label: "Born", Value: formatYear(v.Person.StartYear)},
			{Label: "Died", Value: formatYear(v.Person.EndYear)},
		}
	}
	return d
}

func formatYear(year *int) string {
	if year == nil {
		return notAvailable
	}
	return strconv.Itoa(*year)
}

func formatDuration(start, end *int) string {
	if d, ok := duration(start, end); ok {
		return fmt.Sprintf("%d years", d)
	}
	return notAvailable
}

// FormatLocation renders coordinates as "41.01°N, 28.98°E"; empty when unknown.
func FormatLocation(l *entities.Location) string {
	if l == nil {
		return ""
	}
	return fmt.Sprintf("%.2f°N, %.2f°E", l.Latitude(), l.Longitude())
}

// WikipediaURL builds the English Wikipedia article link for a name.
func WikipediaURL(name string) string {
	title := strings.Join(strings.Fields(name), "_")
	if title == "" {
		return ""
	}
	return wikipediaURL + url.PathEscape(title)
}

// Marker is a map pin.
type Marker struct {
	Kind     Kind
	ID       string
	Name     string
	Subtitle string
	Location entities.Location
	Image    string
}

func subtitle(e Entry) string {
	switch v := e.(type) {
	case RulerEntry:
		return orDefault(v.Ruler.Title, v.Ruler.Period)
	case PlaceEntry:
		return orDefault(v.Place.Type, "Place")
	case BattleEntry:
		if v.Battle.Period != "" {
			return v.Battle.Period
		}
		return formatYear(v.Battle.Year)
	case PersonEntry:
		return orDefault(v.Person.Title, v.Person.Period)
	}
	return ""
}

// NewMarker returns false for entries that cannot be placed on the map.
func NewMarker(e Entry) (Marker, bool) {
	loc := e.Location()
	if loc == nil {
		return Marker{}, false
	}
	return Marker{
		Kind:     e.Kind(),
		ID:       e.ID(),
		Name:     e.Name(),
		Subtitle: subtitle(e),
		Location: *loc,
		Image:    imageOrPlaceholder(e),
	}, true
}
