package timeline

const (
	MinYear     = 800
	MaxYear     = 2026
	InitialYear = 1780
)

// Layer is the map overlay currently shown. Values match the plural
// collection names.
type Layer string

const (
	LayerPlaces  Layer = "places"
	LayerRulers  Layer = "rulers"
	LayerBattles Layer = "battles"
	LayerPeople  Layer = "people"
)

func ParseLayer(s string) (Layer, bool) {
	switch Layer(s) {
	case LayerPlaces, LayerRulers, LayerBattles, LayerPeople:
		return Layer(s), true
	}
	return "", false
}

// Atlas holds the map page state. Collections are passed to the selectors
// instead of being stored so a reload never leaves stale data behind.
type Atlas struct {
	Year     int
	Layer    Layer
	Selected Entry
}

func NewAtlas() *Atlas {
	return &Atlas{Year: InitialYear, Layer: LayerPlaces}
}

// SetYear moves the scrub year, clamped to the slider bounds.
func (a *Atlas) SetYear(year int) {
	a.Year = min(max(year, MinYear), MaxYear)
}

func (a *Atlas) SetLayer(layer Layer) {
	if _, ok := ParseLayer(string(layer)); ok {
		a.Layer = layer
	}
}

// Select focuses an entry and jumps the scrub year to it when the entry's
// year is reachable on the slider.
func (a *Atlas) Select(e Entry) {
	a.Selected = e
	if year := DisplayYear(e); year >= MinYear && year <= MaxYear {
		a.Year = year
	}
}

func (a *Atlas) ClearSelection() {
	a.Selected = nil
}

func (a *Atlas) layerEntries(c Collections) []Entry {
	var layer Collections
	switch a.Layer {
	case LayerRulers:
		layer.Rulers = c.Rulers
	case LayerBattles:
		layer.Battles = c.Battles
	case LayerPeople:
		layer.People = c.People
	default:
		layer.Places = c.Places
	}
	return layer.Entries()
}

// Markers returns pins of the active layer visible at the scrub year.
func (a *Atlas) Markers(c Collections) []Marker {
	var markers []Marker
	for _, e := range a.layerEntries(c) {
		if !VisibleAt(e, a.Year) {
			continue
		}
		if m, ok := NewMarker(e); ok {
			markers = append(markers, m)
		}
	}
	return markers
}

// ListItem is one row of the side panel listing the active layer.
type ListItem struct {
	Kind    Kind
	ID      string
	Name    string
	Period  string
	Summary string
	Image   string
	Active  bool
}

// ListPanel lists every entry of the active layer, flagging those visible at
// the scrub year.
func (a *Atlas) ListPanel(c Collections) []ListItem {
	entries := a.layerEntries(c)
	items := make([]ListItem, 0, len(entries))
	for _, e := range entries {
		period := e.Period()
		if b, ok := e.(BattleEntry); ok && period == "" {
			period = formatYear(b.Battle.Year)
		}
		items = append(items, ListItem{
			Kind:    e.Kind(),
			ID:      e.ID(),
			Name:    e.Name(),
			Period:  period,
			Summary: truncate(e.Summary(), listSummaryLimit, "..."),
			Image:   imageOrPlaceholder(e),
			Active:  VisibleAt(e, a.Year),
		})
	}
	return items
}
