package cli

import (
	"fmt"
	"strings"

	"historyatlas/src/timeline"
)

func (c *TimelineCommand) Execute(args []string) error {
	r := c.runner
	return r.withApp(func(a *app) error {
		collections, err := a.client.FetchHistory(r.ctx)
		if err != nil {
			return err
		}

		filter := timeline.Filter{Query: c.Search, Type: timeline.TypeFilter(c.Type)}
		entries := filter.Apply(timeline.Aggregate(collections))

		return render(r.out, "timeline", timeline.Cards(entries))
	})
}

func (c *DetailCommand) Execute(args []string) error {
	r := c.runner
	return r.withApp(func(a *app) error {
		collections, err := a.client.FetchHistory(r.ctx)
		if err != nil {
			return err
		}

		entry, ok := timeline.Lookup(collections, c.Type, c.ID)
		if !ok {
			return fmt.Errorf("%s %q not found, run `historyctl timeline` to browse entries", c.Type, c.ID)
		}

		return render(r.out, "detail", timeline.NewDetail(entry))
	})
}

type mapView struct {
	Year     int
	Layer    timeline.Layer
	Selected timeline.Entry
	Markers  []timeline.Marker
	List     []timeline.ListItem
}

func (c *MapCommand) Execute(args []string) error {
	r := c.runner
	return r.withApp(func(a *app) error {
		collections, err := a.client.FetchHistory(r.ctx)
		if err != nil {
			return err
		}

		atlas := timeline.NewAtlas()
		atlas.SetYear(c.Year)
		if layer, ok := timeline.ParseLayer(c.Layer); ok {
			atlas.SetLayer(layer)
		}

		if c.Focus != "" {
			kind, id, _ := strings.Cut(c.Focus, "/")
			entry, ok := timeline.Lookup(collections, kind, id)
			if !ok {
				return fmt.Errorf("%s not found", c.Focus)
			}
			atlas.Select(entry)
		}

		return render(r.out, "map", mapView{
			Year:     atlas.Year,
			Layer:    atlas.Layer,
			Selected: atlas.Selected,
			Markers:  atlas.Markers(collections),
			List:     atlas.ListPanel(collections),
		})
	})
}
