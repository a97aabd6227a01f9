package stubs

import (
	"historyatlas/src/domain/entities"

	"github.com/brianvoe/gofakeit/v6"
)

func fakeLocation() *entities.Location {
	return &entities.Location{gofakeit.Latitude(), gofakeit.Longitude()}
}

// Year returns a pointer to y, for optional year fields.
func Year(y int) *int {
	return &y
}

// ############################################################
// ########################## RULER ###########################
// ############################################################

type RulerStub struct {
	ruler entities.Ruler
}

func NewRulerStub() RulerStub {
	start := gofakeit.IntRange(800, 1900)

	return RulerStub{ruler: entities.Ruler{
		ID:        gofakeit.UUID(),
		Name:      gofakeit.Name(),
		Title:     gofakeit.JobTitle(),
		Period:    gofakeit.Word(),
		Location:  fakeLocation(),
		StartYear: Year(start),
		EndYear:   Year(start + gofakeit.IntRange(1, 40)),
		Image:     gofakeit.URL(),
		Summary:   gofakeit.Sentence(12),
	}}
}

func (rs RulerStub) WithID(id string) RulerStub {
	rs.ruler.ID = id
	return rs
}

func (rs RulerStub) WithName(name string) RulerStub {
	rs.ruler.Name = name
	return rs
}

func (rs RulerStub) WithTitle(title string) RulerStub {
	rs.ruler.Title = title
	return rs
}

func (rs RulerStub) WithPeriod(period string) RulerStub {
	rs.ruler.Period = period
	return rs
}

func (rs RulerStub) WithSummary(summary string) RulerStub {
	rs.ruler.Summary = summary
	return rs
}

func (rs RulerStub) WithImage(image string) RulerStub {
	rs.ruler.Image = image
	return rs
}

func (rs RulerStub) WithLocation(location *entities.Location) RulerStub {
	rs.ruler.Location = location
	return rs
}

// WithYears sets the reign; nil leaves that end open.
func (rs RulerStub) WithYears(start, end *int) RulerStub {
	rs.ruler.StartYear = start
	rs.ruler.EndYear = end
	return rs
}

func (rs RulerStub) Get() entities.Ruler {
	return rs.ruler
}

// ############################################################
// ########################## PLACE ###########################
// ############################################################

type PlaceStub struct {
	place entities.Place
}

func NewPlaceStub() PlaceStub {
	start := gofakeit.IntRange(800, 1900)

	return PlaceStub{place: entities.Place{
		ID:        gofakeit.UUID(),
		Name:      gofakeit.City(),
		Type:      gofakeit.RandomString([]string{"capital", "city", "fortress", "port"}),
		Period:    gofakeit.Word(),
		Location:  fakeLocation(),
		StartYear: Year(start),
		EndYear:   Year(start + gofakeit.IntRange(10, 300)),
		Image:     gofakeit.URL(),
		Summary:   gofakeit.Sentence(12),
	}}
}

func (ps PlaceStub) WithID(id string) PlaceStub {
	ps.place.ID = id
	return ps
}

func (ps PlaceStub) WithName(name string) PlaceStub {
	ps.place.Name = name
	return ps
}

func (ps PlaceStub) WithType(placeType string) PlaceStub {
	ps.place.Type = placeType
	return ps
}

func (ps PlaceStub) WithSummary(summary string) PlaceStub {
	ps.place.Summary = summary
	return ps
}

func (ps PlaceStub) WithImage(image string) PlaceStub {
	ps.place.Image = image
	return ps
}

func (ps PlaceStub) WithLocation(location *entities.Location) PlaceStub {
	ps.place.Location = location
	return ps
}

func (ps PlaceStub) WithYears(start, end *int) PlaceStub {
	ps.place.StartYear = start
	ps.place.EndYear = end
	return ps
}

func (ps PlaceStub) Get() entities.Place {
	return ps.place
}

// ############################################################
// ######################### BATTLE ###########################
// ############################################################

type BattleStub struct {
	battle entities.Battle
}

func NewBattleStub() BattleStub {
	return BattleStub{battle: entities.Battle{
		ID:       gofakeit.UUID(),
		Name:     "Battle of " + gofakeit.City(),
		Period:   gofakeit.Word(),
		Location: fakeLocation(),
		Year:     Year(gofakeit.IntRange(800, 1950)),
		Image:    gofakeit.URL(),
		Summary:  gofakeit.Sentence(12),
	}}
}

func (bs BattleStub) WithID(id string) BattleStub {
	bs.battle.ID = id
	return bs
}

func (bs BattleStub) WithName(name string) BattleStub {
	bs.battle.Name = name
	return bs
}

func (bs BattleStub) WithPeriod(period string) BattleStub {
	bs.battle.Period = period
	return bs
}

func (bs BattleStub) WithSummary(summary string) BattleStub {
	bs.battle.Summary = summary
	return bs
}

func (bs BattleStub) WithLocation(location *entities.Location) BattleStub {
	bs.battle.Location = location
	return bs
}

func (bs BattleStub) WithYear(y *int) BattleStub {
	bs.battle.Year = y
	return bs
}

func (bs BattleStub) Get() entities.Battle {
	return bs.battle
}

// ############################################################
// ######################### PERSON ###########################
// ############################################################

type PersonStub struct {
	person entities.Person
}

func NewPersonStub() PersonStub {
	born := gofakeit.IntRange(800, 1900)

	return PersonStub{person: entities.Person{
		ID:        gofakeit.UUID(),
		Name:      gofakeit.Name(),
		Title:     gofakeit.JobTitle(),
		Period:    gofakeit.Word(),
		Location:  fakeLocation(),
		StartYear: Year(born),
		EndYear:   Year(born + gofakeit.IntRange(20, 90)),
		Image:     gofakeit.URL(),
		Summary:   gofakeit.Sentence(12),
	}}
}

func (ps PersonStub) WithID(id string) PersonStub {
	ps.person.ID = id
	return ps
}

func (ps PersonStub) WithName(name string) PersonStub {
	ps.person.Name = name
	return ps
}

func (ps PersonStub) WithTitle(title string) PersonStub {
	ps.person.Title = title
	return ps
}

func (ps PersonStub) WithSummary(summary string) PersonStub {
	ps.person.Summary = summary
	return ps
}

func (ps PersonStub) WithYears(start, end *int) PersonStub {
	ps.person.StartYear = start
	ps.person.EndYear = end
	return ps
}

func (ps PersonStub) Get() entities.Person {
	return ps.person
}

// ############################################################
// ######################### REGION ###########################
// ############################################################

type RegionStub struct {
	region entities.Region
}

func NewRegionStub() RegionStub {
	return RegionStub{region: entities.Region{
		ID:          gofakeit.UUID(),
		Name:        gofakeit.Country(),
		Dynasty:     gofakeit.LastName(),
		Period:      gofakeit.Word(),
		Color:       gofakeit.HexColor(),
		ActiveYears: []int{gofakeit.IntRange(800, 1900)},
		Bounds:      [][]float64{{gofakeit.Latitude(), gofakeit.Longitude()}, {gofakeit.Latitude(), gofakeit.Longitude()}},
		Summary:     gofakeit.Sentence(8),
	}}
}

func (rs RegionStub) WithID(id string) RegionStub {
	rs.region.ID = id
	return rs
}

func (rs RegionStub) Get() entities.Region {
	return rs.region
}
