package timeline

// present treats a missing year and year zero the same way: there is no year 0
// in the data and the pages always tested years for truthiness.
func present(year *int) (int, bool) {
	if year == nil || *year == 0 {
		return 0, false
	}
	return *year, true
}

// DisplayYear resolves the year an entry is shown under:
// battle year, then startYear, then endYear, then 0.
func DisplayYear(e Entry) int {
	switch v := e.(type) {
	case BattleEntry:
		if y, ok := present(v.Battle.Year); ok {
			return y
		}
	case RulerEntry:
		return firstYear(v.Ruler.StartYear, v.Ruler.EndYear)
	case PlaceEntry:
		return firstYear(v.Place.StartYear, v.Place.EndYear)
	case PersonEntry:
		return firstYear(v.Person.StartYear, v.Person.EndYear)
	}
	return 0
}

func firstYear(years ...*int) int {
	for _, year := range years {
		if y, ok := present(year); ok {
			return y
		}
	}
	return 0
}

// ActiveAt reports whether year falls in [start, end]. A missing end is
// open-ended; a missing start is never active.
func ActiveAt(year int, start, end *int) bool {
	if start == nil {
		return false
	}
	if end == nil {
		return year >= *start
	}
	return *start <= year && year <= *end
}

// VisibleAt is the map membership test. Battles are instants and only match
// their exact year; everything else is a range.
func VisibleAt(e Entry, year int) bool {
	switch v := e.(type) {
	case BattleEntry:
		return v.Battle.Year != nil && *v.Battle.Year == year
	case RulerEntry:
		return ActiveAt(year, v.Ruler.StartYear, v.Ruler.EndYear)
	case PlaceEntry:
		return ActiveAt(year, v.Place.StartYear, v.Place.EndYear)
	case PersonEntry:
		return ActiveAt(year, v.Person.StartYear, v.Person.EndYear)
	}
	return false
}

// duration is end-start+1 when both ends are known.
func duration(start, end *int) (int, bool) {
	if start == nil || end == nil {
		return 0, false
	}
	d := *end - *start + 1
	return d, d != 0
}
