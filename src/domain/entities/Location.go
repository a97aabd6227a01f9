package entities

// Location é o par [latitude, longitude] usado pelo mapa.
type Location [2]float64

func (l Location) Latitude() float64 {
	return l[0]
}

func (l Location) Longitude() float64 {
	return l[1]
}
