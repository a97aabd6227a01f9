package entities

// Region descreve uma área política desenhada no atlas. Não participa da timeline.
type Region struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Dynasty     string      `json:"dynasty,omitempty"`
	Period      string      `json:"period,omitempty"`
	Color       string      `json:"color,omitempty"`
	ActiveYears []int       `json:"activeYears,omitempty"`
	Bounds      [][]float64 `json:"bounds,omitempty"`
	Summary     string      `json:"summary,omitempty"`
}
