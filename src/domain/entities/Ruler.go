package entities

type Ruler struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Title     string    `json:"title,omitempty"`
	Period    string    `json:"period,omitempty"`
	Location  *Location `json:"location,omitempty"`
	StartYear *int      `json:"startYear,omitempty"`
	EndYear   *int      `json:"endYear,omitempty"`
	Image     string    `json:"image,omitempty"`
	Summary   string    `json:"summary,omitempty"`
}
