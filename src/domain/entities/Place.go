package entities

type Place struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	// Categoria do lugar (ex: "capital"), não confundir com o tipo da coleção.
	Type      string    `json:"type,omitempty"`
	Period    string    `json:"period,omitempty"`
	Location  *Location `json:"location,omitempty"`
	StartYear *int      `json:"startYear,omitempty"`
	EndYear   *int      `json:"endYear,omitempty"`
	Image     string    `json:"image,omitempty"`
	Summary   string    `json:"summary,omitempty"`
}
