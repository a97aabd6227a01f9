package entities

// Battle é um evento pontual: usa Year em vez de um intervalo.
type Battle struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Period   string    `json:"period,omitempty"`
	Location *Location `json:"location,omitempty"`
	Year     *int      `json:"year,omitempty"`
	Image    string    `json:"image,omitempty"`
	Summary  string    `json:"summary,omitempty"`
}
