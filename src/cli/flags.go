package cli

// GlobalFlags valem para todos os subcomandos.
type GlobalFlags struct {
	APIURL   string `long:"api-url" env:"HISTORYATLAS_API_URL" description:"Base URL of the API" default:"http://localhost:5000/api"`
	StateDir string `long:"state-dir" env:"HISTORYATLAS_STATE_DIR" description:"Directory holding the session and cart (default ~/.historyatlas)"`
	Verbose  bool   `long:"verbose" description:"Log request failures in detail"`
}

// TimelineCommand lista a timeline agregada.
type TimelineCommand struct {
	Type   string `long:"type" description:"Entry type" choice:"all" choice:"rulers" choice:"places" choice:"battles" choice:"people" default:"all"`
	Search string `long:"search" description:"Case-insensitive text over name, period and summary"`

	runner *Runner
}

// DetailCommand mostra a página de detalhe de uma entrada.
type DetailCommand struct {
	Type string `long:"type" description:"Entry kind" choice:"ruler" choice:"place" choice:"battle" choice:"person" required:"true"`
	ID   string `long:"id" description:"Entry id" required:"true"`

	runner *Runner
}

// MapCommand mostra os marcadores visíveis em um ano.
type MapCommand struct {
	Year  int    `long:"year" description:"Scrub year (clamped to 800-2026)" default:"1780"`
	Layer string `long:"layer" description:"Map layer" choice:"places" choice:"rulers" choice:"battles" choice:"people" default:"places"`
	Focus string `long:"focus" description:"Select an entry as kind/id and jump to its year"`

	runner *Runner
}

type ProductsCommand struct {
	Category string `long:"category" description:"Product category, or all" default:"all"`
	Search   string `long:"search" description:"Case-insensitive text over name and description"`
	Featured int    `long:"featured" description:"Show only the first N products of the listing"`

	runner *Runner
}

type CartAddCommand struct {
	ID string `long:"id" description:"Product id" required:"true"`

	runner *Runner
}

type CartRemoveCommand struct {
	ID string `long:"id" description:"Product id" required:"true"`

	runner *Runner
}

type CartQuantityCommand struct {
	ID    string `long:"id" description:"Product id" required:"true"`
	Delta int    `long:"delta" description:"Quantity change; reaching zero removes the line" required:"true"`

	runner *Runner
}

type CartShowCommand struct {
	runner *Runner
}

type CheckoutCommand struct {
	runner *Runner
}

type SignupCommand struct {
	Name     string `long:"name" required:"true"`
	Email    string `long:"email" required:"true"`
	Password string `long:"password" required:"true"`
	City     string `long:"city"`
	Country  string `long:"country"`

	runner *Runner
}

type LoginCommand struct {
	Email    string `long:"email" required:"true"`
	Password string `long:"password" required:"true"`

	runner *Runner
}

type LogoutCommand struct {
	runner *Runner
}

type WhoamiCommand struct {
	runner *Runner
}

type OrdersCommand struct {
	runner *Runner
}
