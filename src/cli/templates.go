package cli

import (
	"io"
	"text/template"
	"time"

	"historyatlas/src/client/catalog"
	"historyatlas/src/domain/entities"

	"github.com/google/uuid"
)

var funcs = template.FuncMap{
	"price": catalog.FormatPrice,
	"date": func(t time.Time) string {
		return t.Format("2006-01-02 15:04")
	},
	"lineTotal": func(item entities.LineItem) float64 {
		return item.Price * float64(item.Quantity)
	},
	// shortID mostra os últimos 8 caracteres do id do pedido.
	"shortID": func(id uuid.UUID) string {
		s := id.String()
		return s[len(s)-8:]
	},
}

var templates = template.Must(template.New("historyctl").Funcs(funcs).Parse(`
{{- define "timeline" -}}
{{len .}} entries
{{range .}}
{{printf "%5d" .DisplayYear}}  [{{.Label}}] {{.Name}}{{if .Period}} ({{.Period}}){{end}}
       {{.Summary}}
       detail: --type {{.Kind}} --id {{.ID}}
{{else}}
No entries match.
{{end}}
{{- end}}

{{- define "detail" -}}
{{.Name}} [{{.Label}}]
{{if .Period}}{{.Period}}
{{end}}
{{- range .Fields}}  {{printf "%-15s" .Label}} {{.Value}}
{{end}}
{{- if .Location}}  {{printf "%-15s" "Location"}} {{.Location}}
{{end}}
{{- if .Summary}}
{{.Summary}}
{{end}}
{{- if .WikipediaURL}}
Read more: {{.WikipediaURL}}
{{end}}
{{- end}}

{{- define "map" -}}
Year {{.Year}} - layer {{.Layer}}
{{- with .Selected}}
Selected: {{.Name}}
{{- end}}
{{len .Markers}} on the map
{{range .Markers}}  * {{.Name}} - {{.Subtitle}} @ {{printf "%.2f, %.2f" (index .Location 0) (index .Location 1)}}
{{end}}
{{- range .List}}
{{if .Active}}[x]{{else}}[ ]{{end}} {{.Name}}{{if .Period}} ({{.Period}}){{end}}
{{- end}}
{{end}}

{{- define "products" -}}
{{len .}} products
{{range .}}
{{.Name}} [{{.Label}}] {{.Price}}
  {{.Description}}
  id: {{.ID}}
{{end}}
{{- end}}

{{- define "cart" -}}
{{if not .Items}}Your cart is empty.
{{else -}}
{{range .Items}}{{.Quantity}} x {{.Name}} @ {{price .Price}} = {{price (lineTotal .)}}
{{end}}
Items:    {{.Count}}
Subtotal: {{price .Subtotal}}
Total:    {{price .Total}}
{{end}}
{{- end}}

{{- define "order" -}}
Order #{{shortID .ID}} placed on {{date .CreatedAt}} - {{.Status}}
{{range .Items}}  {{.Quantity}} x {{.Name}} @ {{price .Price}}
{{end}}  Total: {{price .Total}}
{{end}}

{{- define "orders" -}}
{{range .}}{{template "order" .}}
{{else}}You have no orders yet.
{{end}}
{{- end}}

{{- define "user" -}}
{{.Name}} <{{.Email}}>
{{- with .Location}}{{if or .City .Country}}
{{.City}}{{if and .City .Country}}, {{end}}{{.Country}}{{end}}{{end}}
{{end}}
`))

func render(out io.Writer, name string, data any) error {
	return templates.ExecuteTemplate(out, name, data)
}
