package notify

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
	"time"
)

const eventDateLayout = "02.01.2006 15:04"

var funcs = map[string]interface{}{
	"date": func(t time.Time) string { return t.Format(eventDateLayout) },
}

var textBody = texttemplate.Must(texttemplate.New("text").Funcs(funcs).Parse(`New order {{.OrderID}}

Client:  {{.ClientName}}
Phone:   {{.ClientPhone}}
Email:   {{.ClientEmail}}
Address: {{.Address}}
Event:   {{date .EventDate}}
Locale:  {{.Locale}}
{{range .Lines}}
{{.MenuName}}: {{.Portions}} x {{.PricePerPortion}} = {{.TotalPrice}}
{{- range .Dishes}}
  - {{.}}
{{- end}}
{{end}}
Total: {{.TotalPrice}} ({{.TotalPortions}} portions)
{{- if .Message}}

Message:
{{.Message}}
{{- end}}
`))

var htmlBody = htmltemplate.Must(htmltemplate.New("html").Funcs(funcs).Parse(`<!doctype html>
<html><body>
<h2>New order {{.OrderID}}</h2>
<table>
<tr><td>Client</td><td>{{.ClientName}}</td></tr>
<tr><td>Phone</td><td>{{.ClientPhone}}</td></tr>
<tr><td>Email</td><td>{{.ClientEmail}}</td></tr>
<tr><td>Address</td><td>{{.Address}}</td></tr>
<tr><td>Event</td><td>{{date .EventDate}}</td></tr>
<tr><td>Locale</td><td>{{.Locale}}</td></tr>
</table>
{{range .Lines}}
<h3>{{.MenuName}}</h3>
<p>{{.Portions}} &times; {{.PricePerPortion}} = <strong>{{.TotalPrice}}</strong></p>
<ul>{{range .Dishes}}<li>{{.}}</li>{{end}}</ul>
{{end}}
<p><strong>Total: {{.TotalPrice}}</strong> ({{.TotalPortions}} portions)</p>
{{if .Message}}<p>{{.Message}}</p>{{end}}
</body></html>
`))

func Subject(msg OrderPlaced) string {
	return fmt.Sprintf("New order: %s, %s (%d portions)", msg.ClientName, msg.EventDate.Format(eventDateLayout), msg.TotalPortions)
}

// Render returns the plain text and HTML bodies for msg.
func Render(msg OrderPlaced) (string, string, error) {
	var text, html bytes.Buffer
	if err := textBody.Execute(&text, msg); err != nil {
		return "", "", fmt.Errorf("render text body: %w", err)
	}
	if err := htmlBody.Execute(&html, msg); err != nil {
		return "", "", fmt.Errorf("render html body: %w", err)
	}
	return text.String(), html.String(), nil
}
