package createapp

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/nakamaio/create-iota-app/internal/templaterepo"
)

// renderCatalog formats the available templates for the help text, in catalog order.
func renderCatalog(catalog *templaterepo.Catalog) string {
	t := table.NewWriter()
	t.SetTitle("Available templates")
	t.AppendHeader(table.Row{"Template", "Repository"})

	for _, tmpl := range catalog.Templates() {
		t.AppendRow(table.Row{tmpl.Title, tmpl.Source.URL()})
	}

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft},
		{Number: 2, Align: text.AlignLeft},
	})
	t.SetStyle(table.StyleRounded)

	return t.Render()
}
