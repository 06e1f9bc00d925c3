package leaderboard

import (
	"context"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/codr1/clubtable/internal/stats"
	"github.com/codr1/clubtable/internal/templates/layouts"
)

// View is one page of the leaderboard. Page is one based.
type View struct {
	Entries  []stats.Entry
	Page     int
	Pages    int
	PageSize int
	// BasePath is the page URL without query, used for pagination and the chart.
	BasePath string
	Title    string
	Colors   layouts.TeamColors
	// Exportable shows the spreadsheet link. Only administrators can download it.
	Exportable bool
}

// Rank is the position of the i-th row of the page.
func (v View) Rank(i int) int {
	return (v.Page-1)*v.PageSize + i + 1
}

// Board renders the leaderboard table with pagination. The whole block swaps on page
// changes.
func Board(view View) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, buildBoardHTML(view))
		return err
	})
}

func buildBoardHTML(view View) string {
	var builder strings.Builder
	builder.WriteString(`<div id="leaderboard" class="space-y-4">`)
	builder.WriteString(`<div class="flex items-center justify-between"><h1 class="text-2xl font-semibold">` + html.EscapeString(view.Title) + `</h1>`)
	if view.Exportable {
		builder.WriteString(`<a class="rounded border px-3 py-1 text-sm" href="/api/v1/exports/leaderboard.xlsx">Exporter</a>`)
	}
	builder.WriteString(`</div>`)

	if len(view.Entries) == 0 {
		builder.WriteString(`<div class="rounded border border-dashed p-6 text-center text-sm text-gray-500">Aucune participation enregistrée.</div></div>`)
		return builder.String()
	}

	chartPath := "/api/v1/leaderboard/chart.png"
	if view.BasePath == "/leaderboard/team" {
		chartPath += "?scope=team"
	}
	builder.WriteString(`<img class="w-full max-w-2xl" alt="Classement" src="` + chartPath + `">`)

	builder.WriteString(`<table class="w-full text-sm"><thead><tr class="text-left text-gray-500">` +
		`<th>#</th><th>Nom</th><th>Équipe</th><th class="text-right">Marqueur</th><th class="text-right">Chrono</th>` +
		`<th class="text-right">Arbitre</th><th class="text-right">Total</th></tr></thead><tbody>`)
	for i, entry := range view.Entries {
		builder.WriteString(`<tr class="border-t">`)
		builder.WriteString(fmt.Sprintf(`<td class="py-2">%d</td>`, view.Rank(i)))
		builder.WriteString(`<td>` + html.EscapeString(entry.Identity.Name) + `</td>`)
		builder.WriteString(`<td>` + view.Colors.TeamBadge(entry.BadgeTeam()) + `</td>`)
		builder.WriteString(fmt.Sprintf(`<td class="text-right">%d</td><td class="text-right">%d</td><td class="text-right">%d</td><td class="text-right font-semibold">%d</td>`,
			entry.Scorer, entry.Timer, entry.Referee, entry.Total))
		builder.WriteString(`</tr>`)
	}
	builder.WriteString(`</tbody></table>`)

	if view.Pages > 1 {
		builder.WriteString(`<nav class="flex items-center gap-3 text-sm">`)
		if view.Page > 1 {
			builder.WriteString(pageLink(view.BasePath, view.Page-1, "Précédent"))
		}
		builder.WriteString(fmt.Sprintf(`<span>Page %d / %d</span>`, view.Page, view.Pages))
		if view.Page < view.Pages {
			builder.WriteString(pageLink(view.BasePath, view.Page+1, "Suivant"))
		}
		builder.WriteString(`</nav>`)
	}
	builder.WriteString(`</div>`)
	return builder.String()
}

func pageLink(basePath string, page int, label string) string {
	href := fmt.Sprintf("%s?page=%d", basePath, page)
	return `<a class="text-blue-700" href="` + href + `" hx-get="` + href + `" hx-target="#leaderboard" hx-swap="outerHTML" hx-push-url="true">` + label + `</a>`
}
