package matches

import (
	"context"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/codr1/clubtable/internal/designation"
	"github.com/codr1/clubtable/internal/roster"
	"github.com/codr1/clubtable/internal/templates/layouts"
)

// MatchList renders the match table. Admin rows get edit and delete controls.
func MatchList(rows []Row, colors layouts.TeamColors, admin bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, buildMatchListHTML(rows, colors, admin))
		return err
	})
}

// AdminPage is the administrator match list with a create button.
func AdminPage(rows []Row, colors layouts.TeamColors) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div class="space-y-4"><div class="flex items-center justify-between"><h1 class="text-2xl font-semibold">Matchs</h1>`+
			`<div class="flex gap-2"><a class="rounded border px-3 py-1 text-sm" href="/api/v1/exports/matches.xlsx">Exporter</a>`+
			`<button class="rounded bg-gray-900 px-3 py-1 text-sm text-white" hx-post="/api/v1/matches" hx-on::after-request="window.location.reload()">Nouveau match</button></div></div>`+
			`<div id="matches-list">`); err != nil {
			return err
		}
		if _, err := io.WriteString(w, buildMatchListHTML(rows, colors, true)); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</div></div>`)
		return err
	})
}

// SheetView renders the match sheet with one input per visible slot.
func SheetView(sheet Sheet) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, buildSheetHTML(sheet))
		return err
	})
}

func buildMatchListHTML(rows []Row, colors layouts.TeamColors, admin bool) string {
	if len(rows) == 0 {
		return `<div class="rounded border border-dashed p-6 text-center text-sm text-gray-500">Aucun match programmé.</div>`
	}

	var builder strings.Builder
	builder.WriteString(`<table class="w-full text-sm"><thead><tr class="text-left text-gray-500"><th>Date</th><th>Équipe</th><th>Adversaire</th><th>Table</th><th></th></tr></thead><tbody>`)
	for _, row := range rows {
		match := row.Match
		builder.WriteString(fmt.Sprintf(`<tr id="match-%d" class="border-t">`, match.ID))
		builder.WriteString(`<td class="py-2">` + html.EscapeString(match.Date) + ` ` + html.EscapeString(match.Time) + `</td>`)
		builder.WriteString(`<td>` + colors.TeamBadge(match.Category) + `</td>`)
		builder.WriteString(`<td>` + html.EscapeString(match.Opponent) + `</td>`)
		builder.WriteString(`<td>` + designationHTML(match.Designation, row.Assignments, colors))
		if row.Open > 0 {
			builder.WriteString(fmt.Sprintf(` <span class="text-xs text-amber-700">%d à pourvoir</span>`, row.Open))
		}
		builder.WriteString(`</td><td class="text-right">`)
		if admin || !row.Granted.IsEmpty() || match.ClubReferee {
			builder.WriteString(fmt.Sprintf(`<a class="text-blue-700" href="/matches/%d">Feuille</a>`, match.ID))
		}
		if admin {
			builder.WriteString(fmt.Sprintf(` <button class="text-red-700" hx-delete="/api/v1/matches/%d" hx-confirm="Supprimer ce match ?" hx-target="#match-%d" hx-swap="delete">Supprimer</button>`, match.ID, match.ID))
		}
		builder.WriteString(`</td></tr>`)
	}
	builder.WriteString(`</tbody></table>`)
	return builder.String()
}

// designationHTML shows decoded teams as badges. Text that decodes to nothing is shown
// as typed.
func designationHTML(raw string, assignments []designation.Assignment, colors layouts.TeamColors) string {
	if len(assignments) == 0 {
		return html.EscapeString(raw)
	}
	parts := make([]string, 0, len(assignments))
	for _, assignment := range assignments {
		parts = append(parts, colors.TeamBadge(assignment.Team)+
			` <span class="text-xs text-gray-600">`+html.EscapeString(strings.Join(assignment.Roles.Labels(), ", "))+`</span>`)
	}
	return strings.Join(parts, " ")
}

func buildSheetHTML(sheet Sheet) string {
	match := sheet.Match

	var builder strings.Builder
	builder.WriteString(`<div id="match-sheet" class="space-y-4">`)
	builder.WriteString(`<div class="flex flex-wrap items-center gap-2"><h1 class="text-2xl font-semibold">` +
		html.EscapeString(match.Category) + ` – ` + html.EscapeString(match.Opponent) + `</h1>`)
	if sheet.HomeTeam != nil {
		builder.WriteString(layouts.JerseyBadge(*sheet.HomeTeam, match.AlternateJersey))
	}
	builder.WriteString(`</div>`)
	builder.WriteString(`<p class="text-sm text-gray-600">` + html.EscapeString(match.Date) + ` à ` + html.EscapeString(match.Time) +
		` · rendez-vous ` + html.EscapeString(match.MeetingTime) + `</p>`)
	builder.WriteString(`<p class="text-sm">Table : ` + designationHTML(match.Designation, sheet.Assignments, sheet.Colors) + `</p>`)

	if sheet.CanEdit() {
		builder.WriteString(fmt.Sprintf(`<form hx-patch="/api/v1/matches/%d/officials" hx-target="#match-sheet" hx-swap="outerHTML" class="space-y-3">`, match.ID))
	} else {
		builder.WriteString(`<div class="space-y-3">`)
	}
	for _, slot := range sheet.Slots {
		if slot.Hidden {
			continue
		}
		builder.WriteString(`<div class="flex items-center gap-3"><label class="w-40 text-sm font-medium" for="slot-` + string(slot.Slot) + `">` + html.EscapeString(slot.Label) + `</label>`)
		if slot.Editable {
			builder.WriteString(`<input id="slot-` + string(slot.Slot) + `" name="` + string(slot.Slot) + `" list="roster-options" class="flex-1 rounded border p-1" value="` + html.EscapeString(slot.Value) + `">`)
		} else {
			builder.WriteString(`<span class="flex-1">` + html.EscapeString(slot.Value) + `</span>`)
		}
		if slot.Identity != nil {
			builder.WriteString(identityHTML(*slot.Identity, sheet.Colors))
		}
		builder.WriteString(`</div>`)
	}
	if sheet.CanEdit() {
		builder.WriteString(`<datalist id="roster-options">`)
		for _, option := range sheet.Options {
			builder.WriteString(`<option value="` + html.EscapeString(option) + `">`)
		}
		builder.WriteString(`</datalist><button type="submit" class="rounded bg-gray-900 px-3 py-1 text-white">Enregistrer</button></form>`)
	} else {
		builder.WriteString(`</div>`)
	}
	builder.WriteString(`</div>`)
	return builder.String()
}

func identityHTML(identity roster.Entry, colors layouts.TeamColors) string {
	var builder strings.Builder
	builder.WriteString(`<span class="flex items-center gap-1">`)
	if identity.ImageURL != nil && *identity.ImageURL != "" {
		builder.WriteString(`<img class="h-6 w-6 rounded-full object-cover" alt="" src="` + html.EscapeString(*identity.ImageURL) + `">`)
	}
	builder.WriteString(colors.TeamBadge(identity.TeamName()))
	builder.WriteString(`</span>`)
	return builder.String()
}
