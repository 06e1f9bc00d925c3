package layouts

import (
	"context"
	"html"
	"io"

	"github.com/a-h/templ"

	"github.com/codr1/clubtable/internal/api/authz"
)

const htmxScript = `<script src="https://unpkg.com/htmx.org@2.0.4"></script>`

// Page describes the shell around a page body.
type Page struct {
	Title string
	User  *authz.AuthUser
}

// Base wraps content in the HTML document with the navigation bar.
func Base(page Page, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		title := "Clubtable"
		if page.Title != "" {
			title = page.Title + " · Clubtable"
		}
		if _, err := io.WriteString(w, `<!DOCTYPE html><html lang="fr"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>`+html.EscapeString(title)+`</title><link rel="stylesheet" href="/static/css/main.css">`+htmxScript+`</head><body class="min-h-screen bg-gray-50 text-gray-900">`); err != nil {
			return err
		}
		if _, err := io.WriteString(w, navHTML(page.User)); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<main class="mx-auto max-w-5xl p-4">`); err != nil {
			return err
		}
		if err := content.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</main></body></html>`)
		return err
	})
}

func navHTML(user *authz.AuthUser) string {
	if user == nil {
		return `<nav class="border-b bg-white px-4 py-3"><a class="font-semibold" href="/">Clubtable</a></nav>`
	}

	links := `<a href="/matches">Matchs</a><a href="/leaderboard">Classement</a>`
	if len(user.Teams) > 0 {
		links += `<a href="/leaderboard/team">Mes équipes</a>`
	}
	if user.IsAdmin {
		links += `<a href="/admin/matches">Administration</a>`
	}
	return `<nav class="flex items-center gap-4 border-b bg-white px-4 py-3"><a class="font-semibold" href="/">Clubtable</a>` +
		links +
		`<span class="ml-auto text-sm text-gray-600">` + html.EscapeString(user.DisplayName) + `</span>` +
		`<form method="post" action="/logout"><button type="submit" class="text-sm text-gray-600">Déconnexion</button></form></nav>`
}
