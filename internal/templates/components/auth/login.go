package auth

import (
	"context"
	"html"
	"io"

	"github.com/a-h/templ"
)

// LoginForm renders the email/password form. errMsg is shown above the fields when set.
func LoginForm(email, errMsg string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var alert string
		if errMsg != "" {
			alert = `<p class="rounded bg-red-50 p-2 text-sm text-red-700" role="alert">` + html.EscapeString(errMsg) + `</p>`
		}
		_, err := io.WriteString(w, `<form id="login-form" method="post" action="/login" hx-post="/login" hx-target="#login-form" hx-swap="outerHTML" class="mx-auto mt-12 max-w-sm space-y-4 rounded bg-white p-6 shadow">`+
			`<h1 class="text-xl font-semibold">Connexion</h1>`+
			alert+
			`<label class="block text-sm">Email<input class="mt-1 w-full rounded border p-2" type="email" name="email" autocomplete="username" required value="`+html.EscapeString(email)+`"></label>`+
			`<label class="block text-sm">Mot de passe<input class="mt-1 w-full rounded border p-2" type="password" name="password" autocomplete="current-password" required></label>`+
			`<button type="submit" class="w-full rounded bg-gray-900 p-2 text-white">Se connecter</button></form>`)
		return err
	})
}
