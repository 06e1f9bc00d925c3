package request

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"
)

// QueryValue returns the trimmed query parameter key. When the request omits it, htmx
// requests fall back to the same parameter on the page that issued them (HX-Current-URL),
// so partial refreshes keep the filter or page the user is looking at.
func QueryValue(r *http.Request, key string) string {
	if value := strings.TrimSpace(r.URL.Query().Get(key)); value != "" {
		return value
	}

	currentURL := strings.TrimSpace(r.Header.Get("HX-Current-URL"))
	if currentURL == "" {
		return ""
	}

	parsed, err := url.Parse(currentURL)
	if err != nil {
		log.Ctx(r.Context()).
			Debug().
			Err(err).
			Str("hx_current_url", currentURL).
			Msg("Failed to parse HX-Current-URL")
		return ""
	}

	return strings.TrimSpace(parsed.Query().Get(key))
}
