// Package assets embeds static data shipped with the binary.
package assets

import "embed"

// TeamsPath is the seed file: blocks of three non-empty lines giving a team name, its
// primary jersey colour and its alternate jersey colour.
const TeamsPath = "teams"

//go:embed teams
var TeamsFS embed.FS
