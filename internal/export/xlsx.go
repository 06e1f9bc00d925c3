// Package export writes the match schedule and the leaderboard as XLSX workbooks.
package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/codr1/clubtable/internal/designation"
	"github.com/codr1/clubtable/internal/models"
	"github.com/codr1/clubtable/internal/stats"
)

const (
	MatchesSheet     = "Matchs"
	LeaderboardSheet = "Classement"
	ContentType      = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var matchHeaders = []string{
	"Date", "Heure", "Rendez-vous", "Équipe", "Adversaire", "Maillot", "Arbitres club",
	"Désignation", "Marqueur", "Chronométreur", "Respo Salle", "Buvette", "Arbitre 1", "Arbitre 2",
}

var leaderboardHeaders = []string{"Rang", "Nom", "Équipe", "Marqueur", "Chrono", "Arbitre", "Total", "Crédits équipes"}

// Matches writes one row per match. The designation column shows the decoded teams and
// roles when the text decodes, and the raw text otherwise.
func Matches(matches []models.Match, codec designation.Codec) ([]byte, error) {
	rows := make([][]any, 0, len(matches))
	for _, match := range matches {
		jersey := "Principal"
		if match.AlternateJersey {
			jersey = "Extérieur"
		}
		referees := "Non"
		if match.ClubReferee {
			referees = "Oui"
		}
		row := []any{
			match.Date, match.Time, match.MeetingTime, match.Category, match.Opponent, jersey, referees,
			designationText(match.Designation, codec),
			match.Scorer, match.Timekeeper, match.HallManager, match.BarManager,
		}
		if match.ClubReferee {
			row = append(row, match.Referee1, match.Referee2)
		} else {
			row = append(row, "", "")
		}
		rows = append(rows, row)
	}
	return writeWorkbook(MatchesSheet, matchHeaders, rows)
}

// Leaderboard writes the full ranking, one row per identity.
func Leaderboard(entries []stats.Entry) ([]byte, error) {
	rows := make([][]any, 0, len(entries))
	for i, entry := range entries {
		credits := make([]string, 0, len(entry.Teams))
		for _, credit := range entry.Teams {
			credits = append(credits, fmt.Sprintf("%s (%d)", credit.Team, credit.Count))
		}
		rows = append(rows, []any{
			i + 1, entry.Identity.Name, entry.BadgeTeam(),
			entry.Scorer, entry.Timer, entry.Referee, entry.Total,
			strings.Join(credits, ", "),
		})
	}
	return writeWorkbook(LeaderboardSheet, leaderboardHeaders, rows)
}

func designationText(raw string, codec designation.Codec) string {
	assignments := codec.Decode(raw)
	if len(assignments) == 0 {
		return strings.TrimSpace(raw)
	}
	parts := make([]string, 0, len(assignments))
	for _, assignment := range assignments {
		parts = append(parts, assignment.Team+" : "+strings.Join(assignment.Roles.Labels(), ", "))
	}
	return strings.Join(parts, " / ")
}

func writeWorkbook(sheet string, headers []string, rows [][]any) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]any, len(headers))
	for i, value := range headers {
		header[i] = value
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	lastColumn, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheet, "A1", lastColumn+"1", headerStyle); err != nil {
		return nil, fmt.Errorf("style header: %w", err)
	}
	if err := f.SetColWidth(sheet, "A", lastColumn, 16); err != nil {
		return nil, fmt.Errorf("set column width: %w", err)
	}

	for idx, row := range rows {
		axis, err := excelize.CoordinatesToCellName(1, idx+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, axis, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", idx+2, err)
		}
	}

	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("freeze header: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
