package email

import (
	"fmt"
	"strings"
)

type Message struct {
	Subject string
	Body    string
}

// OpenDuty is one match on which a team still owes table officials.
type OpenDuty struct {
	Date        string
	Time        string
	MeetingTime string
	Category    string
	Opponent    string
	// Roles are the labels of the blank designated slots.
	Roles []string
}

type DesignationReminder struct {
	ClubName string
	Team     string
	Duties   []OpenDuty
	// BaseURL links each duty to its match sheet when set.
	BaseURL string
	// MatchIDs parallels Duties.
	MatchIDs []int64
}

// BuildDesignationReminder lists the open table duties of one team.
func BuildDesignationReminder(details DesignationReminder) Message {
	clubName := strings.TrimSpace(details.ClubName)
	if clubName == "" {
		clubName = "le club"
	}
	team := strings.TrimSpace(details.Team)

	subject := fmt.Sprintf("Tenue de table à pourvoir - %s", team)
	if len(details.Duties) > 1 {
		subject = fmt.Sprintf("%d tenues de table à pourvoir - %s", len(details.Duties), team)
	}

	lines := []string{
		"Bonjour,",
		"",
		fmt.Sprintf("L'équipe %s est désignée pour tenir la table lors des matchs suivants, et des postes sont encore vides :", team),
		"",
	}
	for i, duty := range details.Duties {
		line := fmt.Sprintf("- %s à %s (rendez-vous %s) : %s contre %s. À pourvoir : %s.",
			duty.Date, duty.Time, fallback(duty.MeetingTime, duty.Time), duty.Category, fallback(duty.Opponent, "adversaire à confirmer"),
			strings.Join(duty.Roles, ", "))
		lines = append(lines, line)
		if baseURL := strings.TrimRight(strings.TrimSpace(details.BaseURL), "/"); baseURL != "" && i < len(details.MatchIDs) {
			lines = append(lines, fmt.Sprintf("  %s/matches/%d", baseURL, details.MatchIDs[i]))
		}
	}
	lines = append(lines, "", "Merci de compléter la feuille de match.", "", clubName)

	return Message{
		Subject: subject,
		Body:    strings.Join(lines, "\n"),
	}
}

func fallback(value, alternative string) string {
	if strings.TrimSpace(value) == "" {
		return alternative
	}
	return strings.TrimSpace(value)
}
