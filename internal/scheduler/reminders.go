package scheduler

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"

	"github.com/codr1/clubtable/internal/config"
	dbgen "github.com/codr1/clubtable/internal/db/generated"
	"github.com/codr1/clubtable/internal/designation"
	"github.com/codr1/clubtable/internal/email"
	"github.com/codr1/clubtable/internal/models"
)

const (
	designationReminderJobName = "designation_reminders"
	designationReminderTimeout = 2 * time.Minute
)

// ReminderQueries is what the designation reminder job reads.
type ReminderQueries interface {
	ListTeams(ctx context.Context) ([]dbgen.Team, error)
	ListMatchesBetween(ctx context.Context, arg dbgen.ListMatchesBetweenParams) ([]dbgen.Match, error)
	ListTeamCoachContacts(ctx context.Context, name string) ([]dbgen.ListTeamCoachContactsRow, error)
}

type ReminderOptions struct {
	Now       time.Time
	Location  *time.Location
	DaysAhead int
	Sender    string
	ClubName  string
	BaseURL   string
}

// ReminderResult counts what one run did.
type ReminderResult struct {
	Teams  int
	Sent   int
	Failed int
}

// RegisterDesignationReminderJob schedules RunDesignationReminders on the configured cron.
func RegisterDesignationReminderJob(q ReminderQueries, client email.EmailSender, cfg *config.Config) error {
	if q == nil {
		return fmt.Errorf("reminder job requires database")
	}
	if cfg == nil {
		return fmt.Errorf("reminder job requires configuration")
	}

	cronExpr := cfg.Reminders.Cron
	jobLogger := log.With().
		Str("component", "designation_reminders_job").
		Str("job_name", designationReminderJobName).
		Str("cron", cronExpr).
		Logger()

	_, err := AddJob(designationReminderJobName, cronExpr, func() {
		if client == nil {
			jobLogger.Debug().Msg("Reminder job skipped: email client not configured")
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), designationReminderTimeout)
		defer cancel()
		ctx = jobLogger.WithContext(ctx)

		result, err := RunDesignationReminders(ctx, q, client, ReminderOptions{
			Now:       time.Now(),
			Location:  cfg.Location(),
			DaysAhead: cfg.Reminders.DaysAhead,
			Sender:    cfg.Reminders.Sender,
			ClubName:  cfg.App.Name,
			BaseURL:   cfg.App.BaseURL,
		})
		if err != nil {
			jobLogger.Error().Err(err).Msg("Designation reminder run failed")
			return
		}
		jobLogger.Info().
			Int("teams", result.Teams).
			Int("sent", result.Sent).
			Int("failed", result.Failed).
			Msg("Designation reminders processed")
	}, gocron.WithSingletonMode(gocron.LimitModeReschedule))
	if err != nil {
		return fmt.Errorf("add designation reminder job: %w", err)
	}

	jobLogger.Info().Msg("Designation reminder job registered")
	return nil
}

// RunDesignationReminders emails the coaches of every team that still owes table slots on
// a match between today and DaysAhead days from now. Each team gets one email listing
// all of its open duties. A failed send is logged and counted; it does not stop the run.
func RunDesignationReminders(ctx context.Context, q ReminderQueries, client email.EmailSender, opts ReminderOptions) (ReminderResult, error) {
	var result ReminderResult
	logger := log.Ctx(ctx)

	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	days := opts.DaysAhead
	if days < 1 {
		days = config.DefaultReminderDaysAhead
	}
	today := opts.Now.In(loc)
	from := today.Format(models.DateLayout)
	to := today.AddDate(0, 0, days).Format(models.DateLayout)

	teams, err := q.ListTeams(ctx)
	if err != nil {
		return result, fmt.Errorf("list teams: %w", err)
	}
	codec := designation.NewCodec(models.TeamNames(models.TeamsFromDB(teams)))

	rows, err := q.ListMatchesBetween(ctx, dbgen.ListMatchesBetweenParams{FromDate: from, ToDate: to})
	if err != nil {
		return result, fmt.Errorf("list matches: %w", err)
	}

	duties, matchIDs := openDutiesByTeam(models.MatchesFromDB(rows), codec)
	teamNames := make([]string, 0, len(duties))
	for team := range duties {
		teamNames = append(teamNames, team)
	}
	sort.Strings(teamNames)

	for _, team := range teamNames {
		teamLogger := logger.With().Str("team", team).Logger()
		contacts, err := q.ListTeamCoachContacts(ctx, team)
		if err != nil {
			return result, fmt.Errorf("list coaches of %s: %w", team, err)
		}
		if len(contacts) == 0 {
			teamLogger.Debug().Msg("No coach to remind")
			continue
		}
		result.Teams++

		message := email.BuildDesignationReminder(email.DesignationReminder{
			ClubName: opts.ClubName,
			Team:     team,
			Duties:   duties[team],
			BaseURL:  opts.BaseURL,
			MatchIDs: matchIDs[team],
		})
		for _, contact := range contacts {
			if err := email.SendReminder(ctx, client, contact.Email, message, opts.Sender, &teamLogger); err != nil {
				result.Failed++
				continue
			}
			result.Sent++
		}
	}
	return result, nil
}

func openDutiesByTeam(matches []models.Match, codec designation.Codec) (map[string][]email.OpenDuty, map[string][]int64) {
	duties := make(map[string][]email.OpenDuty)
	matchIDs := make(map[string][]int64)
	for _, match := range matches {
		for team, slots := range match.OpenSlots(codec) {
			labels := make([]string, 0, len(slots))
			for _, slot := range slots {
				labels = append(labels, slot.Label())
			}
			duties[team] = append(duties[team], email.OpenDuty{
				Date:        match.Date,
				Time:        match.Time,
				MeetingTime: match.MeetingTime,
				Category:    match.Category,
				Opponent:    match.Opponent,
				Roles:       labels,
			})
			matchIDs[team] = append(matchIDs[team], match.ID)
		}
	}
	return duties, matchIDs
}
