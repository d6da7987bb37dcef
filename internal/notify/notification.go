// Package notify renders game events into push notifications and fans them out to
// subscribers.
package notify

import (
	"fmt"
	"slices"
	"strings"
	"time"

	domainevents "github.com/preston-bernstein/shl-live-service/internal/domain/events"
	"github.com/preston-bernstein/shl-live-service/internal/domain/games"
	"github.com/preston-bernstein/shl-live-service/internal/domain/players"
	"github.com/preston-bernstein/shl-live-service/internal/domain/teams"
)

const (
	defaultSound = "ping.aiff"
	defaultTTL   = time.Hour
)

// Notification is a rendered push message for one user.
type Notification struct {
	Title  string
	Body   string
	Sound  string
	Topic  string
	Expiry time.Time
}

// Title renders the notification title of ev for a user following userTeams.
func Title(ev domainevents.Event, userTeams []string) string {
	info := ev.Info
	switch p := ev.Payload.(type) {
	case domainevents.GameStart:
		return "Matchen började"
	case domainevents.GameEnd:
		if info.HomeScore == info.AwayScore {
			return "Matchen slutade"
		}
		victor := info.HomeTeam
		if info.AwayScore > info.HomeScore {
			victor = info.AwayTeam
		}
		if slices.Contains(userTeams, victor) {
			return teams.ShortName(victor) + " vinner! 🎉"
		}
		return teams.ShortName(victor) + " vann matchen"
	case domainevents.Goal:
		if slices.Contains(userTeams, p.Team) {
			return "MÅÅÅL för " + teams.ShortName(p.Team) + "! 🎉"
		}
		return "Mål för " + teams.ShortName(p.Team)
	case domainevents.Penalty:
		if p.Minutes > 0 {
			return fmt.Sprintf("Utvisning - %d min", p.Minutes)
		}
		return "Utvisning"
	case domainevents.PeriodStart:
		return fmt.Sprintf("Period %d började", p.Period)
	case domainevents.PeriodEnd:
		return fmt.Sprintf("Period %d slutade", p.Period)
	default:
		return string(ev.Type())
	}
}

// Body renders the notification body of ev.
func Body(ev domainevents.Event) string {
	info := ev.Info
	label := games.StatusFromPeriod(info.Period).TimeLabel(info.Gametime)
	switch p := ev.Payload.(type) {
	case domainevents.GameStart:
		return teams.ShortName(info.HomeTeam) + " - " + teams.ShortName(info.AwayTeam)
	case domainevents.Goal:
		detail := playerPrefix(p.Player) + label
		if p.PowerPlay {
			detail += " • PP"
		}
		return info.ScoreString() + "\n" + detail
	case domainevents.Penalty:
		if p.Reason == "" {
			return playerPrefix(p.Player) + label
		}
		return playerPrefix(p.Player) + p.Reason
	default:
		return info.ScoreString()
	}
}

func playerPrefix(p *players.Player) string {
	if p == nil || strings.TrimSpace(p.FamilyName) == "" {
		return ""
	}
	return p.ShortName() + " • "
}
