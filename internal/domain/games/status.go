package games

// Status is the lifecycle state of a game, derived from its current period.
type Status string

const (
	StatusComing   Status = "Coming"
	StatusPeriod1  Status = "Period1"
	StatusPeriod2  Status = "Period2"
	StatusPeriod3  Status = "Period3"
	StatusOvertime Status = "Overtime"
	StatusShootout Status = "Shootout"
	StatusPlayed   Status = "Finished"
)

// StatusFromPeriod maps the feed's period number onto a Status.
// Period 4 is overtime; anything beyond is treated as a shootout.
func StatusFromPeriod(period int) Status {
	switch {
	case period <= 0:
		return StatusComing
	case period == 1:
		return StatusPeriod1
	case period == 2:
		return StatusPeriod2
	case period == 3:
		return StatusPeriod3
	case period == 4:
		return StatusOvertime
	default:
		return StatusShootout
	}
}

// IsLive reports whether the game is being played right now.
func (s Status) IsLive() bool {
	switch s {
	case StatusPeriod1, StatusPeriod2, StatusPeriod3, StatusOvertime, StatusShootout:
		return true
	default:
		return false
	}
}

// Started reports whether the game has left the Coming state.
func (s Status) Started() bool {
	return s.IsLive() || s == StatusPlayed
}

// TimeLabel renders the user-facing time label for an in-game moment.
func (s Status) TimeLabel(gametime string) string {
	switch s {
	case StatusShootout:
		return "Straffar"
	case StatusOvertime:
		return joinLabel("Övertid", gametime)
	case StatusPeriod3:
		return joinLabel("P3", gametime)
	case StatusPeriod2:
		return joinLabel("P2", gametime)
	case StatusPeriod1:
		return joinLabel("P1", gametime)
	default:
		return gametime
	}
}

func joinLabel(prefix, gametime string) string {
	if gametime == "" {
		return prefix
	}
	return prefix + " " + gametime
}
