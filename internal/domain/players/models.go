package players

// Player is a rostered player as reported by the feed.
type Player struct {
	ID         string `json:"id,omitempty"`
	FirstName  string `json:"first_name"`
	FamilyName string `json:"family_name"`
	Jersey     int    `json:"jersey,omitempty"`
	Position   string `json:"position,omitempty"`
	Team       string `json:"team_code,omitempty"`
}

// ShortName renders "F. Family", the form used in notification bodies.
func (p Player) ShortName() string {
	if p.FirstName == "" {
		return p.FamilyName
	}
	return string([]rune(p.FirstName)[:1]) + ". " + p.FamilyName
}
