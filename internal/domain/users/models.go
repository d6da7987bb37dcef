package users

import "slices"

// User is a notification subscriber.
type User struct {
	ID        string   `json:"id" validate:"required,max=128"`
	Teams     []string `json:"teams" validate:"max=14,dive,required,teamcode"`
	PushToken string   `json:"apn_token,omitempty" validate:"omitempty,hexadecimal,max=200"`
}

// Valid reports whether the user can receive notifications: it needs both a push token
// and at least one subscribed team. Users failing this check are not retained.
func (u User) Valid() bool {
	return u.PushToken != "" && len(u.Teams) > 0
}

// Follows reports whether the user subscribes to any of the given team codes.
func (u User) Follows(teamCodes ...string) bool {
	for _, code := range teamCodes {
		if code != "" && slices.Contains(u.Teams, code) {
			return true
		}
	}
	return false
}
