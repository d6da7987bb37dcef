package users

import (
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/preston-bernstein/shl-live-service/internal/domain/teams"
)

var validate = sync.OnceValue(func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("teamcode", func(fl validator.FieldLevel) bool {
		_, ok := teams.ByCode(fl.Field().String())
		return ok
	})
	return v
})

// Validate checks the shape of a subscriber record received at a boundary: a bounded id,
// known team codes and a hex push token. It does not require a token or teams; see Valid.
func (u User) Validate() error {
	return validate().Struct(u)
}

// Normalize upper-cases team codes and drops duplicates, keeping first-seen order.
func (u User) Normalize() User {
	seen := make(map[string]bool, len(u.Teams))
	out := make([]string, 0, len(u.Teams))
	for _, code := range u.Teams {
		if t, ok := teams.ByCode(code); ok {
			code = t.Code
		}
		if seen[code] {
			continue
		}
		seen[code] = true
		out = append(out, code)
	}
	u.Teams = out
	return u
}
