package logging

// Attribute keys used across the service so log queries stay stable.
const (
	FieldService    = "service"
	FieldVersion    = "version"
	FieldProvider   = "provider"
	FieldRequestID  = "request_id"
	FieldPath       = "path"
	FieldMethod     = "method"
	FieldStatusCode = "status_code"
	FieldSeason     = "season"
	FieldGameUUID   = "game_uuid"
	FieldGameID     = "game_id"
	FieldEventType  = "event_type"
	FieldEventID    = "event_id"
	FieldUserID     = "user_id"
	FieldDispatchID = "dispatch_id"
	FieldCount      = "count"
	FieldLiveGames  = "live_games"
	FieldDelay      = "next_delay"
	FieldDurationMS = "duration_ms"
)
