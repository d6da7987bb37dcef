package metrics

// Attribute keys shared by every exported instrument.
const (
	AttrMethod    = "method"
	AttrRoute     = "route"
	AttrStatus    = "status"
	AttrFeed      = "feed"
	AttrEventType = "event_type"
	AttrOutcome   = "outcome"
)
