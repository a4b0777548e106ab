package survey

// Step names, in strict forward order. The machine holds the current step;
// answers are keyed by the report keys in pkg/report.
const (
	StateIdle    = "idle"
	StateCompany = "company"
	StateContact = "contact"
	StateModules = "modules"
	StateRating  = "rating"
	StatePros    = "pros"
	StateCons    = "cons"
	StateBugs    = "bugs"
	StateMissing = "missing"
	StateReady   = "ready"
)

const (
	EventBegin   = "begin"
	EventAdvance = "advance"
	EventCancel  = "cancel"
)

// RatingScale is the set of literals the rating step offers and accepts.
var RatingScale = []string{"1", "2", "3", "4", "5"}
