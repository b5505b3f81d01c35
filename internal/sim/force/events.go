package force

import "time"

// Clock supplies history timestamps. Injected so tests can pin time.
type Clock func() time.Time

// Rand is the random source behind the progress stepper and the casualty
// generator. *rand.Rand satisfies it; tests may supply a scripted source.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// JournalEntry is one event-log line together with its origin. Every line
// appended to any entity history is also fanned out to the Registry's sinks.
type JournalEntry struct {
	At    time.Time `json:"at"`
	Scope string    `json:"scope"`
	ID    string    `json:"id,omitempty"`
	Line  string    `json:"line"`
}

// Journal scopes.
const (
	ScopeRegistry = "registry"
	ScopeSoldier  = "soldier"
	ScopeTeam     = "team"
	ScopeMission  = "mission"
)

type eventSink func(JournalEntry)

const timeLayout = "2006-01-02 15:04:05"

func stamp(t time.Time, s string) string {
	return t.Format(timeLayout) + ": " + s
}

// tail returns the last n entries of log without copying the backing array.
func tail(log []string, n int) []string {
	if n <= 0 || n >= len(log) {
		return log
	}
	return log[len(log)-n:]
}
