package progress

// Stage identifies which phase of deck materialization an event belongs to.
type Stage string

const (
	StageResolveEntries Stage = "resolve_entries"
	StageWriteDocument  Stage = "write_document"
)

// Event is one progress notification. Percent is the completion of the
// current stage; ErrorMessage is set when the step it reports failed.
type Event struct {
	Stage        Stage
	Percent      float64
	ErrorMessage string
}

// Func receives progress events. A nil Func is valid and drops events.
type Func func(Event)

// Tracker computes monotone completion percentages for a fixed number of
// steps and relays them to a notification function.
type Tracker struct {
	stage     Stage
	total     int
	processed int
	notify    Func
}

// NewTracker builds a tracker for total steps. It emits nothing until Start
// or Step is called.
func NewTracker(stage Stage, total int, notify Func) *Tracker {
	return &Tracker{stage: stage, total: total, notify: notify}
}

// Start emits the initial zero-percent event.
func (t *Tracker) Start() {
	t.emit("")
}

// Step records one completed step and emits the updated percentage.
func (t *Tracker) Step() {
	t.processed++
	t.emit("")
}

// StepError records one completed step whose work failed, attaching the
// error text to the emitted event.
func (t *Tracker) StepError(message string) {
	t.processed++
	t.emit(message)
}

// Fail emits an error event without advancing the step counter.
func (t *Tracker) Fail(message string) {
	t.emit(message)
}

func (t *Tracker) emit(message string) {
	if t.notify == nil {
		return
	}
	percent := 100.0
	if t.total > 0 {
		percent = float64(t.processed) / float64(t.total) * 100
	}
	if percent > 100 {
		percent = 100
	}
	t.notify(Event{Stage: t.stage, Percent: percent, ErrorMessage: message})
}
