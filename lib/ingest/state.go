package ingest

type State int

const (
	StateDisconnected State = iota
	StateConnected
	StateCounted
	StateBatchPrepared
	StateMerged
	StateVerified
	StateFailed
	StateClosed
)

var stateNames = map[State]string{
	StateDisconnected:  "disconnected",
	StateConnected:     "connected",
	StateCounted:       "counted",
	StateBatchPrepared: "batch_prepared",
	StateMerged:        "merged",
	StateVerified:      "verified",
	StateFailed:        "failed",
	StateClosed:        "closed",
}

func (s State) String() string {
	name, ok := stateNames[s]
	if !ok {
		return "unknown"
	}
	return name
}

// next lists the transitions a load may take, failures aside.
var next = map[State]State{
	StateDisconnected:  StateConnected,
	StateConnected:     StateCounted,
	StateCounted:       StateBatchPrepared,
	StateBatchPrepared: StateMerged,
	StateMerged:        StateVerified,
	StateVerified:      StateClosed,
}

// machine records the states a single load passes through.
type machine struct {
	trace []State
}

func newMachine() *machine {
	return &machine{trace: []State{StateDisconnected}}
}

func (m *machine) current() State {
	return m.trace[len(m.trace)-1]
}

// advance moves to the next state in the happy path.
func (m *machine) advance() {
	to, ok := next[m.current()]
	if !ok {
		panic("no transition out of " + m.current().String())
	}
	m.trace = append(m.trace, to)
}

func (m *machine) fail() {
	switch m.current() {
	case StateFailed, StateClosed:
		return
	}
	m.trace = append(m.trace, StateFailed)
}

// close always ends the trace in the closed state.
func (m *machine) close() {
	if m.current() == StateClosed {
		return
	}
	if m.current() != StateVerified {
		m.fail()
	}
	m.trace = append(m.trace, StateClosed)
}
