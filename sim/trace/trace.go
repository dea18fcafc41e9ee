package trace

// TraceLevel controls the verbosity of decision tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelDecisions captures every MH proposal and every CFTP coupling attempt.
	TraceLevelDecisions TraceLevel = "decisions"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:      true,
	TraceLevelDecisions: true,
	"":                  true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
	// MoveStride keeps one MH move record out of every MoveStride iterations
	// (0 or 1 = keep all). Long chains would otherwise hold millions of records.
	MoveStride int
}

// SimulationTrace collects decision records during a simulation.
// A nil *SimulationTrace is valid and records nothing.
type SimulationTrace struct {
	Config   TraceConfig
	Moves    []MoveRecord
	Horizons []HorizonRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config:   config,
		Moves:    make([]MoveRecord, 0),
		Horizons: make([]HorizonRecord, 0),
	}
}

// Enabled reports whether records are kept.
func (st *SimulationTrace) Enabled() bool {
	return st != nil && st.Config.Level == TraceLevelDecisions
}

// RecordMove appends an MH move record, honouring MoveStride.
func (st *SimulationTrace) RecordMove(record MoveRecord) {
	if !st.Enabled() {
		return
	}
	if stride := st.Config.MoveStride; stride > 1 && record.Iteration%stride != 0 {
		return
	}
	st.Moves = append(st.Moves, record)
}

// RecordHorizon appends a CFTP coupling attempt.
func (st *SimulationTrace) RecordHorizon(record HorizonRecord) {
	if !st.Enabled() {
		return
	}
	st.Horizons = append(st.Horizons, record)
}
