package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalMoves       int                `json:"total_moves"`
	AcceptedCount    int                `json:"accepted"`
	RejectedCount    int                `json:"rejected"`
	AcceptanceByMove map[string]float64 `json:"acceptance_by_move"` // move type → fraction accepted
	ProposalsByMove  map[string]int     `json:"proposals_by_move"`
	RejectReasons    map[string]int     `json:"reject_reasons"`
	Attempts         int                `json:"attempts"`     // CFTP coupling attempts
	Coalesced        bool               `json:"coalesced"`    // last attempt coalesced
	FinalEvents      int                `json:"final_events"` // horizon of the last attempt
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		AcceptanceByMove: make(map[string]float64),
		ProposalsByMove:  make(map[string]int),
		RejectReasons:    make(map[string]int),
	}
	if st == nil {
		return summary
	}

	accepted := make(map[string]int)
	summary.TotalMoves = len(st.Moves)
	for _, m := range st.Moves {
		summary.ProposalsByMove[m.Move]++
		if m.Accepted {
			summary.AcceptedCount++
			accepted[m.Move]++
		} else {
			summary.RejectedCount++
			summary.RejectReasons[m.Reason]++
		}
	}
	for move, n := range summary.ProposalsByMove {
		summary.AcceptanceByMove[move] = float64(accepted[move]) / float64(n)
	}

	summary.Attempts = len(st.Horizons)
	if n := len(st.Horizons); n > 0 {
		last := st.Horizons[n-1]
		summary.Coalesced = last.Coalesced
		summary.FinalEvents = last.Events
	}

	return summary
}
