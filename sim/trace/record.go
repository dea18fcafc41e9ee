// Package trace provides decision-trace recording for sampler analysis.
// This package has no dependencies on sim/ or its samplers; it stores pure data types.
package trace

// MoveRecord captures a single Metropolis-Hastings proposal.
type MoveRecord struct {
	Iteration   int     // proposal index, from 0
	Move        string  // "birth", "death" or "shift"
	Accepted    bool    // whether the proposal was applied
	Reason      string  // "accepted", "ratio", "forbidden", "empty", "outside"
	LogRatio    float64 // log Hastings ratio before tempering; -Inf when forbidden
	Temperature float64 // temperature the proposal was decided at
	Count       int     // configuration size after the move
}

// HorizonRecord captures one coupling attempt of the exact sampler.
type HorizonRecord struct {
	Attempt   int
	Events    int     // number of backward dominating events replayed
	StartTime float64 // backward time reached (negative)
	Upper     int     // size of the upper process at time 0
	Lower     int     // size of the lower process at time 0
	Coalesced bool
}
