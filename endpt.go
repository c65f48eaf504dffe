package collsim

// EndptState holds the counters the simulation keeps for one endpoint.
// A run's endpoints live in a slice indexed by endpoint id; the slice
// never grows or shrinks once the run starts.
type EndptState struct {
	// packets counted since the last collision reset
	PcktsRecvd int `json:"pcktsrecvd" yaml:"pcktsrecvd"`

	// delay accumulated over the same packets counted in PcktsRecvd
	TotalDelay float64 `json:"totaldelay" yaml:"totaldelay"`

	// number of collision sweeps the endpoint was reset by, never reset itself
	Collisions int `json:"collisions" yaml:"collisions"`

	// tick at which the endpoint last generated a packet
	LastPcktTime float64 `json:"lastpckttime" yaml:"lastpckttime"`
}

// CreateEndptStates is a constructor, returning numEndpts zeroed states
func CreateEndptStates(numEndpts int) []EndptState {
	return make([]EndptState, numEndpts)
}

// accept counts a packet generated at tick with the given delay
func (es *EndptState) accept(tick int, delay float64) {
	es.PcktsRecvd += 1
	es.TotalDelay += delay
	es.LastPcktTime = float64(tick)
}

// collide records a collision and clears the packet and delay accumulators.
// The two accumulators are only ever cleared here, together.
func (es *EndptState) collide() {
	es.Collisions += 1
	es.PcktsRecvd = 0
	es.TotalDelay = 0.0
}

// AvgDelay is the mean delay of the packets counted since the last reset,
// zero if there are none
func (es *EndptState) AvgDelay() float64 {
	if es.PcktsRecvd > 0 {
		return es.TotalDelay / float64(es.PcktsRecvd)
	}
	return 0.0
}

// copyEndptStates returns a snapshot that observers may keep
func copyEndptStates(endpts []EndptState) []EndptState {
	snapshot := make([]EndptState, len(endpts))
	copy(snapshot, endpts)
	return snapshot
}
