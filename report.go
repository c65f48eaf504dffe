package collsim

import (
	"errors"
)

// EndptReport holds the per-endpoint figures a presentation layer draws from
type EndptReport struct {
	Name         string  `json:"name" yaml:"name"`
	PcktsRecvd   int     `json:"pcktsrecvd" yaml:"pcktsrecvd"`
	Collisions   int     `json:"collisions" yaml:"collisions"`
	AvgDelay     float64 `json:"avgdelay" yaml:"avgdelay"`
	IntervalTime float64 `json:"intervaltime" yaml:"intervaltime"`
	LossRate     float64 `json:"lossrate" yaml:"lossrate"`
	Peers        []int   `json:"peers" yaml:"peers"`
}

// SimReport gathers the parameters, the derived metrics, and the per-endpoint
// views of a finished run.  Throughput and the loss rates are only meaningful
// when MetricsDefined is set; otherwise Undefined says why and they are zero.
type SimReport struct {
	Params SimParams `json:"params" yaml:"params"`

	// ticks actually simulated, fewer than Params.Duration if the run was stopped
	Ticks   int  `json:"ticks" yaml:"ticks"`
	Partial bool `json:"partial" yaml:"partial"`

	MetricsDefined bool    `json:"metricsdefined" yaml:"metricsdefined"`
	Undefined      string  `json:"undefined,omitempty" yaml:"undefined,omitempty"`
	Throughput     float64 `json:"throughput" yaml:"throughput"`

	NumCollisions    int           `json:"numcollisions" yaml:"numcollisions"`
	CollisionDomains [][]int       `json:"collisiondomains" yaml:"collisiondomains"`
	Endpts           []EndptReport `json:"endpts" yaml:"endpts"`
}

// BuildSimReport computes the report of a run from its parameters, final
// endpoint states, collision events, and the number of ticks simulated.
// Rates are taken over ticks rather than the configured duration, so a run
// stopped early reports on what it did.  events may be nil, in which case the
// peer and domain views are empty.  When ticks is zero the per-endpoint
// views are still filled in but the metrics are marked undefined.
func BuildSimReport(sp *SimParams, endpts []EndptState, events []CollisionEvent, ticks int) *SimReport {
	cg := BuildCollisionGraph(len(endpts), events)
	intervals := IntervalTimes(endpts, sp.PcktRate)

	sr := &SimReport{
		Params:           *sp,
		Ticks:            ticks,
		Partial:          ticks < sp.Duration,
		NumCollisions:    len(events),
		CollisionDomains: cg.CollisionDomains(),
		Endpts:           make([]EndptReport, len(endpts)),
	}

	throughput, terr := Throughput(endpts, sp.PcktLen, ticks)
	lossRates, lerr := LossRates(endpts, sp.PcktRate, ticks)
	if err := errors.Join(terr, lerr); err != nil {
		sr.Undefined = err.Error()
		lossRates = make([]float64, len(endpts))
	} else {
		sr.MetricsDefined = true
		sr.Throughput = throughput
	}

	for idx := range endpts {
		sr.Endpts[idx] = EndptReport{
			Name:         EndptName(idx),
			PcktsRecvd:   endpts[idx].PcktsRecvd,
			Collisions:   endpts[idx].Collisions,
			AvgDelay:     endpts[idx].AvgDelay(),
			IntervalTime: intervals[idx],
			LossRate:     lossRates[idx],
			Peers:        cg.Peers(idx),
		}
	}
	return sr
}

// WriteToFile stores the SimReport struct to the file whose name is given.
// Serialization to json or to yaml is selected based on the extension of this name.
func (sr *SimReport) WriteToFile(filename string) error {
	return writeSerialized(filename, *sr)
}
