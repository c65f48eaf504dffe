package collsim

// metrics.go holds pure functions over the final endpoint states of a run.
// None of them modify the states they are given.

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Throughput returns the bytes per second delivered by all endpoints over the run.
// Only packets counted since each endpoint's last collision reset contribute.
func Throughput(endpts []EndptState, pcktLen int, duration int) (float64, error) {
	if duration == 0 {
		return 0.0, fmt.Errorf("%w: throughput over zero duration", ErrUndefinedMetric)
	}

	bytesByEndpt := make([]float64, len(endpts))
	for idx := range endpts {
		bytesByEndpt[idx] = float64(endpts[idx].PcktsRecvd * pcktLen)
	}
	return floats.Sum(bytesByEndpt) / float64(duration), nil
}

// LossRates returns, per endpoint, the fraction of the packets expected from
// the configured rate and duration that the final count does not hold.
// Final counts restart from zero at each collision, so an endpoint that
// collided reports a loss that covers every packet before its last reset.
func LossRates(endpts []EndptState, pcktRate float64, duration int) ([]float64, error) {
	expected := float64(duration) * pcktRate
	if expected == 0.0 {
		return nil, fmt.Errorf("%w: loss rate with %v expected packets", ErrUndefinedMetric, expected)
	}

	rates := make([]float64, len(endpts))
	for idx := range endpts {
		rates[idx] = 1.0 - float64(endpts[idx].PcktsRecvd)/expected
	}
	return rates, nil
}

// PcktCounts lists the final packet count of every endpoint
func PcktCounts(endpts []EndptState) []int {
	counts := make([]int, len(endpts))
	for idx := range endpts {
		counts[idx] = endpts[idx].PcktsRecvd
	}
	return counts
}

// CollisionCounts lists the collision count of every endpoint
func CollisionCounts(endpts []EndptState) []int {
	counts := make([]int, len(endpts))
	for idx := range endpts {
		counts[idx] = endpts[idx].Collisions
	}
	return counts
}

// AvgDelays lists the mean delay of every endpoint's counted packets, 0 for none
func AvgDelays(endpts []EndptState) []float64 {
	delays := make([]float64, len(endpts))
	for idx := range endpts {
		delays[idx] = endpts[idx].AvgDelay()
	}
	return delays
}

// IntervalTimes lists 1/pcktRate for every endpoint that holds at least one
// packet and 0 otherwise.  This is the configured inter-arrival time, not a
// measured one.
func IntervalTimes(endpts []EndptState, pcktRate float64) []float64 {
	intervals := make([]float64, len(endpts))
	for idx := range endpts {
		if endpts[idx].PcktsRecvd > 0 {
			intervals[idx] = 1.0 / pcktRate
		}
	}
	return intervals
}
