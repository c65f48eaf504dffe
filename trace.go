package collsim

import (
	"fmt"
)

// TickSnapshot is the state of every endpoint at the end of one tick
type TickSnapshot struct {
	Tick   int          `json:"tick" yaml:"tick"`
	Endpts []EndptState `json:"endpts" yaml:"endpts"`
}

// CollisionTrace gathers the collision events of a run, and optionally
// per-tick snapshots, for post-run analysis.  It observes an Engine
// through WithCollisionObserver and WithTickObserver.
type CollisionTrace struct {
	// experiment uses trace
	InUse bool `json:"inuse" yaml:"inuse"`

	// keep a snapshot of every tick, not only collisions
	KeepTicks bool `json:"keepticks" yaml:"keepticks"`

	// name of experiment
	ExpName string `json:"expname" yaml:"expname"`

	// text name associated with each endpoint id
	NameByID map[int]string `json:"namebyid" yaml:"namebyid"`

	// collision events in tick order
	Events []CollisionEvent `json:"events" yaml:"events"`

	// number of ticks completed by the observed run
	TicksRun int `json:"ticksrun" yaml:"ticksrun"`

	// end-of-tick snapshots, present only if KeepTicks
	Ticks []TickSnapshot `json:"ticks,omitempty" yaml:"ticks,omitempty"`
}

// CreateCollisionTrace is a constructor.  It saves the name of the experiment
// and a flag indicating whether the trace is active.  By testing this
// flag we can inhibit the activity of gathering a trace when we don't want it,
// while leaving the trace attached to the engine.
func CreateCollisionTrace(expName string, numEndpts int, active bool) *CollisionTrace {
	ct := new(CollisionTrace)
	ct.InUse = active
	ct.ExpName = expName
	ct.NameByID = make(map[int]string)
	ct.Events = make([]CollisionEvent, 0)
	for id := 0; id < numEndpts; id++ {
		ct.NameByID[id] = EndptName(id)
	}
	return ct
}

// EndptName is the text name given to an endpoint id in traces and reports
func EndptName(endptID int) string {
	return fmt.Sprintf("endpt-%d", endptID)
}

// Active tells the caller whether the trace is actively being used
func (ct *CollisionTrace) Active() bool {
	return ct.InUse
}

// ObserveCollision saves a copy of the event
func (ct *CollisionTrace) ObserveCollision(ce CollisionEvent) {
	if !ct.InUse {
		return
	}
	colliding := make([]int, len(ce.Colliding))
	copy(colliding, ce.Colliding)
	ct.Events = append(ct.Events, CollisionEvent{Tick: ce.Tick, EndptID: ce.EndptID, Colliding: colliding})
}

// ObserveTick counts the tick, and saves the snapshot when KeepTicks is set
func (ct *CollisionTrace) ObserveTick(tick int, endpts []EndptState) {
	if !ct.InUse {
		return
	}
	ct.TicksRun = tick + 1
	if !ct.KeepTicks {
		return
	}
	ct.Ticks = append(ct.Ticks, TickSnapshot{Tick: tick, Endpts: endpts})
}

// EventsFor returns the events whose colliding set includes the endpoint
func (ct *CollisionTrace) EventsFor(endptID int) []CollisionEvent {
	found := make([]CollisionEvent, 0)
	for idx := range ct.Events {
		if ct.Events[idx].Involves(endptID) {
			found = append(found, ct.Events[idx])
		}
	}
	return found
}

// WriteToFile stores the CollisionTrace struct to the file whose name is given.
// Serialization to json or to yaml is selected based on the extension of this name.
// Nothing is written, and false returned, when the trace is not in use.
func (ct *CollisionTrace) WriteToFile(filename string) (bool, error) {
	if !ct.InUse {
		return false, nil
	}
	if err := writeSerialized(filename, *ct); err != nil {
		return false, err
	}
	return true, nil
}
