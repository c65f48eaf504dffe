package collsim

import (
	"log"

	"golang.org/x/exp/slices"
)

// CollisionEvent reports one collision sweep.  EndptID is the endpoint whose
// packet triggered the sweep, Colliding lists every endpoint that was above
// the threshold when the sweep started, in index order.
type CollisionEvent struct {
	Tick      int   `json:"tick" yaml:"tick"`
	EndptID   int   `json:"endptid" yaml:"endptid"`
	Colliding []int `json:"colliding" yaml:"colliding"`
}

// Involves reports whether the endpoint with the given id is in the colliding set
func (ce *CollisionEvent) Involves(endptID int) bool {
	return slices.Contains(ce.Colliding, endptID)
}

// CollisionObserver is notified of every collision sweep, in tick order
type CollisionObserver interface {
	ObserveCollision(CollisionEvent)
}

// ObserverFunc adapts a function to the CollisionObserver interface
type ObserverFunc func(CollisionEvent)

// ObserveCollision calls f
func (f ObserverFunc) ObserveCollision(ce CollisionEvent) {
	f(ce)
}

// TickObserver receives a copy of all endpoint states at the end of every tick
type TickObserver interface {
	ObserveTick(tick int, endpts []EndptState)
}

// TickObserverFunc adapts a function to the TickObserver interface
type TickObserverFunc func(int, []EndptState)

// ObserveTick calls f
func (f TickObserverFunc) ObserveTick(tick int, endpts []EndptState) {
	f(tick, endpts)
}

// LogObserver writes a human-readable line pair for every collision
type LogObserver struct {
	Logger *log.Logger
}

// CreateLogObserver is a constructor.  A nil logger means the standard logger.
func CreateLogObserver(logger *log.Logger) *LogObserver {
	if logger == nil {
		logger = log.Default()
	}
	return &LogObserver{Logger: logger}
}

// ObserveCollision logs the triggering endpoint and the colliding set
func (lo *LogObserver) ObserveCollision(ce CollisionEvent) {
	lo.Logger.Printf("tick %d: collision detected at endpoint %d", ce.Tick, ce.EndptID)
	lo.Logger.Printf("tick %d: endpoints in collision: %v", ce.Tick, ce.Colliding)
}
