package collsim

// engine.go holds the tick-driven simulation of packet generation and
// collision detection.  Ticks are events on an evtm event list: the
// handler for tick t scans every endpoint and schedules tick t+1 one
// virtual second later.

import (
	"context"

	"github.com/iti/evt/evtm"
	"github.com/iti/evt/vrtime"
)

// Engine runs simulations for one validated SimParams
type Engine struct {
	params  SimParams
	sampler DelaySampler
	pacer   Pacer
	collObs []CollisionObserver
	tickObs []TickObserver
}

// EngineOption configures an Engine at construction
type EngineOption func(*Engine)

// WithSampler replaces the sampler selected by SimParams.Sampler
func WithSampler(sampler DelaySampler) EngineOption {
	return func(eng *Engine) {
		eng.sampler = sampler
	}
}

// WithPacer replaces the NoPacer default
func WithPacer(pacer Pacer) EngineOption {
	return func(eng *Engine) {
		eng.pacer = pacer
	}
}

// WithCollisionObserver adds an observer of collision events
func WithCollisionObserver(obs CollisionObserver) EngineOption {
	return func(eng *Engine) {
		eng.collObs = append(eng.collObs, obs)
	}
}

// WithTickObserver adds an observer of end-of-tick endpoint states
func WithTickObserver(obs TickObserver) EngineOption {
	return func(eng *Engine) {
		eng.tickObs = append(eng.tickObs, obs)
	}
}

// CreateEngine is a constructor.  It returns an error wrapping ErrInvalidConfig
// if the parameters cannot be simulated.
func CreateEngine(sp *SimParams, opts ...EngineOption) (*Engine, error) {
	if err := sp.Validate(); err != nil {
		return nil, err
	}

	eng := &Engine{params: *sp}
	for _, opt := range opts {
		opt(eng)
	}
	if eng.sampler == nil {
		eng.sampler = CreateDelaySampler(sp)
	}
	if eng.pacer == nil {
		eng.pacer = NoPacer{}
	}
	return eng, nil
}

// Params returns a copy of the parameters the engine was built with
func (eng *Engine) Params() SimParams {
	return eng.params
}

// simRun carries the state of one call to Run through the event handlers
type simRun struct {
	eng    *Engine
	ctx    context.Context
	endpts []EndptState
	gap    float64 // minimum ticks between two packets of one endpoint
	err    error
}

// Run simulates Duration ticks over freshly zeroed endpoints and returns their
// final states.  If ctx is cancelled the run stops between ticks and the
// states reached so far are returned with the context's error.
func (eng *Engine) Run(ctx context.Context) ([]EndptState, error) {
	sr := &simRun{
		eng:    eng,
		ctx:    ctx,
		endpts: CreateEndptStates(eng.params.NumEndpts),
		gap:    1.0 / eng.params.PcktRate,
	}

	if eng.params.Duration > 0 {
		evtMgr := evtm.New()
		evtMgr.Schedule(sr, 0, advanceTick, vrtime.SecondsToTime(0.0))
		evtMgr.Run(float64(eng.params.Duration))
	}

	return sr.endpts, sr.err
}

// RunSim bundles CreateEngine and Run
func RunSim(ctx context.Context, sp *SimParams, opts ...EngineOption) ([]EndptState, error) {
	eng, err := CreateEngine(sp, opts...)
	if err != nil {
		return nil, err
	}
	return eng.Run(ctx)
}

// advanceTick is the event handler for one tick.  data carries the tick index.
func advanceTick(evtMgr *evtm.EventManager, context any, data any) any {
	sr := context.(*simRun)
	tick := data.(int)

	if err := sr.ctx.Err(); err != nil {
		sr.err = err
		return nil
	}

	sr.step(tick)

	for _, obs := range sr.eng.tickObs {
		obs.ObserveTick(tick, copyEndptStates(sr.endpts))
	}

	if err := sr.eng.pacer.Pace(sr.ctx); err != nil {
		sr.err = err
		return nil
	}

	// the last tick schedules nothing, which empties the event list
	if tick+1 < sr.eng.params.Duration {
		evtMgr.Schedule(sr, tick+1, advanceTick, vrtime.SecondsToTime(1.0))
	}
	return nil
}

// step visits every endpoint in index order at the given tick
func (sr *simRun) step(tick int) {
	threshold := sr.eng.params.CollisionThreshold

	for endptID := range sr.endpts {
		endpt := &sr.endpts[endptID]

		elapsed := float64(tick) - endpt.LastPcktTime
		if elapsed < sr.gap {
			continue
		}

		endpt.accept(tick, sr.eng.sampler.Sample())

		if endpt.PcktsRecvd > threshold {
			sr.collide(tick, endptID)
		}
	}
}

// collide runs the collision sweep triggered by endptID.  The colliding set is
// every endpoint above the threshold, not only those that generated a packet
// this tick, so a sweep can reset an endpoint that is still above the threshold
// from an earlier state.  Collisions here mean "count exceeded", not contention
// for the medium.
func (sr *simRun) collide(tick int, endptID int) {
	threshold := sr.eng.params.CollisionThreshold

	colliding := make([]int, 0)
	for id := range sr.endpts {
		if sr.endpts[id].PcktsRecvd > threshold {
			colliding = append(colliding, id)
		}
	}

	ce := CollisionEvent{Tick: tick, EndptID: endptID, Colliding: colliding}
	for _, obs := range sr.eng.collObs {
		obs.ObserveCollision(ce)
	}

	for _, id := range colliding {
		// re-check, a member may already have been reset
		if sr.endpts[id].PcktsRecvd > threshold {
			sr.endpts[id].collide()
		}
	}
}
