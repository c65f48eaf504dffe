package collsim

import (
	"context"
	"reflect"
	"testing"
)

func TestCollisionGraph(t *testing.T) {
	events := []CollisionEvent{
		{Tick: 3, EndptID: 0, Colliding: []int{0, 2}},
		{Tick: 5, EndptID: 2, Colliding: []int{0, 2}},
		{Tick: 6, EndptID: 4, Colliding: []int{4, 5}},
		{Tick: 8, EndptID: 1, Colliding: []int{1}},
	}
	cg := BuildCollisionGraph(6, events)

	if got := cg.Shared(0, 2); got != 2 {
		t.Errorf("Shared(0, 2) = %d, want 2", got)
	}
	if got := cg.Shared(2, 0); got != 2 {
		t.Errorf("Shared(2, 0) = %d, want 2", got)
	}
	if got := cg.Shared(0, 4); got != 0 {
		t.Errorf("Shared(0, 4) = %d, want 0", got)
	}
	if got := cg.Peers(5); !reflect.DeepEqual(got, []int{4}) {
		t.Errorf("Peers(5) = %v, want [4]", got)
	}
	if got := cg.Peers(1); len(got) != 0 {
		t.Errorf("Peers(1) = %v, want none", got)
	}

	want := [][]int{{0, 2}, {4, 5}}
	if got := cg.CollisionDomains(); !reflect.DeepEqual(got, want) {
		t.Errorf("CollisionDomains() = %v, want %v", got, want)
	}
}

func TestCollisionGraphNoEvents(t *testing.T) {
	cg := BuildCollisionGraph(3, nil)
	if got := cg.CollisionDomains(); len(got) != 0 {
		t.Errorf("CollisionDomains() = %v, want none", got)
	}
}

func TestCollisionGraphJoinsSameTick(t *testing.T) {
	events := []CollisionEvent{
		{Tick: 2, EndptID: 0, Colliding: []int{0}},
		{Tick: 2, EndptID: 3, Colliding: []int{3}},
		{Tick: 4, EndptID: 1, Colliding: []int{1}},
		{Tick: 7, EndptID: 0, Colliding: []int{0}},
		{Tick: 7, EndptID: 3, Colliding: []int{3}},
	}
	cg := BuildCollisionGraph(4, events)

	if got := cg.Shared(0, 3); got != 2 {
		t.Errorf("Shared(0, 3) = %d, want 2", got)
	}
	if got := cg.Peers(1); len(got) != 0 {
		t.Errorf("Peers(1) = %v, want none", got)
	}
	if got := cg.CollisionDomains(); !reflect.DeepEqual(got, [][]int{{0, 3}}) {
		t.Errorf("CollisionDomains() = %v, want [[0 3]]", got)
	}
}

func TestCollisionGraphFromRun(t *testing.T) {
	tests := []struct {
		name       string
		threshold  int
		wantShared int
		want       [][]int
	}{
		// every endpoint crosses the threshold at ticks 2 and 4
		{"lockstep_collisions", 1, 2, [][]int{{0, 1, 2, 3}}},
		{"no_collisions", 100, 0, [][]int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sp := testParams(4, 6, 1.0, tt.threshold)
			ct := CreateCollisionTrace(sp.ExpName, sp.NumEndpts, true)
			if _, err := RunSim(context.Background(), sp, WithCollisionObserver(ct)); err != nil {
				t.Fatalf("RunSim() error = %v", err)
			}

			cg := BuildCollisionGraph(sp.NumEndpts, ct.Events)
			if got := cg.Shared(0, 3); got != tt.wantShared {
				t.Errorf("Shared(0, 3) = %d, want %d", got, tt.wantShared)
			}
			if got := cg.CollisionDomains(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("CollisionDomains() = %v, want %v", got, tt.want)
			}
		})
	}
}
