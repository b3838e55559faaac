package solver

import (
	"math"
	"sync"

	"github.com/akmonengine/joint2d/body"
	"github.com/go-gl/mathgl/mgl64"
)

// DefaultWorkers matches feather's pipeline.go default of a single worker
// when unset — islands only actually run concurrently once Workers > 1.
const DefaultWorkers = 1

const (
	sleepVelocityThreshold = 0.05
	sleepAngularThreshold  = 0.05
	sleepTimeThreshold     = 0.5
)

// World owns the bodies and joints of one simulation and steps them
// forward, generalizing feather's World.Step (integrate / solve / update
// phases, task()-based worker pool) from a contact-constraint pipeline to
// an island-partitioned joint solve (spec's concurrency model).
type World struct {
	Bodies []*body.Body
	Joints []Joint

	Gravity  mgl64.Vec2
	Substeps int
	Workers  int

	VelocityIterations int
	PositionIterations int
	Settings           Settings

	Events Events

	sleepTimers map[*body.Body]float64
	prevH       float64
}

// NewWorld returns a world with one substep, four velocity iterations, two
// position iterations, and the given gravity.
func NewWorld(gravity mgl64.Vec2) *World {
	return &World{
		Gravity:            gravity,
		Substeps:           1,
		Workers:            DefaultWorkers,
		VelocityIterations: 4,
		PositionIterations: 2,
		Settings: Settings{
			LinearTolerance:      0.005,
			AngularTolerance:     2.0 * math.Pi / 180,
			MaxLinearCorrection:  0.2,
			MaxAngularCorrection: 8.0 * math.Pi / 180,
		},
		Events:      NewEvents(),
		sleepTimers: make(map[*body.Body]float64),
	}
}

// AddBody adds a body to the world.
func (w *World) AddBody(b *body.Body) {
	w.Bodies = append(w.Bodies, b)
}

// RemoveBody removes a body and forgets any tracked sleep/timer state for it.
func (w *World) RemoveBody(b *body.Body) {
	for i, candidate := range w.Bodies {
		if candidate == b {
			w.Bodies = append(w.Bodies[:i], w.Bodies[i+1:]...)
			break
		}
	}
	delete(w.sleepTimers, b)
	w.Events.forgetBody(b)
}

// AddJoint adds a joint to the world. j's concrete type must implement the
// local Joint interface (every joint in package joint does).
func (w *World) AddJoint(j Joint) {
	w.Joints = append(w.Joints, j)
}

// RemoveJoint removes a joint and forgets its tracked enabled state.
func (w *World) RemoveJoint(j Joint) {
	for i, candidate := range w.Joints {
		if candidate == j {
			w.Joints = append(w.Joints[:i], w.Joints[i+1:]...)
			break
		}
	}
	w.Events.forgetJoint(j)
}

// Step advances the world by dt, split into Substeps sub-steps (spec: each
// substep integrates velocity, solves every island's joints, integrates
// position, then checks for sleep).
func (w *World) Step(dt float64) {
	w.Workers = max(DefaultWorkers, w.Workers)
	substeps := max(1, w.Substeps)
	h := dt / float64(substeps)

	for i := 0; i < substeps; i++ {
		w.integrateVelocities(h)

		islands := partitionIslands(w.Joints)
		ratio := 1.0
		if w.prevH > 0 {
			ratio = h / w.prevH
		}
		invH := 0.0
		if h > 0 {
			invH = 1.0 / h
		}
		step := Step{Dt: h, InvDt: invH, DtRatio: ratio}
		w.prevH = h

		w.solveIslands(islands, step)
		w.integratePositions(h)
		w.trySleep(h)
	}

	w.Events.recordSleepStates(w.Bodies)
	w.Events.recordJointStates(w.Joints)
	w.Events.flush()
}

func (w *World) integrateVelocities(h float64) {
	runBodies(w.Workers, w.Bodies, func(b *body.Body) {
		if b.IsStatic() || b.IsAtRest() || !b.IsEnabled() {
			return
		}
		b.Velocity = b.Velocity.Add(w.Gravity.Mul(h))
	})
}

func (w *World) integratePositions(h float64) {
	runBodies(w.Workers, w.Bodies, func(b *body.Body) {
		if b.IsStatic() || b.IsAtRest() || !b.IsEnabled() {
			return
		}
		b.Translate(b.Velocity.Mul(h))
		b.RotateAboutCenter(b.AngularVelocity * h)
	})
}

// solveIslands runs each island's Gauss-Seidel solve, distributing whole
// islands (never individual joints) across goroutines so no lock is needed
// within a solve (spec's concurrency model).
func (w *World) solveIslands(islands []*Island, step Step) {
	runIslands(w.Workers, islands, func(isl *Island) {
		for _, j := range isl.Joints {
			if j.IsEnabled() {
				j.InitializeConstraints(step, w.Settings)
			}
		}
		for iter := 0; iter < w.VelocityIterations; iter++ {
			for _, j := range isl.Joints {
				if j.IsEnabled() {
					j.SolveVelocityConstraints(step, w.Settings)
				}
			}
		}
		for iter := 0; iter < w.PositionIterations; iter++ {
			converged := true
			for _, j := range isl.Joints {
				if !j.IsEnabled() {
					continue
				}
				if !j.SolvePositionConstraints(step, w.Settings) {
					converged = false
				}
			}
			if converged {
				break
			}
		}
	})
}

// trySleep puts each slow-enough body to rest after it has stayed below the
// velocity thresholds for sleepTimeThreshold seconds (feather's
// RigidBody.TrySleep, generalized to 2D and tracked per-world since body.Body
// carries no timer of its own).
func (w *World) trySleep(h float64) {
	for _, b := range w.Bodies {
		if b.IsStatic() || !b.IsEnabled() {
			continue
		}
		slow := b.Velocity.Len() < sleepVelocityThreshold &&
			absF(b.AngularVelocity) < sleepAngularThreshold
		if slow {
			w.sleepTimers[b] += h
			if w.sleepTimers[b] >= sleepTimeThreshold {
				b.Sleep()
			}
		} else {
			w.sleepTimers[b] = 0
			b.WakeUp()
		}
	}
}

func absF(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// runBodies and runIslands both generalize feather's pipeline.go task(): a
// fixed worker count, chunked by index range, one WaitGroup per call.
func runBodies(workers int, bodies []*body.Body, fn func(*body.Body)) {
	if len(bodies) == 0 {
		return
	}
	workers = clampWorkers(workers, len(bodies))
	if workers <= 1 {
		for _, b := range bodies {
			fn(b)
		}
		return
	}

	var wg sync.WaitGroup
	chunk := (len(bodies) + workers - 1) / workers
	for start := 0; start < len(bodies); start += chunk {
		end := start + chunk
		if end > len(bodies) {
			end = len(bodies)
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				fn(bodies[i])
			}
		}(start, end)
	}
	wg.Wait()
}

func runIslands(workers int, islands []*Island, fn func(*Island)) {
	if len(islands) == 0 {
		return
	}
	workers = clampWorkers(workers, len(islands))
	if workers <= 1 {
		for _, isl := range islands {
			fn(isl)
		}
		return
	}

	var wg sync.WaitGroup
	chunk := (len(islands) + workers - 1) / workers
	for start := 0; start < len(islands); start += chunk {
		end := start + chunk
		if end > len(islands) {
			end = len(islands)
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				fn(islands[i])
			}
		}(start, end)
	}
	wg.Wait()
}

func clampWorkers(workers, n int) int {
	if workers > n {
		return n
	}
	if workers < 1 {
		return 1
	}
	return workers
}
