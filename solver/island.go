package solver

import "github.com/akmonengine/joint2d/body"

// Joint is the subset of joint.Joint this package depends on, restated
// locally so the world and island code depend only on the methods they
// call; any type with these methods (every joint in package joint) can be
// added to a World.
type Joint interface {
	Bodies() []*body.Body
	InitializeConstraints(step Step, settings Settings)
	SolveVelocityConstraints(step Step, settings Settings)
	SolvePositionConstraints(step Step, settings Settings) bool
	IsEnabled() bool
}

// Island is a maximal set of dynamic bodies connected through joints, plus
// every joint touching at least one of them. Bodies in different islands
// share no joint and so can be solved on separate goroutines without any
// lock (spec's concurrency model: single-threaded Gauss-Seidel within an
// island, independent islands run in parallel).
//
// A static body (body.IsStatic()) never merges two islands — it has no
// velocity to solve for, so a joint from island A's dynamic body to a
// shared static anchor doesn't couple island A to island B's use of the
// same anchor.
type Island struct {
	Bodies []*body.Body
	Joints []Joint
}

// partitionIslands groups joints (and the dynamic bodies they touch) into
// islands via union-find keyed by body identity.
func partitionIslands(joints []Joint) []*Island {
	parent := make(map[*body.Body]*body.Body)

	var find func(b *body.Body) *body.Body
	find = func(b *body.Body) *body.Body {
		root, ok := parent[b]
		if !ok {
			parent[b] = b
			return b
		}
		if root != b {
			root = find(root)
			parent[b] = root
		}
		return root
	}
	union := func(a, b *body.Body) {
		ra, rb := find(a), find(b)
		if ra != rb {
			parent[ra] = rb
		}
	}

	for _, j := range joints {
		var dynamic []*body.Body
		for _, b := range j.Bodies() {
			if !b.IsStatic() {
				dynamic = append(dynamic, b)
			}
		}
		for i := 1; i < len(dynamic); i++ {
			union(dynamic[0], dynamic[i])
		}
		for _, b := range dynamic {
			find(b) // ensure every lone dynamic body has a root too
		}
	}

	islands := make(map[*body.Body]*Island)
	order := make([]*body.Body, 0)

	bodySeen := make(map[*body.Body]bool)
	for _, j := range joints {
		var root *body.Body
		for _, b := range j.Bodies() {
			if !b.IsStatic() {
				root = find(b)
				break
			}
		}
		if root == nil {
			// joint touches only static bodies: nothing to solve for
			continue
		}
		isl, ok := islands[root]
		if !ok {
			isl = &Island{}
			islands[root] = isl
			order = append(order, root)
		}
		isl.Joints = append(isl.Joints, j)
		for _, b := range j.Bodies() {
			if b.IsStatic() {
				continue
			}
			if find(b) != root {
				continue
			}
			if !bodySeen[b] {
				bodySeen[b] = true
				isl.Bodies = append(isl.Bodies, b)
			}
		}
	}

	result := make([]*Island, 0, len(order))
	for _, root := range order {
		result = append(result, islands[root])
	}
	return result
}
