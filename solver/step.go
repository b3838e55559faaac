package solver

import "github.com/akmonengine/joint2d/joint"

// Step and Settings are re-exported from package joint: every joint's
// InitializeConstraints/SolveVelocityConstraints/SolvePositionConstraints
// already takes them, so the solver driving those joints needs no type of
// its own — it just needs to fill one in correctly every substep.
type Step = joint.Step
type Settings = joint.Settings
