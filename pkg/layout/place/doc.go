// Package place positions the units of a circuit graph: force-directed
// relaxation followed by grid snapping, axis alignment, symmetry
// enforcement, crowding-aware spacing, and centering, with an opt-in
// simulated-annealing pass that minimizes straight-line edge crossings.
//
// Everything here is deterministic. The force pipeline uses no randomness at
// all; annealing draws from an explicitly seeded PCG generator, so a fixed
// seed reproduces the exact same placement.
package place
