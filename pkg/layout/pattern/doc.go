// Package pattern recognizes recurring circuit sub-topologies — bridge, pi,
// T, and series chains — and collapses each occurrence into a single
// super-node with a known geometric template.
//
// Collapsing happens before node placement so the placer works on a smaller
// graph of well-shaped units; Expand later projects every matched node back
// to absolute coordinates through its template. Detection is greedy in fixed
// priority order (largest pattern first), so matches never overlap.
package pattern
