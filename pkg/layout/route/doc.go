// Package route turns placed branches into drawable paths. Each branch gets
// a set of candidates — straight, gentle arcs in both senses, and a high
// bypass arc — scored against node bodies and previously routed edges, with
// a built-in bias toward straight lines. Parallel branches between the same
// node pair fan out symmetrically with a guaranteed minimum separation.
package route
