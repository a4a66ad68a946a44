// Package mincov solves unate covering problems.
//
// A covering problem is a boolean matrix: a solution is a set of columns such
// that every row has a 1 in at least one of the chosen columns. Columns can be
// weighted, in which case the solution must have minimum total weight.
//
// Exact solutions are computed by translating the matrix into a
// pseudo-boolean optimization problem (one clause per row, the cost function
// being the weighted sum of the columns) solved by gophersat. A greedy
// heuristic is also available for large problems.
package mincov
