// Package cube provides positional-cube covers and the set algebra on them.
//
// Representation
//
// A function is described by a Schema: a list of binary variables followed
// by multiple-valued variables, the last multiple-valued variable being the
// output part. Each binary variable owns two bits of a cube (the "0" and "1"
// values) and each multiple-valued variable owns one bit per value. A cube
// is the product of, for each variable, the set of values whose bit is set:
// a binary variable with both bits set is a don't care, with no bit set the
// cube is empty.
//
// A Cover is a list of cubes of the same schema, read as their union.
//
// Algebra
//
// The package computes cofactors, tautology, complements, intersections and
// the prime implicants of covers. All of them handle binary and
// multiple-valued variables alike, so that multiple-output functions are
// processed as single functions whose last variable is the output.
//
// Schemas are explicit values: covers built on different schemas can be
// processed concurrently.
package cube
