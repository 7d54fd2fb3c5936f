// Package mesh implements the triangle mesh encoders.
//
// SequentialEncoder stores face indices as zig-zag deltas followed by the attributes
// in point order. EdgebreakerEncoder traverses faces across shared edges, so most
// vertices are implied by the traversal, and writes attributes in traversal order.
package mesh
