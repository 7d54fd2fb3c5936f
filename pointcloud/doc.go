// Package pointcloud implements the point cloud encoders: a sequential encoder that
// writes every attribute in point order, and a k-d tree encoder that compresses a
// single position attribute by recursive spatial partitioning.
//
// Both encoders write a section.Header followed by a compressed body. The body codec
// is chosen from the configured speed via compress.ForSpeed.
package pointcloud
