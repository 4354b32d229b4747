// Package countscape provides shared helpers for loading and exploring
// RNA-seq count matrices. The root package holds file-format plumbing
// (delimiter sniffing, transparent decompression, path expansion); the
// actual data model and transformations live in the expr, tidy, exprstats,
// and pca subpackages.
package countscape
