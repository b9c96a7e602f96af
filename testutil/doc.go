// Package testutil provides testing utilities for vptree.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating random point sets, computing exact
// nearest neighbors, and verifying search recall.
//
// # Random Point Generation
//
//	rng := testutil.NewRNG(seed)
//	points := rng.UniformVectors(1000, 16)   // uniform [0, 1)
//	points = rng.GaussianVectors(1000, 16)   // standard normal
//	points = rng.ClusteredVectors(1000, 16, 8, 0.1)
//
// # Exact Search (Ground Truth)
//
//	truth, err := testutil.BruteForceSearch(points, query, k, metric.Euclidean)
//
// # Recall Verification
//
//	recall := testutil.ComputeRecall(truth, got)
package testutil
