// Package ksp implements a Yen-like k-shortest-path generator on top of
// package spf: each call finds a bounded number of simple paths from a
// source to a destination in non-decreasing cost order, generating
// each by excluding edges/nodes used by previously yielded paths and
// rerunning SPF from a spur node.
//
// Complexity: O(K · V · spf-call), where K is the number of accepted
// paths and each candidate generation is one restricted SPF run.
package ksp
