// Package state is your in-memory model of a hierarchical, interactive graph
// visualization: a directed multigraph whose nodes may be grouped into
// arbitrarily nested containers, where any container can be collapsed into a
// single opaque vertex or expanded to reveal its interior.
//
// 🚀 What is hypergraphstate/state?
//
//	A thread-hostile-by-design, single-writer core that brings together:
//
//	  • Entity store    — nodes, edges, containers, hyperedges by id
//	  • Adjacency index — incident-edge lookups, covered-edges bookkeeping
//	  • Visibility      — derived visible-node/edge/container/hyperedge caches
//	  • Container ops   — the collapse/expand protocol and its invariants
//	  • Aggregation     — builds hyperedges from crossing-edge groups
//	  • Validator       — checks structural invariants at API boundaries
//
// Under the hood, everything lives in one package so the invariant system
// (§3 of the design notes) can see every entity kind without crossing a
// package boundary; see DESIGN.md for the per-file grounding.
//
// A downstream layout engine and a downstream rendering engine consume the
// *visible* view this package derives; they are not implemented here — see
// the httpapi package for one concrete transport over that view.
//
//	go get github.com/hypergraphstate/hypergraphstate/state
package state
