// Package pkg provides the core libraries for Arkigraf graph visualization.
//
// # Overview
//
// Arkigraf turns architect-building relation records into an explorable
// force-directed graph. The pkg directory is organized by pipeline stage:
//
//  1. [relation] - Bipartite graph model built from relation records
//  2. [force] - Force-directed simulation and headless layout runs
//  3. [scene] - Visual primitives and the SVG/DOT/Graphviz sinks
//  4. [interact] - Pointer interaction state machine and side panel
//  5. [viewport] - Pan/zoom transform and canvas sizing
//  6. [pipeline] - Orchestration (build → layout → render) with caching
//
// # Architecture
//
// The typical data flow:
//
//	records.json
//	         ↓
//	relation.Build              bipartite graph
//	         ↓
//	force.Simulation            settled positions
//	         ↓
//	scene                       primitives → SVG / DOT / PNG / terminal view
//
// The interactive view drives the same simulation tick by tick and feeds
// pointer events through the interact controller; the headless pipeline runs
// it to the settle threshold and caches the result.
package pkg
