// Package gridsearch is an incremental shortest-path playground for grids
// that change while you search them.
//
// What is gridsearch?
//
//	A steppable search engine plus the coordination needed to drive it from an
//	interactive host:
//		• Grid: rows × cols of free/obstacle cells with protected endpoints
//		• Heuristics: Manhattan (admissible) and Euclidean
//		• Search: A* and Greedy best-first, one expansion per Step
//		• Replanning: pause/resume, debounced replans on obstacle injection
//		• Oracle: brute-force BFS distances for checking optimality
//
// Why gridsearch?
//
//   - Deterministic: frontier ties break by insertion order, then coordinate
//   - Cooperative: every Step is a safe point to render, edit or cancel
//   - Observable: per-step metrics, zap lifecycle logs, Prometheus collectors
//
// Packages:
//
//	grid/      — Coordinate, Grid, ASCII parse/format, random layouts
//	heuristic/ — distance estimates and their Kind enum
//	search/    — steppable A* / Greedy engine
//	bfs/       — breadth-first reference search
//	inject/    — stochastic obstacle injection
//	replan/    — Coordinator state machine and driver loops
//	telemetry/ — Prometheus collectors
//	config/    — YAML configuration
//	logging/   — zap construction
//
// Quick ASCII example:
//
//	S.#.G
//	..#..
//	..#..
//	..#..
//	.....
//
// A wall with a gap at the bottom: the shortest S→G route goes through (4,2)
// and takes 12 moves.
//
//	go install github.com/katalvlaran/gridsearch/cmd/gridsearch@latest
//	gridsearch run --rows 30 --cols 40 --dynamic
package gridsearch
