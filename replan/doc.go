// Package replan coordinates a steppable search with a grid that changes while
// the search runs.
//
// What:
//
//	Coordinator owns a grid, the current search.Engine, the last terminal
//	outcome and an obstacle injector. It exposes the commands of an interactive
//	pathfinding host: Start, TogglePause, Replan, ClearPath, NewMaze,
//	ToggleCell, strategy and heuristic selection, and dynamic mode.
//
//	States:
//
//	  Idle ──Start──▶ Running ◀─TogglePause─▶ Paused
//	                    │
//	                    └─terminal outcome─▶ Completed ──Start──▶ Running
//
//	A replan from any state discards the current engine and starts a fresh one
//	from the current grid and the original endpoints.
//
// Replan trigger:
//
//	Inject runs the injector when dynamic mode is on and a search is Running
//	(or Paused, with WithInjectWhilePaused). One or more new obstacles schedule a
//	replan after the settle delay. Further injections inside the window join the
//	same replan; the deadline is never pushed back. Tick fires a due replan.
//
// Time:
//
//	Tick and Inject take the current time explicitly so a host can drive the
//	coordinator in wall-clock time (Loop) or virtual time (RunVirtual).
//
// Concurrency:
//
//	Every method takes the coordinator mutex, so grid mutations from a host
//	goroutine always land between engine steps.
//
// Errors:
//
//	ErrBusy       - grid edit or clear requested while a search is active.
//	ErrNotRunning - Step or TogglePause with no active search.
//	ErrNilGrid    - New or NewMaze given a nil grid.
package replan
