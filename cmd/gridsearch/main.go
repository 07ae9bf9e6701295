// Command gridsearch runs incremental A* and Greedy best-first searches on a
// grid that can change while the search runs.
//
//	gridsearch run --rows 30 --cols 40 --strategy greedy --dynamic
//	gridsearch tui
//	gridsearch config > gridsearch.yaml
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
