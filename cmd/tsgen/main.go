// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Command tsgen generates real-time task sets and derives task graphs, job
// sets, and segment sets from them.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "tsgen: %v\n", err)
		os.Exit(1)
	}
}
