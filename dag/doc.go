// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package dag builds randomized precedence graphs over an existing task set.
//
// Tasks are partitioned into levels and every edge runs from one level to the
// next, so the graph is acyclic by construction. The graph refers to tasks
// only by their index in the set; task records are never modified.
package dag
