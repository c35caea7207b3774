// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package pe tracks the remaining capacity of a fixed set of processing
// elements while tasks are mapped onto them.
package pe

import (
	"container/heap"
	"fmt"
)

// Element is one processing element. Remaining starts at the element's
// capacity and shrinks as utilization is assigned to it.
type Element struct {
	Index     int
	Remaining float64
	// Valid positions are greater than zero; zero means not in the heap.
	position int
}

// Set orders elements by remaining capacity, most available first, with ties
// broken by lower index.
type Set struct {
	impl elements
	// byIndex keeps first-fit scans in element order.
	byIndex []*Element
}

// NewSet returns count elements, each with the given capacity.
func NewSet(count int, capacity float64) *Set {
	if count < 1 {
		panic(fmt.Sprintf("processing element count %d < 1", count))
	}
	s := &Set{byIndex: make([]*Element, count)}
	for i := range count {
		e := &Element{Index: i, Remaining: capacity}
		s.byIndex[i] = e
		heap.Push(&s.impl, e)
	}
	return s
}

// Len returns the number of elements.
func (s *Set) Len() int {
	return len(s.byIndex)
}

// Element returns the element with the given index.
func (s *Set) Element(index int) *Element {
	return s.byIndex[index]
}

// WorstFit returns the element with the most remaining capacity.
func (s *Set) WorstFit() *Element {
	return s.impl.items[0]
}

// FirstFit returns the lowest-indexed element whose remaining capacity is at
// least u, or nil if none fits.
func (s *Set) FirstFit(u float64) *Element {
	for _, e := range s.byIndex {
		if e.Remaining >= u {
			return e
		}
	}
	return nil
}

// Assign charges u against e and restores the heap order.
func (s *Set) Assign(e *Element, u float64) {
	if e.position < 1 {
		panic("element reports invalid position")
	}
	e.Remaining -= u
	heap.Fix(&s.impl, e.position-1)
}

// elements implements container/heap.Interface.
type elements struct {
	items []*Element
}

func (h *elements) Len() int {
	return len(h.items)
}

func (h *elements) Less(i, j int) bool {
	a, b := h.items[i], h.items[j]
	if a.Remaining != b.Remaining {
		return a.Remaining > b.Remaining
	}
	return a.Index < b.Index
}

func (h *elements) Swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
	h.items[i].position = i + 1
	h.items[j].position = j + 1
}

func (h *elements) Push(x any) {
	e := x.(*Element)
	e.position = len(h.items) + 1
	h.items = append(h.items, e)
}

func (h *elements) Pop() any {
	old := h.items
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	h.items = old[:n-1]
	e.position = 0
	return e
}
