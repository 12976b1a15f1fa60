package world

import (
	"container/heap"
	"math"
	"slices"
)

// maxAStarSteps bounds how many tiles a single search may expand.
const maxAStarSteps = 65536

// Path is the result of an A* search. Steps holds tile indices from the
// start to the goal inclusive.
type Path struct {
	Success bool
	Steps   []int
}

// AStar finds the cheapest route between two tile indices. The goal tile is
// always enterable even when something stands on it.
func AStar(start, end int, m *Map) Path {
	n := len(m.Tiles)
	if start < 0 || start >= n || end < 0 || end >= n {
		return Path{}
	}
	if start == end {
		return Path{Success: true, Steps: []int{start}}
	}

	goal := m.Pos(end)
	cost := make([]float64, n)
	for i := range cost {
		cost[i] = math.Inf(1)
	}
	parent := make([]int, n)
	closed := make([]bool, n)

	open := &openSet{}
	cost[start] = 0
	heap.Push(open, &searchNode{idx: start, f: DistancePythagoras(m.Pos(start), goal)})

	var seq uint64
	for expanded := 0; open.Len() > 0 && expanded < maxAStarSteps; {
		current := heap.Pop(open).(*searchNode)
		if closed[current.idx] {
			continue
		}
		if current.idx == end {
			return Path{Success: true, Steps: walkBack(parent, start, end)}
		}
		closed[current.idx] = true
		expanded++

		for _, exit := range m.exitsToward(current.idx, end) {
			if closed[exit.Idx] {
				continue
			}
			g := cost[current.idx] + exit.Cost
			if g >= cost[exit.Idx] {
				continue
			}
			cost[exit.Idx] = g
			parent[exit.Idx] = current.idx
			seq++
			heap.Push(open, &searchNode{
				idx: exit.Idx,
				f:   g + DistancePythagoras(m.Pos(exit.Idx), goal),
				seq: seq,
			})
		}
	}
	return Path{}
}

func walkBack(parent []int, start, end int) []int {
	steps := []int{end}
	for idx := end; idx != start; {
		idx = parent[idx]
		steps = append(steps, idx)
	}
	slices.Reverse(steps)
	return steps
}

type searchNode struct {
	idx int
	f   float64
	seq uint64
}

// openSet is a min-heap on f; ties go to the node queued first.
type openSet []*searchNode

func (s openSet) Len() int { return len(s) }

func (s openSet) Less(i, j int) bool {
	if s[i].f != s[j].f {
		return s[i].f < s[j].f
	}
	return s[i].seq < s[j].seq
}

func (s openSet) Swap(i, j int) { s[i], s[j] = s[j], s[i] }

func (s *openSet) Push(x any) { *s = append(*s, x.(*searchNode)) }

func (s *openSet) Pop() any {
	old := *s
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*s = old[:n-1]
	return item
}
