package intra

import (
	"container/heap"

	"github.com/katalvlaran/hpagen/policy"
	"github.com/katalvlaran/hpagen/tilegraph"
)

// frontierItem is one entry in the deterministic frontier, ordered by
// (cost, x, y) as required for reproducible path selection across runs.
type frontierItem struct {
	cost int64
	c    tilegraph.Coord
}

type frontier []frontierItem

func (f frontier) Len() int { return len(f) }
func (f frontier) Less(i, j int) bool {
	if f[i].cost != f[j].cost {
		return f[i].cost < f[j].cost
	}
	return f[i].c.Less(f[j].c)
}
func (f frontier) Swap(i, j int)      { f[i], f[j] = f[j], f[i] }
func (f *frontier) Push(x any)        { *f = append(*f, x.(frontierItem)) }
func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	item := old[n-1]
	*f = old[:n-1]
	return item
}

// shortestPath runs the deterministic Dijkstra described for the Intra
// Connector: a lazy-decrease-key heap ordered by (cost,x,y), walking only
// tiles present in masks and steps admitted by oracle, stopping as soon as
// goal is extracted. It returns the total cost and the full tile sequence
// from source to goal (inclusive), or ok=false if goal is unreachable.
func shortestPath(source, goal tilegraph.Coord, masks map[tilegraph.Coord]policy.WalkMask, oracle *policy.Oracle, pol policy.Policy, cost MovementCost) (totalCost int64, path []tilegraph.Coord, ok bool) {
	if _, present := masks[source]; !present {
		return 0, nil, false
	}
	if _, present := masks[goal]; !present {
		return 0, nil, false
	}

	const unvisited = int64(-1)
	best := make(map[tilegraph.Coord]int64, len(masks))
	prev := make(map[tilegraph.Coord]tilegraph.Coord, len(masks))
	best[source] = 0

	fr := &frontier{{cost: 0, c: source}}
	heap.Init(fr)

	neighborhood := pol.Neighborhood()

	for fr.Len() > 0 {
		top := heap.Pop(fr).(frontierItem)
		cur := top.c
		if b, seen := best[cur]; !seen || top.cost != b {
			continue // stale lazy-decrease-key entry
		}
		if cur == goal {
			return top.cost, reconstruct(source, goal, prev), true
		}

		for _, d := range neighborhood {
			if !oracle.CanStep(cur, d) {
				continue
			}
			nb := policy.Neighbor(cur, d)
			if _, present := masks[nb]; !present {
				continue
			}
			step := cost.Straight
			if d.IsDiagonal() {
				step = cost.Diagonal
			}
			newCost := top.cost + step

			curBest, seen := best[nb]
			switch {
			case !seen || newCost < curBest:
				best[nb] = newCost
				prev[nb] = cur
				heap.Push(fr, frontierItem{cost: newCost, c: nb})
			case newCost == curBest:
				if existing, has := prev[nb]; !has || cur.Less(existing) {
					prev[nb] = cur
				}
			}
		}
	}

	return 0, nil, false
}

func reconstruct(source, goal tilegraph.Coord, prev map[tilegraph.Coord]tilegraph.Coord) []tilegraph.Coord {
	path := []tilegraph.Coord{goal}
	cur := goal
	for cur != source {
		p, ok := prev[cur]
		if !ok {
			return nil
		}
		path = append(path, p)
		cur = p
	}
	// reverse in place
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// breakpoints reduces a full tile path to direction-change points plus both
// endpoints, per the path storage rule.
func breakpoints(path []tilegraph.Coord) []tilegraph.Coord {
	if len(path) <= 2 {
		return path
	}
	out := []tilegraph.Coord{path[0]}
	prevDX, prevDY := sign(path[1].X-path[0].X), sign(path[1].Y-path[0].Y)
	for i := 1; i < len(path)-1; i++ {
		dx, dy := sign(path[i+1].X-path[i].X), sign(path[i+1].Y-path[i].Y)
		if dx != prevDX || dy != prevDY {
			out = append(out, path[i])
			prevDX, prevDY = dx, dy
		}
	}
	out = append(out, path[len(path)-1])
	return out
}

func sign(v int32) int32 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
