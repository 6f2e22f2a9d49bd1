package trim

import (
	"context"
	"log/slog"
	"sort"
)

type groupKey struct {
	entranceFrom    int64
	externalCluster int64
}

// Trim groups intra edges by (entrance_from, external_cluster_of(entrance_to)),
// keeps the MaxPerGroup cheapest per group (ties broken by entrance_to
// ascending), and deletes the rest. Edges with no external cluster are
// dead-ends and are never trimmed.
func Trim(ctx context.Context, r Reader, w Writer, log *slog.Logger) (Stats, error) {
	var stats Stats

	edges, err := r.IntraEdges(ctx)
	if err != nil {
		return stats, err
	}

	groups := make(map[groupKey][]IntraEdge)
	var untrimmed int
	for _, e := range edges {
		if e.ExternalCluster == nil {
			untrimmed++
			continue
		}
		k := groupKey{entranceFrom: e.EntranceFrom, externalCluster: *e.ExternalCluster}
		groups[k] = append(groups[k], e)
	}

	var toDelete []int64
	for _, group := range groups {
		sort.Slice(group, func(i, j int) bool {
			if group[i].Cost != group[j].Cost {
				return group[i].Cost < group[j].Cost
			}
			return group[i].EntranceTo < group[j].EntranceTo
		})
		stats.GroupsEvaluated++
		if len(group) <= MaxPerGroup {
			continue
		}
		for _, e := range group[MaxPerGroup:] {
			toDelete = append(toDelete, e.ID)
		}
	}

	if len(toDelete) == 0 {
		return stats, nil
	}

	sort.Slice(toDelete, func(i, j int) bool { return toDelete[i] < toDelete[j] })
	if err := w.DeleteEdges(ctx, toDelete); err != nil {
		return stats, err
	}
	stats.EdgesDeleted = len(toDelete)

	if log != nil {
		log.Info("intra edges trimmed", "groups", stats.GroupsEvaluated, "deleted", stats.EdgesDeleted, "untrimmed_dead_ends", untrimmed)
	}

	return stats, nil
}
