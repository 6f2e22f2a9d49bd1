package intra

import (
	"context"
	"log/slog"
	"sort"

	"github.com/katalvlaran/hpagen/policy"
	"github.com/katalvlaran/hpagen/tilegraph"
)

// Connect computes all-pairs shortest intra-cluster paths between entrances,
// for every cluster with at least two entrances, and upserts the resulting
// edges one cluster at a time so memory stays bounded and progress is
// visible between clusters.
func Connect(ctx context.Context, r Reader, w Writer, pol policy.Policy, cost MovementCost, storePaths bool, log *slog.Logger) (Stats, error) {
	var stats Stats

	clusters, err := r.ClustersWithMultipleEntrances(ctx)
	if err != nil {
		return stats, err
	}

	for _, cw := range clusters {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		edges := connectCluster(cw, pol, cost, storePaths)
		if err := w.UpsertCluster(ctx, cw.ClusterID, edges); err != nil {
			return stats, err
		}

		if log != nil {
			log.Info("intra edges computed", "cluster_id", cw.ClusterID, "edges", len(edges))
		}
		stats.ClustersProcessed++
		stats.EdgesCreated += len(edges)
	}

	return stats, nil
}

// connectCluster handles one cluster: external-cluster precomputation,
// redundant-pair skip, and the deterministic Dijkstra for every remaining
// ordered entrance pair.
func connectCluster(cw ClusterWork, pol policy.Policy, cost MovementCost, storePaths bool) []Edge {
	// Drop entrances whose coordinate is not actually in the cluster's tile
	// set — §4.5 step 2.
	valid := cw.Entrances[:0:0]
	for _, e := range cw.Entrances {
		if _, ok := cw.Tiles[tilegraph.Coord{X: e.X, Y: e.Y, Plane: cw.Plane}]; ok {
			valid = append(valid, e)
		}
	}
	if len(valid) < 2 {
		return nil
	}

	oracle := policy.NewOracle(pol, cw.Tiles)

	var edges []Edge
	for i, from := range valid {
		fromCoord := tilegraph.Coord{X: from.X, Y: from.Y, Plane: cw.Plane}
		for j, to := range valid {
			if i == j {
				continue
			}
			if from.ExternalCluster != nil && to.ExternalCluster != nil && *from.ExternalCluster == *to.ExternalCluster {
				continue // redundant: both exit into the same external cluster
			}

			toCoord := tilegraph.Coord{X: to.X, Y: to.Y, Plane: cw.Plane}
			total, path, ok := shortestPath(fromCoord, toCoord, cw.Tiles, oracle, pol, cost)
			if !ok {
				continue
			}

			edge := Edge{From: from.ID, To: to.ID, Cost: total}
			if storePaths {
				edge.Path = breakpoints(path)
			}
			edges = append(edges, edge)
		}
	}

	sort.Slice(edges, func(i, j int) bool {
		if edges[i].From != edges[j].From {
			return edges[i].From < edges[j].From
		}
		return edges[i].To < edges[j].To
	})
	return edges
}
