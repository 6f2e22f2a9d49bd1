package teleport

import (
	"context"
	"log/slog"
	"sort"
)

// CreateEdges runs Phase C: for every AbstractTeleportEdge whose src and dst
// entrances were both materialized by Phase A, inserts a directed
// interconnection, plus the reverse when kind is door. Idempotent:
// pre-deletes every teleport-sourced interconnection in scope first.
func CreateEdges(ctx context.Context, r EdgeReader, w EdgeWriter, log *slog.Logger) (Stats, error) {
	var stats Stats

	entrancesByEdge, err := r.TeleportEntrancesByEdge(ctx)
	if err != nil {
		return stats, err
	}
	edges, err := r.Edges(ctx)
	if err != nil {
		return stats, err
	}
	sort.Slice(edges, func(i, j int) bool { return edges[i].ID < edges[j].ID })

	if err := w.DeleteTeleportSourcedInterconnections(ctx); err != nil {
		return stats, err
	}

	var out []Interconnection
	for _, e := range edges {
		entries, ok := entrancesByEdge[e.ID]
		if !ok {
			continue
		}
		srcID, srcOK := matchEndpoint(entries, e.Src)
		dstID, dstOK := matchEndpoint(entries, e.Dst)
		if !srcOK || !dstOK {
			continue
		}

		out = append(out, Interconnection{From: srcID, To: dstID, Cost: e.Cost})
		if e.Kind == KindDoor {
			out = append(out, Interconnection{From: dstID, To: srcID, Cost: e.Cost})
		}
	}

	if len(out) > 0 {
		if err := w.UpsertInterconnections(ctx, out); err != nil {
			return stats, err
		}
	}
	stats.EdgesCreated = len(out)

	if log != nil {
		log.Info("teleport interconnections created", "edges", stats.EdgesCreated)
	}

	return stats, nil
}

func matchEndpoint(entries []MaterializedEntrance, ep Endpoint) (int64, bool) {
	if !ep.Present {
		return 0, false
	}
	for _, en := range entries {
		if en.X == ep.X && en.Y == ep.Y && en.Plane == ep.Plane {
			return en.EntranceID, true
		}
	}
	return 0, false
}
