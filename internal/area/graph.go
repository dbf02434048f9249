package area

import (
	"errors"
	"fmt"
	"sort"

	"github.com/dominikbraun/graph"
)

// Graph is the directed room connectivity graph of an area.
type Graph = graph.Graph[RoomID, *Room]

func roomHash(r *Room) RoomID { return r.ID }

// Graph builds the directed connectivity graph of the area. Every exit, compass
// or extra, whose target is a room of the area becomes one edge; repeated exits
// to the same target collapse into the first one. Self-loops are dropped.
//
// Postcondition: Returns a graph holding every room of the area, or a non-nil error.
func (a *Area) Graph() (Graph, error) {
	g := graph.New(roomHash, graph.Directed())
	for _, r := range a.Rooms {
		if err := g.AddVertex(r); err != nil && !errors.Is(err, graph.ErrVertexAlreadyExists) {
			return nil, fmt.Errorf("adding room %d: %w", r.ID, err)
		}
	}
	for _, r := range a.Rooms {
		for _, e := range r.AllExits() {
			if e.Target == r.ID {
				continue
			}
			err := g.AddEdge(r.ID, e.Target, graph.EdgeAttribute("direction", string(e.Direction)))
			switch {
			case err == nil, errors.Is(err, graph.ErrEdgeAlreadyExists):
			case errors.Is(err, graph.ErrVertexNotFound):
				// exit leaves the area or targets an ignored room
			default:
				return nil, fmt.Errorf("adding exit %d -> %d: %w", r.ID, e.Target, err)
			}
		}
	}
	return g, nil
}

// Neighbours returns every room connected to id by an exit in either direction,
// sorted by id.
func Neighbours(g Graph, id RoomID) ([]RoomID, error) {
	adj, err := g.AdjacencyMap()
	if err != nil {
		return nil, err
	}
	pred, err := g.PredecessorMap()
	if err != nil {
		return nil, err
	}
	set := make(map[RoomID]bool)
	for to := range adj[id] {
		set[to] = true
	}
	for from := range pred[id] {
		set[from] = true
	}
	out := make([]RoomID, 0, len(set))
	for n := range set {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

// HasEdge reports whether g holds a direct connection from one room to another.
func HasEdge(g Graph, from, to RoomID) bool {
	_, err := g.Edge(from, to)
	return err == nil
}
