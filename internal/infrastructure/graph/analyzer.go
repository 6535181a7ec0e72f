package graph

import (
	"log/slog"
	"sort"

	gograph "gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/community"
	"gonum.org/v1/gonum/graph/network"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"

	"aegis-fraud-platform/internal/domain/graph"
)

// Ring detection thresholds: a community is a fraud ring when it has
// more than minRingSize members and its internal edge density exceeds
// minRingDensity.
const (
	minRingSize    = 3
	minRingDensity = 0.5
)

// Risk weights for the composite node score.
const (
	degreeWeight      = 0.30
	clusteringWeight  = 0.20
	betweennessWeight = 0.25
	closenessWeight   = 0.25
)

// Analyzer builds a weighted undirected relationship graph from
// transaction records and scores its structure. It implements
// graph.Analyzer.
type Analyzer struct {
	logger *slog.Logger
}

func NewAnalyzer(logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{logger: logger}
}

// snapshot is one built graph with its string<->internal id mapping.
type snapshot struct {
	weighted *simple.WeightedUndirectedGraph
	ids      map[string]int64
	names    map[int64]string
	types    map[int64]string
	nextID   int64
}

func newSnapshot() *snapshot {
	return &snapshot{
		weighted: simple.NewWeightedUndirectedGraph(0, 0),
		ids:      make(map[string]int64),
		names:    make(map[int64]string),
		types:    make(map[int64]string),
	}
}

func (s *snapshot) node(nodeType, rawID string) int64 {
	name := graph.NodeID(nodeType, rawID)
	if id, ok := s.ids[name]; ok {
		return id
	}
	id := s.nextID
	s.nextID++
	s.ids[name] = id
	s.names[id] = name
	s.types[id] = nodeType
	s.weighted.AddNode(simple.Node(id))
	return id
}

// setEdge records an edge, overwriting the weight of an existing pair.
// Repeated customer-card pairs therefore keep the latest amount.
func (s *snapshot) setEdge(u, v int64, weight float64) {
	if u == v {
		return
	}
	s.weighted.SetWeightedEdge(simple.WeightedEdge{
		F: simple.Node(u),
		T: simple.Node(v),
		W: weight,
	})
}

// Analyze builds the relationship graph from the records, detects
// dense communities, and computes each node's composite risk.
func (a *Analyzer) Analyze(records []graph.TransactionRecord) (*graph.Analysis, error) {
	if len(records) == 0 {
		return nil, graph.ErrNoTransactions
	}

	snap := newSnapshot()
	for _, rec := range records {
		customer := snap.node(graph.NodeTypeCustomer, rec.CustomerID)
		card := snap.node(graph.NodeTypeCard, rec.CardID)
		ip := snap.node(graph.NodeTypeIP, rec.IPAddress)

		snap.setEdge(customer, card, rec.Amount.InexactFloat64())
		snap.setEdge(customer, ip, 1.0)
	}

	if snap.weighted.Nodes().Len() == 0 {
		return nil, graph.ErrEmptyGraph
	}

	rings := a.detectRings(snap)
	risks := a.nodeRisks(snap)

	analysis := &graph.Analysis{
		Nodes: make([]graph.AnalyzedNode, 0, len(snap.ids)),
		Edges: collectEdges(snap),
		Rings: rings,
	}
	for id, name := range snap.names {
		analysis.Nodes = append(analysis.Nodes, graph.AnalyzedNode{
			NodeID:   name,
			NodeType: snap.types[id],
			Risk:     risks[id],
		})
	}
	sort.Slice(analysis.Nodes, func(i, j int) bool {
		return analysis.Nodes[i].NodeID < analysis.Nodes[j].NodeID
	})

	return analysis, nil
}

// detectRings partitions the graph into modularity communities and
// keeps the ones that are both large and dense enough to look
// coordinated. Community detection failure yields no rings rather than
// an error.
func (a *Analyzer) detectRings(snap *snapshot) (rings []graph.Ring) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Warn("community detection failed", slog.Any("panic", r))
			rings = nil
		}
	}()

	reduced := community.Modularize(snap.weighted, 1.0, nil)
	for _, members := range reduced.Communities() {
		if len(members) <= minRingSize {
			continue
		}
		density := communityDensity(snap, members)
		if density <= minRingDensity {
			continue
		}

		names := make([]string, 0, len(members))
		for _, m := range members {
			names = append(names, snap.names[m.ID()])
		}
		sort.Strings(names)
		rings = append(rings, graph.Ring{
			Members: names,
			Size:    len(names),
			Density: density,
		})
	}
	return rings
}

func communityDensity(snap *snapshot, members []gograph.Node) float64 {
	n := len(members)
	if n < 2 {
		return 0
	}
	edges := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if snap.weighted.HasEdgeBetween(members[i].ID(), members[j].ID()) {
				edges++
			}
		}
	}
	return float64(2*edges) / float64(n*(n-1))
}

// nodeRisks computes the composite risk per node: a weighted blend of
// degree, local clustering, betweenness and closeness. Centralities
// are evaluated on an unweighted view of the graph so edge amounts do
// not skew path lengths.
func (a *Analyzer) nodeRisks(snap *snapshot) map[int64]float64 {
	shadow := simple.NewUndirectedGraph()
	nodes := snap.weighted.Nodes()
	for nodes.Next() {
		shadow.AddNode(simple.Node(nodes.Node().ID()))
	}
	edges := snap.weighted.Edges()
	for edges.Next() {
		e := edges.Edge()
		shadow.SetEdge(simple.Edge{
			F: simple.Node(e.From().ID()),
			T: simple.Node(e.To().ID()),
		})
	}

	betweenness, closeness := a.centralities(shadow)
	n := len(snap.names)

	risks := make(map[int64]float64, n)
	for id := range snap.names {
		degree := float64(len(gograph.NodesOf(shadow.From(id))))
		degreeScore := degree / 10.0
		if degreeScore > 1 {
			degreeScore = 1
		}

		risk := degreeWeight*degreeScore +
			clusteringWeight*localClustering(shadow, id) +
			betweennessWeight*normalizedBetweenness(betweenness[id], n) +
			closenessWeight*normalizedCloseness(closeness[id], n)

		if risk > 1 {
			risk = 1
		}
		risks[id] = risk
	}
	return risks
}

// centralities computes betweenness and closeness, falling back to
// zero maps if either computation fails.
func (a *Analyzer) centralities(g *simple.UndirectedGraph) (betweenness, closeness map[int64]float64) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Warn("centrality computation failed", slog.Any("panic", r))
			betweenness = map[int64]float64{}
			closeness = map[int64]float64{}
		}
	}()

	betweenness = network.Betweenness(g)
	closeness = network.Closeness(g, path.DijkstraAllPaths(g))
	return betweenness, closeness
}

func normalizedBetweenness(raw float64, n int) float64 {
	if n < 3 {
		return 0
	}
	v := raw / float64((n-1)*(n-2))
	if v > 1 {
		v = 1
	}
	return v
}

func normalizedCloseness(raw float64, n int) float64 {
	if n < 2 {
		return 0
	}
	v := raw * float64(n-1)
	if v > 1 {
		v = 1
	}
	return v
}

// localClustering is the fraction of a node's neighbor pairs that are
// themselves connected.
func localClustering(g *simple.UndirectedGraph, id int64) float64 {
	neighbors := gograph.NodesOf(g.From(id))
	k := len(neighbors)
	if k < 2 {
		return 0
	}
	links := 0
	for i := 0; i < k; i++ {
		for j := i + 1; j < k; j++ {
			if g.HasEdgeBetween(neighbors[i].ID(), neighbors[j].ID()) {
				links++
			}
		}
	}
	return float64(2*links) / float64(k*(k-1))
}

func collectEdges(snap *snapshot) []graph.Edge {
	out := make([]graph.Edge, 0)
	it := snap.weighted.WeightedEdges()
	for it.Next() {
		e := it.WeightedEdge()
		from := snap.names[e.From().ID()]
		to := snap.names[e.To().ID()]
		if from > to {
			from, to = to, from
		}
		out = append(out, graph.Edge{From: from, To: to, Weight: e.Weight()})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}
		return out[i].To < out[j].To
	})
	return out
}
