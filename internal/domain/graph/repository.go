package graph

import "context"

// Analyzer builds the relationship graph from transaction records and
// computes its structural risk. Implementations must not mutate the
// records slice.
type Analyzer interface {
	Analyze(records []TransactionRecord) (*Analysis, error)
}

// Repository persists the annotated graph between analysis runs.
type Repository interface {
	// UpsertNodes upserts the given nodes by node ID
	UpsertNodes(ctx context.Context, nodes []*Node) error

	// UpsertEdges upserts the given edges by endpoint pair
	UpsertEdges(ctx context.Context, edges []Edge) error

	// ListNodes returns every stored node
	ListNodes(ctx context.Context) ([]*Node, error)

	// ListEdges returns every stored edge
	ListEdges(ctx context.Context) ([]Edge, error)
}
