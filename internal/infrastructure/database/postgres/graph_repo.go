package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"aegis-fraud-platform/internal/domain/graph"
)

// GraphNodeModel is the database model for graph nodes
type GraphNodeModel struct {
	NodeID    string    `gorm:"type:varchar(128);primaryKey"`
	NodeType  string    `gorm:"type:varchar(16);index;not null"`
	Label     string    `gorm:"type:varchar(128);not null"`
	RiskGroup string    `gorm:"type:varchar(32);index;not null"`
	Size      int       `gorm:"not null"`
	Title     string    `gorm:"type:varchar(64)"`
	Risk      float64   `gorm:"type:decimal(5,4);not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for graph nodes
func (GraphNodeModel) TableName() string {
	return "graph_nodes"
}

// GraphEdgeModel is the database model for graph edges
type GraphEdgeModel struct {
	FromNode  string    `gorm:"type:varchar(128);primaryKey"`
	ToNode    string    `gorm:"type:varchar(128);primaryKey"`
	Weight    float64   `gorm:"type:decimal(15,2);not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for graph edges
func (GraphEdgeModel) TableName() string {
	return "graph_edges"
}

// GraphRepository implements graph.Repository
type GraphRepository struct {
	db *gorm.DB
}

// NewGraphRepository creates a new graph repository
func NewGraphRepository(client *Client) *GraphRepository {
	return &GraphRepository{db: client.DB()}
}

// UpsertNodes upserts the nodes by node ID
func (r *GraphRepository) UpsertNodes(ctx context.Context, nodes []*graph.Node) error {
	if len(nodes) == 0 {
		return nil
	}
	models := make([]GraphNodeModel, 0, len(nodes))
	for _, n := range nodes {
		models = append(models, GraphNodeModel{
			NodeID:    n.NodeID,
			NodeType:  n.NodeType,
			Label:     n.Label,
			RiskGroup: string(n.Group),
			Size:      n.Size,
			Title:     n.Title,
			Risk:      n.Risk,
			UpdatedAt: n.UpdatedAt,
		})
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "node_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"node_type", "label", "risk_group", "size", "title", "risk", "updated_at",
			}),
		}).
		Create(&models).Error
}

// UpsertEdges upserts the edges by endpoint pair
func (r *GraphRepository) UpsertEdges(ctx context.Context, edges []graph.Edge) error {
	if len(edges) == 0 {
		return nil
	}
	now := time.Now().UTC()
	models := make([]GraphEdgeModel, 0, len(edges))
	for _, e := range edges {
		models = append(models, GraphEdgeModel{
			FromNode:  e.From,
			ToNode:    e.To,
			Weight:    e.Weight,
			UpdatedAt: now,
		})
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "from_node"}, {Name: "to_node"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"weight", "updated_at",
			}),
		}).
		Create(&models).Error
}

// ListNodes returns every stored node
func (r *GraphRepository) ListNodes(ctx context.Context) ([]*graph.Node, error) {
	var models []GraphNodeModel
	if err := r.db.WithContext(ctx).Order("node_id").Find(&models).Error; err != nil {
		return nil, err
	}
	nodes := make([]*graph.Node, 0, len(models))
	for i := range models {
		m := &models[i]
		nodes = append(nodes, &graph.Node{
			NodeID:    m.NodeID,
			NodeType:  m.NodeType,
			Label:     m.Label,
			Group:     graph.RiskTier(m.RiskGroup),
			Size:      m.Size,
			Title:     m.Title,
			Risk:      m.Risk,
			UpdatedAt: m.UpdatedAt,
		})
	}
	return nodes, nil
}

// ListEdges returns every stored edge
func (r *GraphRepository) ListEdges(ctx context.Context) ([]graph.Edge, error) {
	var models []GraphEdgeModel
	if err := r.db.WithContext(ctx).Order("from_node, to_node").Find(&models).Error; err != nil {
		return nil, err
	}
	edges := make([]graph.Edge, 0, len(models))
	for _, m := range models {
		edges = append(edges, graph.Edge{
			From:   m.FromNode,
			To:     m.ToNode,
			Weight: m.Weight,
		})
	}
	return edges, nil
}
