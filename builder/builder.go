package builder

import (
	"github.com/sirupsen/logrus"

	"github.com/cloudscan/aws-resource-mapper/layout"
	"github.com/cloudscan/aws-resource-mapper/types"
)

type IGraphClient interface {
	Build(resources []*types.Resource, layoutConfig types.LayoutConfig) *types.ResourceGraph
}

// GraphClient derives a positioned node-and-edge graph from a flat scan
// result. The derivation is pure: the same resources and layout always
// produce the same graph, and the input resources are never mutated.
type GraphClient struct {
	Logger *logrus.Logger
}

func NewGraphClient(logger *logrus.Logger) *GraphClient {
	return &GraphClient{
		Logger: logger,
	}
}

func (graphClient *GraphClient) Build(resources []*types.Resource, layoutConfig types.LayoutConfig) *types.ResourceGraph {
	return &types.ResourceGraph{
		Nodes: graphClient.buildNodes(resources, layoutConfig),
		Edges: graphClient.buildEdges(resources),
	}
}

// buildNodes emits one node per resource, relationships or not. Duplicate
// resource IDs are not rejected; they share the last computed position.
func (graphClient *GraphClient) buildNodes(resources []*types.Resource, layoutConfig types.LayoutConfig) []types.Node {
	positions := layout.Positions(resources, layoutConfig)

	nodes := make([]types.Node, 0, len(resources))
	for _, resource := range resources {
		nodes = append(nodes, types.Node{
			ID:          resource.ID,
			Name:        resource.DisplayName(),
			Type:        resource.Type,
			ServiceType: resource.ServiceType,
			Region:      resource.Region,
			URL:         resource.URL,
			Position:    positions[resource.ID],
		})
		graphClient.Logger.Tracef("Adding Node: %s", resource.ID)
	}
	return nodes
}

// SelectEdge marks the edge with the given ID as selected and clears the
// flag on every other edge. Selection is presentation state only; it never
// adds or removes edges.
func SelectEdge(edges []types.Edge, edgeID string) []types.Edge {
	selected := make([]types.Edge, len(edges))
	for i, edge := range edges {
		edge.Selected = edge.ID == edgeID
		selected[i] = edge
	}
	return selected
}
