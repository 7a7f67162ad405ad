package builder

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/cloudscan/aws-resource-mapper/types"
)

func newTestGraphClient() *GraphClient {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewGraphClient(logger)
}

func TestBuild_EmptyInput(t *testing.T) {
	graphClient := newTestGraphClient()

	resourceGraph := graphClient.Build([]*types.Resource{}, types.LayoutConfig{HierarchyType: types.HierarchyTypeRegional})

	assert.Empty(t, resourceGraph.Nodes)
	assert.Empty(t, resourceGraph.Edges)
}

func TestBuild_OneNodePerResource(t *testing.T) {
	graphClient := newTestGraphClient()
	resources := []*types.Resource{
		{ID: "i-1", Type: "EC2 Instance", ServiceType: "EC2", Region: "us-east-1"},
		{ID: "i-2", Type: "EC2 Instance", ServiceType: "EC2", Region: "us-east-1", Relationships: types.Relationships{
			types.RelationshipSecurityGroups: {"sg-1"},
		}},
		{ID: "vol-1", Type: "EBS Volume", ServiceType: "EBS", Region: "eu-west-1"},
	}

	resourceGraph := graphClient.Build(resources, types.LayoutConfig{HierarchyType: types.HierarchyTypeRegional})

	assert.Len(t, resourceGraph.Nodes, len(resources))
}

func TestBuild_NoRelationshipsProducesNoEdges(t *testing.T) {
	graphClient := newTestGraphClient()
	resources := []*types.Resource{
		{ID: "i-1", Type: "EC2 Instance", ServiceType: "EC2", Region: "us-east-1"},
	}

	resourceGraph := graphClient.Build(resources, types.LayoutConfig{HierarchyType: types.HierarchyTypeGrouped})

	assert.Len(t, resourceGraph.Nodes, 1)
	assert.Empty(t, resourceGraph.Edges)
}

func TestBuild_DisplayNameFallsBackToID(t *testing.T) {
	graphClient := newTestGraphClient()
	resources := []*types.Resource{
		{ID: "i-1", Type: "EC2 Instance", ServiceType: "EC2", Region: "us-east-1"},
		{ID: "i-2", Name: "web", Type: "EC2 Instance", ServiceType: "EC2", Region: "us-east-1"},
	}

	resourceGraph := graphClient.Build(resources, types.LayoutConfig{HierarchyType: types.HierarchyTypeRegional})

	assert.Equal(t, "i-1", resourceGraph.Nodes[0].Name)
	assert.Equal(t, "web", resourceGraph.Nodes[1].Name)
}

func TestBuild_DeterministicPositions(t *testing.T) {
	graphClient := newTestGraphClient()
	resources := []*types.Resource{
		{ID: "r-1", Type: "EC2 Instance", ServiceType: "EC2", Region: "us-east-1"},
		{ID: "r-2", Type: "EC2 Instance", ServiceType: "EC2", Region: "eu-west-1"},
		{ID: "r-3", Type: "S3 Bucket", ServiceType: "S3", Region: "global"},
		{ID: "r-4", Type: "Route 53 Hosted Zone", ServiceType: "Route 53", Region: "global"},
	}

	for _, hierarchyType := range []types.HierarchyType{
		types.HierarchyTypeRegional,
		types.HierarchyTypeLayered,
		types.HierarchyTypeGrouped,
		types.HierarchyTypeCircular,
	} {
		layoutConfig := types.LayoutConfig{HierarchyType: hierarchyType, VerticalSpacing: 100, HorizontalSpacing: 120}
		first := graphClient.Build(resources, layoutConfig)
		second := graphClient.Build(resources, layoutConfig)
		assert.Equal(t, first.Nodes, second.Nodes, "layout %s should be deterministic", hierarchyType)
		assert.Equal(t, first.Edges, second.Edges, "edges for %s should be deterministic", hierarchyType)
	}
}

func TestBuild_DoesNotMutateResources(t *testing.T) {
	graphClient := newTestGraphClient()
	resource := &types.Resource{
		ID: "tg-1", Type: types.ResourceTypeTargetGroup, ServiceType: "ELB", Region: "us-east-1",
		Relationships: types.Relationships{types.RelationshipLoadBalancer: {"lb-1"}},
	}

	graphClient.Build([]*types.Resource{resource}, types.LayoutConfig{HierarchyType: types.HierarchyTypeCircular})

	assert.Equal(t, "tg-1", resource.ID)
	assert.Equal(t, types.IDList{"lb-1"}, resource.Relationships[types.RelationshipLoadBalancer])
}

func TestSelectEdge(t *testing.T) {
	edges := []types.Edge{
		{ID: "e-1", Source: "a", Target: "b"},
		{ID: "e-2", Source: "b", Target: "c", Selected: true},
	}

	selected := SelectEdge(edges, "e-1")

	assert.True(t, selected[0].Selected)
	assert.False(t, selected[1].Selected)
	// Selection never changes edge existence.
	assert.Len(t, selected, 2)
}
