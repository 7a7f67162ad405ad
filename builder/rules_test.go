package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cloudscan/aws-resource-mapper/types"
)

func edgesWithLabel(edges []types.Edge, label string) []types.Edge {
	matches := []types.Edge{}
	for _, edge := range edges {
		if edge.Label == label {
			matches = append(matches, edge)
		}
	}
	return matches
}

func TestBuildEdges_SecurityGroups(t *testing.T) {
	graphClient := newTestGraphClient()
	resources := []*types.Resource{
		{ID: "i-1", Type: "EC2 Instance", ServiceType: "EC2", Region: "us-east-1", Relationships: types.Relationships{
			types.RelationshipSecurityGroups: {"sg-1", "sg-2"},
		}},
	}

	edges := graphClient.buildEdges(resources)

	// Two edges even though sg-1 and sg-2 are not resources in the scan.
	sgEdges := edgesWithLabel(edges, "Security Group")
	assert.Len(t, sgEdges, 2)
	assert.Equal(t, "i-1", sgEdges[0].Source)
	assert.Equal(t, "sg-1", sgEdges[0].Target)
	assert.Equal(t, "i-1", sgEdges[1].Source)
	assert.Equal(t, "sg-2", sgEdges[1].Target)
}

func TestBuildEdges_TargetGroupToLoadBalancer(t *testing.T) {
	graphClient := newTestGraphClient()
	resources := []*types.Resource{
		{ID: "tg-1", Type: types.ResourceTypeTargetGroup, ServiceType: "ELB", Region: "us-east-1", Relationships: types.Relationships{
			types.RelationshipLoadBalancer: {"lb-1"},
		}},
	}

	edges := graphClient.buildEdges(resources)

	tgEdges := edgesWithLabel(edges, "Target Group")
	assert.Len(t, tgEdges, 1)
	assert.Equal(t, "lb-1", tgEdges[0].Source)
	assert.Equal(t, "tg-1", tgEdges[0].Target)
}

func TestBuildEdges_DNSAliasTrailingDot(t *testing.T) {
	graphClient := newTestGraphClient()
	resources := []*types.Resource{
		{ID: "Z1/api.example.com./A", Name: "api.example.com.", Type: types.ResourceTypeRoute53Record, ServiceType: "Route 53", Region: "global"},
		{ID: "lb-1", Type: types.ResourceTypeLoadBalancer, ServiceType: "ELB", Region: "us-east-1", Relationships: types.Relationships{
			types.RelationshipDNSRecords: {"api.example.com"},
		}},
	}

	edges := graphClient.buildEdges(resources)

	dnsEdges := edgesWithLabel(edges, "DNS Alias")
	assert.Len(t, dnsEdges, 1)
	assert.Equal(t, "Z1/api.example.com./A", dnsEdges[0].Source)
	assert.Equal(t, "lb-1", dnsEdges[0].Target)
}

func TestBuildEdges_DNSAliasSuffixMatchEmitsEdgePerMatch(t *testing.T) {
	graphClient := newTestGraphClient()
	resources := []*types.Resource{
		{ID: "rec-1", Name: "www.example.com", Type: types.ResourceTypeRoute53Record, ServiceType: "Route 53", Region: "global"},
		{ID: "lb-1", Type: types.ResourceTypeLoadBalancer, ServiceType: "ELB", Region: "us-east-1", Relationships: types.Relationships{
			types.RelationshipDNSRecords: {"example.com"},
		}},
		{ID: "lb-2", Type: types.ResourceTypeLoadBalancer, ServiceType: "ELB", Region: "eu-west-1", Relationships: types.Relationships{
			types.RelationshipDNSRecords: {"www.example.com"},
		}},
	}

	edges := graphClient.buildEdges(resources)

	// A record may match multiple load balancers; every match gets an edge.
	assert.Len(t, edgesWithLabel(edges, "DNS Alias"), 2)
}

func TestBuildEdges_HostedZonePrefix(t *testing.T) {
	graphClient := newTestGraphClient()
	resources := []*types.Resource{
		{ID: "Z123/api.example.com/A", Name: "api.example.com", Type: types.ResourceTypeRoute53Record, ServiceType: "Route 53", Region: "global"},
		{ID: "Z123", Name: "example.com", Type: types.ResourceTypeHostedZone, ServiceType: "Route 53", Region: "global"},
		{ID: "Z999", Name: "other.com", Type: types.ResourceTypeHostedZone, ServiceType: "Route 53", Region: "global"},
	}

	edges := graphClient.buildEdges(resources)

	recordEdges := edgesWithLabel(edges, "Record")
	assert.Len(t, recordEdges, 1)
	assert.Equal(t, "Z123", recordEdges[0].Source)
	assert.Equal(t, "Z123/api.example.com/A", recordEdges[0].Target)
}

func TestBuildEdges_CertificateToLoadBalancer(t *testing.T) {
	graphClient := newTestGraphClient()
	resources := []*types.Resource{
		{ID: "cert-1", Type: types.ResourceTypeCertificate, ServiceType: "ACM", Region: "us-east-1", Relationships: types.Relationships{
			types.RelationshipLoadBalancer: {"lb-1"},
		}},
	}

	edges := graphClient.buildEdges(resources)

	sslEdges := edgesWithLabel(edges, "SSL/TLS")
	assert.Len(t, sslEdges, 1)
	assert.Equal(t, "cert-1", sslEdges[0].Source)
	assert.Equal(t, "lb-1", sslEdges[0].Target)
}

func TestBuildEdges_Volumes(t *testing.T) {
	graphClient := newTestGraphClient()
	resources := []*types.Resource{
		{ID: "i-1", Type: "EC2 Instance", ServiceType: "EC2", Region: "us-east-1", Relationships: types.Relationships{
			types.RelationshipVolumes: {"vol-1", "vol-2"},
		}},
	}

	edges := graphClient.buildEdges(resources)

	assert.Len(t, edgesWithLabel(edges, "Volume"), 2)
}

func TestBuildEdges_GatewayRouting(t *testing.T) {
	graphClient := newTestGraphClient()
	resources := []*types.Resource{
		{ID: "igw-1", Type: types.ResourceTypeInternetGateway, ServiceType: "EC2", Region: "us-east-1"},
		{ID: "nat-1", Type: types.ResourceTypeNATGateway, ServiceType: "EC2", Region: "us-east-1"},
		{ID: "lb-1", Type: types.ResourceTypeLoadBalancer, ServiceType: "ELB", Region: "us-east-1"},
		{ID: "lb-other", Type: types.ResourceTypeLoadBalancer, ServiceType: "ELB", Region: "eu-west-1"},
	}

	edges := graphClient.buildEdges(resources)

	// igw->lb, nat->lb only in the shared region, plus igw->nat.
	assert.Len(t, edgesWithLabel(edges, "Routes"), 2)
	natEdges := edgesWithLabel(edges, "NAT Gateway")
	assert.Len(t, natEdges, 1)
	assert.Equal(t, "igw-1", natEdges[0].Source)
	assert.Equal(t, "nat-1", natEdges[0].Target)
}

func TestBuildEdges_ECSServiceWiring(t *testing.T) {
	graphClient := newTestGraphClient()
	resources := []*types.Resource{
		{ID: "arn:aws:ecs:us-east-1:1:service/web-cluster/api", Type: types.ResourceTypeECSService, ServiceType: "ECS", Region: "us-east-1", Relationships: types.Relationships{
			types.RelationshipTargetGroups: {"tg-1"},
		}},
		{ID: "arn:aws:ecs:us-east-1:1:cluster/web-cluster", Name: "web-cluster", Type: types.ResourceTypeECSCluster, ServiceType: "ECS", Region: "us-east-1"},
	}

	edges := graphClient.buildEdges(resources)

	tgEdges := edgesWithLabel(edges, "Target Group")
	assert.Len(t, tgEdges, 1)
	assert.Equal(t, "tg-1", tgEdges[0].Target)

	serviceEdges := edgesWithLabel(edges, "Service")
	assert.Len(t, serviceEdges, 1)
	assert.Equal(t, "arn:aws:ecs:us-east-1:1:cluster/web-cluster", serviceEdges[0].Source)
}

func TestBuildEdges_LambdaTriggers(t *testing.T) {
	graphClient := newTestGraphClient()
	resources := []*types.Resource{
		{ID: "api-1", Type: types.ResourceTypeAPIGateway, ServiceType: "API Gateway", Region: "us-east-1"},
		{ID: "rule-1", Type: types.ResourceTypeEventBridgeRule, ServiceType: "EventBridge", Region: "us-east-1"},
		{ID: "fn-1", Type: types.ResourceTypeLambdaFunction, ServiceType: "Lambda", Region: "us-east-1"},
		{ID: "fn-other", Type: types.ResourceTypeLambdaFunction, ServiceType: "Lambda", Region: "ap-south-1"},
	}

	edges := graphClient.buildEdges(resources)

	assert.Len(t, edgesWithLabel(edges, "Invokes"), 1)
	assert.Len(t, edgesWithLabel(edges, "Triggers"), 1)
}

func TestBuildEdges_WafProtection(t *testing.T) {
	graphClient := newTestGraphClient()
	resources := []*types.Resource{
		{ID: "acl-1", Type: types.ResourceTypeWafACL, ServiceType: "WAF", Region: "global", Relationships: types.Relationships{
			types.RelationshipWafAssociations: {"lb-1"},
		}},
		{ID: "cf-1", Type: types.ResourceTypeCloudFront, ServiceType: "CloudFront", Region: "global", Relationships: types.Relationships{
			types.RelationshipProtectedBy: {"acl-1"},
		}},
	}

	edges := graphClient.buildEdges(resources)

	protectEdges := edgesWithLabel(edges, "Protects")
	assert.Len(t, protectEdges, 2)
	for _, edge := range protectEdges {
		assert.Equal(t, "acl-1", edge.Source)
	}
}

func TestBuildEdges_CloudFrontLinks(t *testing.T) {
	graphClient := newTestGraphClient()
	resources := []*types.Resource{
		{ID: "cf-1", Type: types.ResourceTypeCloudFront, ServiceType: "CloudFront", Region: "global", Relationships: types.Relationships{
			types.RelationshipOrigin: {"lb-1"},
			types.RelationshipBucket: {"bucket-1"},
		}},
		{ID: "repo-1", Type: "ECR Repository", ServiceType: "ECR", Region: "us-east-1", Relationships: types.Relationships{
			types.RelationshipRepository: {"repo-upstream"},
		}},
	}

	edges := graphClient.buildEdges(resources)

	assert.Len(t, edgesWithLabel(edges, "Origin"), 1)
	assert.Len(t, edgesWithLabel(edges, "Bucket"), 1)
	assert.Len(t, edgesWithLabel(edges, "Repository"), 1)
}

func TestBuildEdges_MissingFieldsNeverPanic(t *testing.T) {
	graphClient := newTestGraphClient()
	resources := []*types.Resource{
		{ID: "r-1"},
		{ID: "r-2", Type: types.ResourceTypeRoute53Record},
		{ID: "r-3", Type: types.ResourceTypeWafACL, Relationships: types.Relationships{}},
	}

	assert.NotPanics(t, func() {
		graphClient.buildEdges(resources)
	})
}

func TestDNSNamesMatch(t *testing.T) {
	assert.True(t, dnsNamesMatch("api.example.com", "api.example.com"))
	assert.True(t, dnsNamesMatch("api.example.com", "example.com"))
	assert.True(t, dnsNamesMatch("example.com", "api.example.com"))
	assert.False(t, dnsNamesMatch("api.example.com", "other.org"))
	assert.False(t, dnsNamesMatch("", "example.com"))
}
