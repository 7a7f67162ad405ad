package builder

import (
	"fmt"
	"strings"

	"github.com/cloudscan/aws-resource-mapper/types"
)

const (
	labelSecurityGroup = "Security Group"
	labelTargetGroup   = "Target Group"
	labelDNSAlias      = "DNS Alias"
	labelRecord        = "Record"
	labelSSL           = "SSL/TLS"
	labelVolume        = "Volume"
	labelRoutes        = "Routes"
	labelNATGateway    = "NAT Gateway"
	labelService       = "Service"
	labelInvokes       = "Invokes"
	labelTriggers      = "Triggers"
	labelProtects      = "Protects"
	labelOrigin        = "Origin"
	labelDistribution  = "Distribution"
	labelRepository    = "Repository"
	labelBucket        = "Bucket"
)

// buildEdges applies the relationship inference rules to every resource.
// Rules are independent and non-exclusive; each emits an edge per match.
// A rule whose fields are absent simply does not fire.
func (graphClient *GraphClient) buildEdges(resources []*types.Resource) []types.Edge {
	edges := []types.Edge{}
	allocator := newIDAllocator()

	addEdge := func(source string, target string, kind string, label string) {
		edge := types.Edge{
			ID:     allocator.Allocate(fmt.Sprintf("%s-%s-%s", source, target, kind)),
			Source: source,
			Target: target,
			Label:  label,
		}
		edges = append(edges, edge)
		graphClient.Logger.Tracef("Adding Edge: %s -> %s (%s)", source, target, label)
	}

	for _, resource := range resources {
		for _, securityGroupID := range resource.Relationships[types.RelationshipSecurityGroups] {
			addEdge(resource.ID, securityGroupID, "sg", labelSecurityGroup)
		}

		if resource.Type == types.ResourceTypeTargetGroup {
			for _, loadBalancerID := range resource.Relationships[types.RelationshipLoadBalancer] {
				addEdge(loadBalancerID, resource.ID, "tg", labelTargetGroup)
			}
		}

		if resource.Type == types.ResourceTypeRoute53Record {
			recordName := strings.TrimSuffix(resource.Name, ".")
			for _, loadBalancer := range resourcesOfType(resources, types.ResourceTypeLoadBalancer) {
				for _, dnsRecord := range loadBalancer.Relationships[types.RelationshipDNSRecords] {
					if dnsNamesMatch(recordName, strings.TrimSuffix(dnsRecord, ".")) {
						addEdge(resource.ID, loadBalancer.ID, "dns", labelDNSAlias)
						break
					}
				}
			}

			for _, hostedZone := range resourcesOfType(resources, types.ResourceTypeHostedZone) {
				if hostedZone.ID != "" && strings.HasPrefix(resource.ID, hostedZone.ID) {
					addEdge(hostedZone.ID, resource.ID, "record", labelRecord)
				}
			}
		}

		if resource.Type == types.ResourceTypeCertificate {
			for _, loadBalancerID := range resource.Relationships[types.RelationshipLoadBalancer] {
				addEdge(resource.ID, loadBalancerID, "cert", labelSSL)
			}
		}

		for _, volumeID := range resource.Relationships[types.RelationshipVolumes] {
			addEdge(resource.ID, volumeID, "vol", labelVolume)
		}

		graphClient.buildServiceEdges(resources, resource, addEdge)
	}

	return edges
}

// buildServiceEdges covers the service-specific rules: gateway routing,
// ECS wiring, Lambda triggers, WAF protection, and CloudFront links.
func (graphClient *GraphClient) buildServiceEdges(resources []*types.Resource, resource *types.Resource, addEdge func(string, string, string, string)) {
	switch resource.Type {
	case types.ResourceTypeInternetGateway:
		for _, loadBalancer := range resourcesOfTypeInRegion(resources, types.ResourceTypeLoadBalancer, resource.Region) {
			addEdge(resource.ID, loadBalancer.ID, "igw", labelRoutes)
		}
		for _, natGateway := range resourcesOfTypeInRegion(resources, types.ResourceTypeNATGateway, resource.Region) {
			addEdge(resource.ID, natGateway.ID, "igw-nat", labelNATGateway)
		}

	case types.ResourceTypeNATGateway:
		for _, loadBalancer := range resourcesOfTypeInRegion(resources, types.ResourceTypeLoadBalancer, resource.Region) {
			addEdge(resource.ID, loadBalancer.ID, "nat", labelRoutes)
		}

	case types.ResourceTypeECSService:
		targetGroupIDs := resource.Relationships[types.RelationshipTargetGroups]
		if len(targetGroupIDs) > 0 {
			for _, targetGroupID := range targetGroupIDs {
				addEdge(resource.ID, targetGroupID, "ecs-tg", labelTargetGroup)
			}
		} else {
			for _, targetGroup := range resourcesOfTypeInRegion(resources, types.ResourceTypeTargetGroup, resource.Region) {
				addEdge(resource.ID, targetGroup.ID, "ecs-tg", labelTargetGroup)
			}
		}
		for _, cluster := range resourcesOfType(resources, types.ResourceTypeECSCluster) {
			if cluster.Name != "" && strings.Contains(resource.ID, cluster.Name) {
				addEdge(cluster.ID, resource.ID, "cluster", labelService)
			}
		}

	case types.ResourceTypeAPIGateway:
		for _, lambda := range resourcesOfTypeInRegion(resources, types.ResourceTypeLambdaFunction, resource.Region) {
			addEdge(resource.ID, lambda.ID, "invoke", labelInvokes)
		}

	case types.ResourceTypeEventBridgeRule:
		for _, lambda := range resourcesOfTypeInRegion(resources, types.ResourceTypeLambdaFunction, resource.Region) {
			addEdge(resource.ID, lambda.ID, "event", labelTriggers)
		}

	case types.ResourceTypeWafACL:
		for _, protectedID := range resource.Relationships[types.RelationshipWafAssociations] {
			addEdge(resource.ID, protectedID, "waf", labelProtects)
		}
		for _, protectedID := range resource.Relationships[types.RelationshipProtects] {
			addEdge(resource.ID, protectedID, "waf", labelProtects)
		}

	case types.ResourceTypeCloudFront:
		for _, originID := range resource.Relationships[types.RelationshipOrigin] {
			addEdge(resource.ID, originID, "origin", labelOrigin)
		}
		for _, bucketID := range resource.Relationships[types.RelationshipBucket] {
			addEdge(resource.ID, bucketID, "bucket", labelBucket)
		}
	}

	// Rules keyed on relationship presence alone, regardless of type.
	for _, aclID := range resource.Relationships[types.RelationshipProtectedBy] {
		addEdge(aclID, resource.ID, "waf", labelProtects)
	}
	for _, distributionID := range resource.Relationships[types.RelationshipDistribution] {
		addEdge(resource.ID, distributionID, "dist", labelDistribution)
	}
	for _, repositoryID := range resource.Relationships[types.RelationshipRepository] {
		addEdge(resource.ID, repositoryID, "repo", labelRepository)
	}
}

// dnsNamesMatch compares two DNS names already stripped of trailing dots,
// by equality or suffix containment in either direction. A record for
// api.example.com matches an alias entry for example.com and vice versa.
func dnsNamesMatch(a string, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return a == b || strings.HasSuffix(a, b) || strings.HasSuffix(b, a)
}

func resourcesOfType(resources []*types.Resource, resourceType string) []*types.Resource {
	matches := []*types.Resource{}
	for _, resource := range resources {
		if resource.Type == resourceType {
			matches = append(matches, resource)
		}
	}
	return matches
}

func resourcesOfTypeInRegion(resources []*types.Resource, resourceType string, region string) []*types.Resource {
	matches := []*types.Resource{}
	for _, resource := range resources {
		if resource.Type == resourceType && resource.Region == region {
			matches = append(matches, resource)
		}
	}
	return matches
}
