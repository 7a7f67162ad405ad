package types

import "encoding/json"

// Resource is one discovered cloud entity from a scan result. The ID may be
// an ARN, a physical ID, or a composite key such as zoneId/recordName/recordType.
type Resource struct {
	ID            string        `json:"id"`
	Type          string        `json:"type"`
	ServiceType   string        `json:"serviceType"`
	Name          string        `json:"name,omitempty"`
	Region        string        `json:"region"`
	URL           string        `json:"url,omitempty"`
	Relationships Relationships `json:"relationships,omitempty"`
}

// DisplayName falls back to the ID when a resource has no name.
func (resource *Resource) DisplayName() string {
	if resource.Name == "" {
		return resource.ID
	}
	return resource.Name
}

// Relationships maps a relationship kind to the IDs it references. References
// are not validated against the scan result; they may point at absent resources.
type Relationships map[string]IDList

// IDList decodes from either a single JSON string or an array of strings,
// since scanners emit both shapes depending on the relationship kind.
type IDList []string

func (list *IDList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*list = IDList{single}
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*list = many
	return nil
}

const (
	RelationshipSecurityGroups  = "securityGroups"
	RelationshipTargetGroups    = "targetGroups"
	RelationshipLoadBalancer    = "loadBalancer"
	RelationshipDNSRecords      = "dnsRecords"
	RelationshipCertificate     = "certificate"
	RelationshipInstances       = "instances"
	RelationshipVolumes         = "volumes"
	RelationshipRepository      = "repository"
	RelationshipDistribution    = "distribution"
	RelationshipOrigin          = "origin"
	RelationshipHostedZone      = "hostedZone"
	RelationshipAliases         = "aliases"
	RelationshipWafACL          = "wafACL"
	RelationshipWafRules        = "wafRules"
	RelationshipWafAssociations = "wafAssociations"
	RelationshipProtectedBy     = "protectedBy"
	RelationshipServices        = "services"
	RelationshipProtects        = "protects"
	RelationshipBucket          = "bucket"
)

const (
	ResourceTypeLoadBalancer    = "Application Load Balancer"
	ResourceTypeTargetGroup     = "Target Group"
	ResourceTypeRoute53Record   = "Route 53 Record"
	ResourceTypeHostedZone      = "Route 53 Hosted Zone"
	ResourceTypeCertificate     = "ACM Certificate"
	ResourceTypeInternetGateway = "Internet Gateway"
	ResourceTypeNATGateway      = "NAT Gateway"
	ResourceTypeECSService      = "ECS Service"
	ResourceTypeECSCluster      = "ECS Cluster"
	ResourceTypeLambdaFunction  = "Lambda Function"
	ResourceTypeAPIGateway      = "API Gateway"
	ResourceTypeEventBridgeRule = "EventBridge Rule"
	ResourceTypeWafACL          = "WAF Web ACL"
	ResourceTypeCloudFront      = "CloudFront Distribution"
)

// ScanResult is the envelope written by the inventory scanner. Older scan
// files are a bare resource array; the inventory loader accepts both.
type ScanResult struct {
	ScanID    string      `json:"scanId,omitempty"`
	ScannedAt string      `json:"scannedAt,omitempty"`
	Resources []*Resource `json:"resources"`
}
