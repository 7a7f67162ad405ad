package types

import "strings"

type HierarchyType string

const (
	HierarchyTypeRegional HierarchyType = "regional"
	HierarchyTypeLayered  HierarchyType = "layered"
	HierarchyTypeGrouped  HierarchyType = "grouped"
	HierarchyTypeCircular HierarchyType = "circular"
)

func (hierarchyType HierarchyType) IsValidHierarchyType() bool {
	switch hierarchyType {
	case HierarchyTypeRegional,
		HierarchyTypeLayered,
		HierarchyTypeGrouped,
		HierarchyTypeCircular:
		return true
	default:
		return false
	}
}

// LayoutConfig selects the placement strategy and node spacing. ServiceTiers
// drives the layered strategy; a nil map means DefaultServiceTiers.
type LayoutConfig struct {
	VerticalSpacing   float64
	HorizontalSpacing float64
	HierarchyType     HierarchyType
	ServiceTiers      map[string]int
}

// TierFor returns the hierarchy tier for a service family. Unknown service
// families land on tier 0. Lookup is case-insensitive because viper
// lowercases config file keys.
func (layoutConfig LayoutConfig) TierFor(serviceType string) int {
	if tier, ok := layoutConfig.lookupTier(serviceType); ok {
		return tier
	}
	return 0
}

// HasTier reports whether a service family has an explicit tier mapping.
func (layoutConfig LayoutConfig) HasTier(serviceType string) bool {
	_, ok := layoutConfig.lookupTier(serviceType)
	return ok
}

func (layoutConfig LayoutConfig) lookupTier(serviceType string) (int, bool) {
	tiers := layoutConfig.ServiceTiers
	if tiers == nil {
		tiers = DefaultServiceTiers()
	}
	if tier, ok := tiers[serviceType]; ok {
		return tier, true
	}
	if tier, ok := tiers[strings.ToLower(serviceType)]; ok {
		return tier, true
	}
	return 0, false
}

// DefaultServiceTiers maps service families to their conceptual stacking
// order: DNS above edge/security, above load balancing, above compute,
// above storage, above identity.
func DefaultServiceTiers() map[string]int {
	return map[string]int{
		"Route 53":    0,
		"CloudFront":  1,
		"WAF":         1,
		"ACM":         1,
		"ELB":         2,
		"API Gateway": 2,
		"EC2":         3,
		"ECS":         3,
		"Lambda":      3,
		"EventBridge": 3,
		"S3":          4,
		"EBS":         4,
		"ECR":         4,
		"RDS":         4,
		"IAM":         5,
	}
}

// TerraformTypeMapping pairs a discovered resource type with the Terraform
// resource type used when generating import blocks.
type TerraformTypeMapping struct {
	Type          string
	TerraformType string
}
