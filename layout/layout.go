package layout

import (
	"math"
	"sort"

	"github.com/cloudscan/aws-resource-mapper/types"
)

const (
	defaultHorizontalSpacing = 200
	defaultVerticalSpacing   = 150

	// Width budget for the grouped strategy before wrapping to a new band.
	groupedRowWidth = 1500

	circularRadiusPerNode = 50
	circularMinimumRadius = 400
)

// Positions computes a plane coordinate for every resource under the
// configured strategy. All strategies are pure functions of their inputs:
// map keys and resource groups are iterated in sorted order so repeated
// invocations produce identical positions.
func Positions(resources []*types.Resource, layoutConfig types.LayoutConfig) map[string]types.Position {
	layoutConfig = withSpacingDefaults(layoutConfig)

	switch layoutConfig.HierarchyType {
	case types.HierarchyTypeLayered:
		return layeredPositions(resources, layoutConfig)
	case types.HierarchyTypeGrouped:
		return groupedPositions(resources, layoutConfig)
	case types.HierarchyTypeCircular:
		return circularPositions(resources)
	default:
		return regionalPositions(resources, layoutConfig)
	}
}

func withSpacingDefaults(layoutConfig types.LayoutConfig) types.LayoutConfig {
	if layoutConfig.HorizontalSpacing <= 0 {
		layoutConfig.HorizontalSpacing = defaultHorizontalSpacing
	}
	if layoutConfig.VerticalSpacing <= 0 {
		layoutConfig.VerticalSpacing = defaultVerticalSpacing
	}
	return layoutConfig
}

// regionalPositions partitions resources by region, then by service family
// within each region. Each service's resources form a roughly square grid.
// A horizontal cursor advances per service group and a vertical cursor per
// region, so distinct regions occupy disjoint vertical bands.
func regionalPositions(resources []*types.Resource, layoutConfig types.LayoutConfig) map[string]types.Position {
	positions := map[string]types.Position{}

	byRegion, regions := partition(resources, func(resource *types.Resource) string { return resource.Region })

	regionY := 0.0
	for _, region := range regions {
		byService, services := partition(byRegion[region], func(resource *types.Resource) string { return resource.ServiceType })

		groupX := 0.0
		maxRows := 0
		for _, service := range services {
			rows := placeGrid(sortedByID(byService[service]), groupX, regionY, layoutConfig, positions)
			if rows > maxRows {
				maxRows = rows
			}
			groupX += float64(gridColumns(len(byService[service]))+1) * layoutConfig.HorizontalSpacing
		}

		regionY += float64(maxRows)*layoutConfig.VerticalSpacing + layoutConfig.VerticalSpacing
	}

	return positions
}

// layeredPositions stacks service families into horizontal tiers, DNS at
// the top and identity at the bottom. Each tier's resources are centered
// around x = 0.
func layeredPositions(resources []*types.Resource, layoutConfig types.LayoutConfig) map[string]types.Position {
	positions := map[string]types.Position{}

	byTier := map[int][]*types.Resource{}
	tiers := []int{}
	for _, resource := range resources {
		tier := layoutConfig.TierFor(resource.ServiceType)
		if _, seen := byTier[tier]; !seen {
			tiers = append(tiers, tier)
		}
		byTier[tier] = append(byTier[tier], resource)
	}
	sort.Ints(tiers)

	for _, tier := range tiers {
		tierResources := sortedByID(byTier[tier])
		n := len(tierResources)
		for i, resource := range tierResources {
			positions[resource.ID] = types.Position{
				X: (float64(i) - float64(n-1)/2) * layoutConfig.HorizontalSpacing,
				Y: float64(tier) * layoutConfig.VerticalSpacing,
			}
		}
	}

	return positions
}

// groupedPositions lays out one grid per service family with no region
// partitioning, wrapping to a fresh band of groups once the horizontal
// cursor passes the row width budget.
func groupedPositions(resources []*types.Resource, layoutConfig types.LayoutConfig) map[string]types.Position {
	positions := map[string]types.Position{}

	byService, services := partition(resources, func(resource *types.Resource) string { return resource.ServiceType })

	groupX := 0.0
	bandY := 0.0
	bandMaxRows := 0
	for _, service := range services {
		rows := placeGrid(sortedByID(byService[service]), groupX, bandY, layoutConfig, positions)
		if rows > bandMaxRows {
			bandMaxRows = rows
		}
		groupX += float64(gridColumns(len(byService[service]))+1) * layoutConfig.HorizontalSpacing

		if groupX > groupedRowWidth {
			groupX = 0
			bandY += float64(bandMaxRows)*layoutConfig.VerticalSpacing + layoutConfig.VerticalSpacing
			bandMaxRows = 0
		}
	}

	return positions
}

// circularPositions spaces all resources evenly around a circle centered
// at the origin. The radius grows with the resource count so large scans
// do not overlap.
func circularPositions(resources []*types.Resource) map[string]types.Position {
	positions := map[string]types.Position{}

	ordered := sortedByID(resources)
	n := len(ordered)
	if n == 0 {
		return positions
	}

	radius := math.Max(circularRadiusPerNode*float64(n), circularMinimumRadius)
	for i, resource := range ordered {
		angle := 2 * math.Pi * float64(i) / float64(n)
		positions[resource.ID] = types.Position{
			X: radius * math.Cos(angle),
			Y: radius * math.Sin(angle),
		}
	}

	return positions
}

// placeGrid positions a service group as a grid with ceil(sqrt(n)) columns
// at the given origin and returns the number of rows used.
func placeGrid(resources []*types.Resource, originX float64, originY float64, layoutConfig types.LayoutConfig, positions map[string]types.Position) int {
	if len(resources) == 0 {
		return 0
	}

	columns := gridColumns(len(resources))
	for i, resource := range resources {
		positions[resource.ID] = types.Position{
			X: originX + float64(i%columns)*layoutConfig.HorizontalSpacing,
			Y: originY + float64(i/columns)*layoutConfig.VerticalSpacing,
		}
	}
	return (len(resources) + columns - 1) / columns
}

func gridColumns(count int) int {
	if count <= 1 {
		return 1
	}
	return int(math.Ceil(math.Sqrt(float64(count))))
}

// partition groups resources by key and returns the groups along with the
// sorted key order, so callers iterate deterministically.
func partition(resources []*types.Resource, key func(*types.Resource) string) (map[string][]*types.Resource, []string) {
	groups := map[string][]*types.Resource{}
	keys := []string{}
	for _, resource := range resources {
		k := key(resource)
		if _, seen := groups[k]; !seen {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], resource)
	}
	sort.Strings(keys)
	return groups, keys
}

func sortedByID(resources []*types.Resource) []*types.Resource {
	ordered := make([]*types.Resource, len(resources))
	copy(ordered, resources)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })
	return ordered
}
