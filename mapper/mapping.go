package mapper

import (
	"crypto/sha256"
	"errors"
	"fmt"

	"github.com/dominikbraun/graph"
	"github.com/sirupsen/logrus"

	"github.com/cloudscan/aws-resource-mapper/builder"
	"github.com/cloudscan/aws-resource-mapper/csv"
	"github.com/cloudscan/aws-resource-mapper/drawio"
	"github.com/cloudscan/aws-resource-mapper/hcl"
	"github.com/cloudscan/aws-resource-mapper/inventory"
	"github.com/cloudscan/aws-resource-mapper/json"
	"github.com/cloudscan/aws-resource-mapper/types"
)

// MapperClient runs the full workflow: load the scan, build the positioned
// graph, collect data-quality issues, and export the requested formats.
type MapperClient struct {
	WorkingFolderPath  string
	LayoutConfig       types.LayoutConfig
	ExportDrawio       bool
	ExportImportBlocks bool
	InventoryClient    inventory.IInventoryClient
	GraphClient        builder.IGraphClient
	IssueCsvClient     csv.IIssueCsvClient
	JsonClient         json.IJsonClient
	DrawioClient       drawio.IDrawioClient
	HclClient          hcl.IHclClient
	Logger             *logrus.Logger
}

func NewMapperClient(workingFolderPath string, layoutConfig types.LayoutConfig, exportDrawio bool, exportImportBlocks bool, inventoryClient inventory.IInventoryClient, graphClient builder.IGraphClient, issueCsvClient csv.IIssueCsvClient, jsonClient json.IJsonClient, drawioClient drawio.IDrawioClient, hclClient hcl.IHclClient, logger *logrus.Logger) *MapperClient {
	return &MapperClient{
		WorkingFolderPath:  workingFolderPath,
		LayoutConfig:       layoutConfig,
		ExportDrawio:       exportDrawio,
		ExportImportBlocks: exportImportBlocks,
		InventoryClient:    inventoryClient,
		GraphClient:        graphClient,
		IssueCsvClient:     issueCsvClient,
		JsonClient:         jsonClient,
		DrawioClient:       drawioClient,
		HclClient:          hclClient,
		Logger:             logger,
	}
}

func (mapperClient *MapperClient) Map() {
	scanResult, err := mapperClient.InventoryClient.GetResources()
	if err != nil {
		mapperClient.Logger.Fatalf("Error loading scan results: %v", err)
	}

	resourceGraph := mapperClient.GraphClient.Build(scanResult.Resources, mapperClient.LayoutConfig)
	mapperClient.Logger.Infof("Built graph with %d nodes and %d edges", len(resourceGraph.Nodes), len(resourceGraph.Edges))

	issues := mapperClient.collectIssues(scanResult.Resources, resourceGraph)

	mapperClient.JsonClient.Export(resourceGraph, "graph.json")
	mapperClient.JsonClient.Export(issues, "issues.json")

	if len(issues) > 0 {
		mapperClient.Logger.Warnf("Found %d issues in the scan results", len(issues))
		mapperClient.IssueCsvClient.Export(issues)
	} else {
		mapperClient.Logger.Info("No issues found in the scan results")
	}

	if mapperClient.ExportDrawio {
		mapperClient.DrawioClient.Export(resourceGraph, "graph.drawio")
	}

	if mapperClient.ExportImportBlocks {
		mapperClient.HclClient.WriteImportBlocks(scanResult.Resources, "imports.tf")
	}
}

// collectIssues reports duplicate IDs, dangling relationship references,
// and service families with no tier mapping. The backing graph store does
// the duplicate and membership bookkeeping; issues never alter the built
// graph itself.
func (mapperClient *MapperClient) collectIssues(resources []*types.Resource, resourceGraph *types.ResourceGraph) map[string]types.Issue {
	issues := map[string]types.Issue{}

	store := graph.New(func(resource *types.Resource) string { return resource.ID }, graph.Directed())

	for _, resource := range resources {
		err := store.AddVertex(resource)
		if errors.Is(err, graph.ErrVertexAlreadyExists) {
			mapperClient.Logger.Warnf("Duplicate Resource ID: %s", resource.ID)
			addIssue(issues, IssueFromResource(resource), types.IssueTypeDuplicateResourceID)
		}

		if !mapperClient.LayoutConfig.HasTier(resource.ServiceType) {
			issue := IssueFromResource(resource)
			issue.IssueID = identityHash(resource.ID + ":tier")
			addIssue(issues, issue, types.IssueTypeUnknownServiceType)
		}
	}

	for _, edge := range resourceGraph.Edges {
		err := store.AddEdge(edge.Source, edge.Target)
		if errors.Is(err, graph.ErrVertexNotFound) {
			mapperClient.Logger.Debugf("Edge %s references a resource outside the scan", edge.ID)
			addIssue(issues, IssueFromEdge(edge), types.IssueTypeDanglingReference)
		}
	}

	return issues
}

func addIssue(issues map[string]types.Issue, issue types.Issue, issueType types.IssueType) {
	issue.IssueType = issueType
	issues[issue.IssueID] = issue
}

func IssueFromResource(resource *types.Resource) types.Issue {
	return types.Issue{
		IssueID:      identityHash(resource.ID),
		ResourceID:   resource.ID,
		ResourceName: resource.Name,
		ResourceType: resource.Type,
		Region:       resource.Region,
	}
}

func IssueFromEdge(edge types.Edge) types.Issue {
	return types.Issue{
		IssueID:    identityHash(edge.ID),
		ResourceID: edge.Source,
		RelatedID:  edge.Target,
	}
}

func identityHash(id string) string {
	sha256ID := sha256.Sum256([]byte(id))
	return fmt.Sprintf("%x", sha256ID)[0:7]
}
