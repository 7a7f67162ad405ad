package inventory

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/cloudscan/aws-resource-mapper/types"
)

type IInventoryClient interface {
	GetResources() (*types.ScanResult, error)
}

// InventoryClient loads a scan-results file produced by the resource
// scanner. Per-resource problems are logged and skipped rather than
// failing the whole load, mirroring the scanner's own per-call behavior.
type InventoryClient struct {
	ScanFilePath             string
	IgnoreResourceIDPatterns []string
	Logger                   *logrus.Logger
}

func NewInventoryClient(scanFilePath string, ignoreResourceIDPatterns []string, logger *logrus.Logger) *InventoryClient {
	return &InventoryClient{
		ScanFilePath:             scanFilePath,
		IgnoreResourceIDPatterns: ignoreResourceIDPatterns,
		Logger:                   logger,
	}
}

func (inventoryClient *InventoryClient) GetResources() (*types.ScanResult, error) {
	content, err := os.ReadFile(inventoryClient.ScanFilePath)
	if err != nil {
		return nil, fmt.Errorf("reading scan file %s: %w", inventoryClient.ScanFilePath, err)
	}

	scanResult, err := decodeScanResult(content)
	if err != nil {
		return nil, fmt.Errorf("decoding scan file %s: %w", inventoryClient.ScanFilePath, err)
	}

	if scanResult.ScanID == "" {
		scanResult.ScanID = uuid.NewString()
		inventoryClient.Logger.Debugf("Scan file has no scan ID, assigned %s", scanResult.ScanID)
	}

	scanResult.Resources = inventoryClient.filterResources(scanResult.Resources)
	inventoryClient.Logger.Infof("Loaded %d resources from scan %s", len(scanResult.Resources), scanResult.ScanID)

	return scanResult, nil
}

// decodeScanResult accepts both scan file shapes: the envelope with scan
// metadata, and the older bare resource array.
func decodeScanResult(content []byte) (*types.ScanResult, error) {
	scanResult := types.ScanResult{}
	envelopeErr := json.Unmarshal(content, &scanResult)
	if envelopeErr == nil && (scanResult.Resources != nil || scanResult.ScanID != "" || scanResult.ScannedAt != "") {
		return &scanResult, nil
	}

	resources := []*types.Resource{}
	if err := json.Unmarshal(content, &resources); err != nil {
		if envelopeErr != nil {
			return nil, envelopeErr
		}
		return nil, err
	}
	return &types.ScanResult{Resources: resources}, nil
}

func (inventoryClient *InventoryClient) filterResources(resources []*types.Resource) []*types.Resource {
	kept := []*types.Resource{}
	for _, resource := range resources {
		if resource == nil {
			continue
		}
		if resource.ID == "" {
			inventoryClient.Logger.Warnf("Skipping resource with empty ID (type %s)", resource.Type)
			continue
		}

		shouldIgnore := false
		for _, pattern := range inventoryClient.IgnoreResourceIDPatterns {
			matched, err := regexp.MatchString(pattern, resource.ID)
			if err != nil {
				inventoryClient.Logger.Debugf("Error matching pattern %s: %v", pattern, err)
				continue
			}
			if matched {
				shouldIgnore = true
				break
			}
		}
		if shouldIgnore {
			inventoryClient.Logger.Tracef("Ignoring Resource ID: %s", resource.ID)
			continue
		}

		inventoryClient.Logger.Tracef("Adding Resource ID: %s", resource.ID)
		kept = append(kept, resource)
	}
	return kept
}
