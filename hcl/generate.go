package hcl

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/sirupsen/logrus"
	"github.com/zclconf/go-cty/cty"

	"github.com/cloudscan/aws-resource-mapper/types"
)

type IHclClient interface {
	WriteImportBlocks(resources []*types.Resource, fileName string)
}

// HclClient generates Terraform import blocks for discovered resources, so
// a scan can seed bringing existing infrastructure under Terraform. Only
// resource types with a Terraform type mapping are emitted.
type HclClient struct {
	WorkingFolderPath string
	TypeMappings      []types.TerraformTypeMapping
	Logger            *logrus.Logger
}

func NewHclClient(workingFolderPath string, typeMappings []types.TerraformTypeMapping, logger *logrus.Logger) *HclClient {
	return &HclClient{
		WorkingFolderPath: workingFolderPath,
		TypeMappings:      typeMappings,
		Logger:            logger,
	}
}

func DefaultTypeMappings() []types.TerraformTypeMapping {
	return []types.TerraformTypeMapping{
		{Type: types.ResourceTypeLoadBalancer, TerraformType: "aws_lb"},
		{Type: types.ResourceTypeTargetGroup, TerraformType: "aws_lb_target_group"},
		{Type: types.ResourceTypeHostedZone, TerraformType: "aws_route53_zone"},
		{Type: types.ResourceTypeCertificate, TerraformType: "aws_acm_certificate"},
		{Type: types.ResourceTypeInternetGateway, TerraformType: "aws_internet_gateway"},
		{Type: types.ResourceTypeNATGateway, TerraformType: "aws_nat_gateway"},
		{Type: types.ResourceTypeECSCluster, TerraformType: "aws_ecs_cluster"},
		{Type: types.ResourceTypeECSService, TerraformType: "aws_ecs_service"},
		{Type: types.ResourceTypeLambdaFunction, TerraformType: "aws_lambda_function"},
		{Type: types.ResourceTypeCloudFront, TerraformType: "aws_cloudfront_distribution"},
		{Type: "EC2 Instance", TerraformType: "aws_instance"},
		{Type: "S3 Bucket", TerraformType: "aws_s3_bucket"},
		{Type: "Security Group", TerraformType: "aws_security_group"},
	}
}

func (hclClient *HclClient) WriteImportBlocks(resources []*types.Resource, fileName string) {
	hclFilePath := filepath.Join(hclClient.WorkingFolderPath, fileName)
	hclFile := hclwrite.NewEmptyFile()

	written := 0
	for _, resource := range resources {
		terraformType := hclClient.terraformTypeFor(resource.Type)
		if terraformType == "" {
			hclClient.Logger.Tracef("No Terraform type mapping for %s, skipping %s", resource.Type, resource.ID)
			continue
		}

		resourceBlock := hclFile.Body().AppendNewBlock("import", nil)
		resourceBlock.Body().SetAttributeValue("id", cty.StringVal(resource.ID))
		traversal := hcl.Traversal{
			hcl.TraverseRoot{Name: fmt.Sprintf("%s.%s", terraformType, addressName(resource))},
		}
		resourceBlock.Body().SetAttributeTraversal("to", traversal)
		hclFile.Body().AppendNewline()
		written++
	}

	err := os.WriteFile(hclFilePath, hclFile.Bytes(), 0644)
	if err != nil {
		hclClient.Logger.Fatal("Error writing file: ", err)
	}

	hclClient.Logger.Infof("%d import blocks written to: %s", written, hclFilePath)
}

func (hclClient *HclClient) terraformTypeFor(resourceType string) string {
	for _, mapping := range hclClient.TypeMappings {
		if strings.EqualFold(mapping.Type, resourceType) {
			return mapping.TerraformType
		}
	}
	return ""
}

var invalidAddressChars = regexp.MustCompile(`[^a-zA-Z0-9_]+`)

// addressName derives a valid Terraform address label from the resource
// name, falling back to the ID when the name is empty.
func addressName(resource *types.Resource) string {
	name := invalidAddressChars.ReplaceAllString(resource.DisplayName(), "_")
	name = strings.Trim(name, "_")
	if name == "" {
		name = "resource"
	}
	if name[0] >= '0' && name[0] <= '9' {
		name = "_" + name
	}
	return strings.ToLower(name)
}
