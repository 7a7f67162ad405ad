package drawio

import (
	"fmt"
	"path/filepath"

	"github.com/beevik/etree"
	"github.com/sirupsen/logrus"

	"github.com/cloudscan/aws-resource-mapper/types"
)

type IDrawioClient interface {
	Export(resourceGraph *types.ResourceGraph, fileName string)
}

// DrawioClient serializes a positioned graph into draw.io's mxGraphModel
// XML so the diagram can be opened and edited outside the tool.
type DrawioClient struct {
	WorkingFolderPath string
	Logger            *logrus.Logger
}

func NewDrawioClient(workingFolderPath string, logger *logrus.Logger) *DrawioClient {
	return &DrawioClient{
		WorkingFolderPath: workingFolderPath,
		Logger:            logger,
	}
}

const (
	nodeWidth  = 160
	nodeHeight = 60

	defaultNodeStyle  = "rounded=1;whiteSpace=wrap;html=1;fillColor=%s;strokeColor=#666666;"
	defaultEdgeStyle  = "edgeStyle=orthogonalEdgeStyle;rounded=1;html=1;"
	selectedEdgeStyle = "edgeStyle=orthogonalEdgeStyle;rounded=1;html=1;strokeColor=#FF0000;strokeWidth=2;"
)

func (drawioClient *DrawioClient) Export(resourceGraph *types.ResourceGraph, fileName string) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	mxfile := doc.CreateElement("mxfile")
	mxfile.CreateAttr("host", "aws-resource-mapper")

	diagram := mxfile.CreateElement("diagram")
	diagram.CreateAttr("name", "Infrastructure")

	model := diagram.CreateElement("mxGraphModel")
	root := model.CreateElement("root")

	cell0 := root.CreateElement("mxCell")
	cell0.CreateAttr("id", "0")
	cell1 := root.CreateElement("mxCell")
	cell1.CreateAttr("id", "1")
	cell1.CreateAttr("parent", "0")

	for _, node := range resourceGraph.Nodes {
		cell := root.CreateElement("mxCell")
		cell.CreateAttr("id", node.ID)
		cell.CreateAttr("value", node.Name)
		cell.CreateAttr("style", fmt.Sprintf(defaultNodeStyle, fillColorForServiceType(node.ServiceType)))
		cell.CreateAttr("vertex", "1")
		cell.CreateAttr("parent", "1")

		geometry := cell.CreateElement("mxGeometry")
		geometry.CreateAttr("x", fmt.Sprintf("%g", node.Position.X))
		geometry.CreateAttr("y", fmt.Sprintf("%g", node.Position.Y))
		geometry.CreateAttr("width", fmt.Sprintf("%d", nodeWidth))
		geometry.CreateAttr("height", fmt.Sprintf("%d", nodeHeight))
		geometry.CreateAttr("as", "geometry")
	}

	for _, edge := range resourceGraph.Edges {
		cell := root.CreateElement("mxCell")
		cell.CreateAttr("id", edge.ID)
		cell.CreateAttr("value", edge.Label)
		style := defaultEdgeStyle
		if edge.Selected {
			style = selectedEdgeStyle
		}
		cell.CreateAttr("style", style)
		cell.CreateAttr("edge", "1")
		cell.CreateAttr("source", edge.Source)
		cell.CreateAttr("target", edge.Target)
		cell.CreateAttr("parent", "1")

		geometry := cell.CreateElement("mxGeometry")
		geometry.CreateAttr("relative", "1")
		geometry.CreateAttr("as", "geometry")
	}

	doc.Indent(2)
	drawioFilePath := filepath.Join(drawioClient.WorkingFolderPath, fileName)
	if err := doc.WriteToFile(drawioFilePath); err != nil {
		drawioClient.Logger.Fatalf("Failed to write draw.io file: %v", err)
	}
	drawioClient.Logger.Infof("Diagram written to %s", drawioFilePath)
}

func fillColorForServiceType(serviceType string) string {
	colors := map[string]string{
		"Route 53":    "#FCE4EC",
		"CloudFront":  "#EDE7F6",
		"WAF":         "#FFEBEE",
		"ACM":         "#FFF8E1",
		"ELB":         "#E3F2FD",
		"API Gateway": "#E0F7FA",
		"EC2":         "#FFF3E0",
		"ECS":         "#FBE9E7",
		"Lambda":      "#FFF0E1",
		"EventBridge": "#F3E5F5",
		"S3":          "#E8F5E9",
		"EBS":         "#E0F2F1",
		"ECR":         "#ECEFF1",
		"RDS":         "#E1F5FE",
		"IAM":         "#F1F8E9",
	}
	if color, ok := colors[serviceType]; ok {
		return color
	}
	return "#F5F5F5"
}
