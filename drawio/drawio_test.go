package drawio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/beevik/etree"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/cloudscan/aws-resource-mapper/types"
)

func TestExport_WritesWellFormedDiagram(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	workingFolderPath := t.TempDir()

	resourceGraph := &types.ResourceGraph{
		Nodes: []types.Node{
			{ID: "lb-1", Name: "public-alb", ServiceType: "ELB", Position: types.Position{X: 100, Y: 200}},
			{ID: "i-1", Name: "web", ServiceType: "EC2", Position: types.Position{X: 300, Y: 400}},
		},
		Edges: []types.Edge{
			{ID: "lb-1-i-1-sg", Source: "lb-1", Target: "i-1", Label: "Security Group", Selected: true},
		},
	}

	drawioClient := NewDrawioClient(workingFolderPath, logger)
	drawioClient.Export(resourceGraph, "graph.drawio")

	drawioFilePath := filepath.Join(workingFolderPath, "graph.drawio")
	_, err := os.Stat(drawioFilePath)
	assert.NoError(t, err)

	doc := etree.NewDocument()
	assert.NoError(t, doc.ReadFromFile(drawioFilePath))

	cells := doc.FindElements("//mxCell")
	// Two layer cells, two nodes, one edge.
	assert.Len(t, cells, 5)

	nodeCell := doc.FindElement(`//mxCell[@id='lb-1']`)
	assert.NotNil(t, nodeCell)
	assert.Equal(t, "public-alb", nodeCell.SelectAttrValue("value", ""))
	geometry := nodeCell.FindElement("mxGeometry")
	assert.NotNil(t, geometry)
	assert.Equal(t, "100", geometry.SelectAttrValue("x", ""))
	assert.Equal(t, "200", geometry.SelectAttrValue("y", ""))

	edgeCell := doc.FindElement(`//mxCell[@id='lb-1-i-1-sg']`)
	assert.NotNil(t, edgeCell)
	assert.Equal(t, "lb-1", edgeCell.SelectAttrValue("source", ""))
	assert.Equal(t, "i-1", edgeCell.SelectAttrValue("target", ""))
	// Selected edges get the highlight style.
	assert.Contains(t, edgeCell.SelectAttrValue("style", ""), "#FF0000")
}

func TestExport_EmptyGraph(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	workingFolderPath := t.TempDir()

	drawioClient := NewDrawioClient(workingFolderPath, logger)
	drawioClient.Export(&types.ResourceGraph{}, "empty.drawio")

	doc := etree.NewDocument()
	assert.NoError(t, doc.ReadFromFile(filepath.Join(workingFolderPath, "empty.drawio")))
	assert.Len(t, doc.FindElements("//mxCell"), 2)
}
