package csv

import (
	csvwriter "encoding/csv"
	"os"
	"path/filepath"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/cloudscan/aws-resource-mapper/types"
)

type IIssueCsvClient interface {
	Export(issues map[string]types.Issue)
}

type IssueCsvClient struct {
	WorkingFolderPath string
	IssueCsv          *IssueCsv
	Logger            *logrus.Logger
}

type IssueCsv struct {
	Header []string
	Rows   []*IssueCsvRow
}

func NewIssueCsvClient(workingFolderPath string, logger *logrus.Logger) *IssueCsvClient {
	return &IssueCsvClient{
		WorkingFolderPath: workingFolderPath,
		IssueCsv:          &IssueCsv{Header: []string{"Issue ID", "Issue Type", "Resource ID", "Resource Name", "Resource Type", "Region", "Related ID"}},
		Logger:            logger,
	}
}

func (csv *IssueCsv) AddRow(row *IssueCsvRow) {
	csv.Rows = append(csv.Rows, row)
}

type IssueCsvRow struct {
	IssueID      string
	IssueType    types.IssueType
	ResourceID   string
	ResourceName string
	ResourceType string
	Region       string
	RelatedID    string
}

func (csvClient *IssueCsvClient) Export(issues map[string]types.Issue) {
	for id, issue := range issues {
		csvRow := IssueCsvRow{
			IssueID:      id,
			IssueType:    issue.IssueType,
			ResourceID:   issue.ResourceID,
			ResourceName: issue.ResourceName,
			ResourceType: issue.ResourceType,
			Region:       issue.Region,
			RelatedID:    issue.RelatedID,
		}
		csvClient.IssueCsv.AddRow(&csvRow)
	}

	sort.Sort(ByIssueTypeResourceTypeAndID(csvClient.IssueCsv.Rows))

	csvClient.writeCsv()
}

func (csvClient *IssueCsvClient) writeCsv() {
	csvData := [][]string{csvClient.IssueCsv.Header}
	for _, issue := range csvClient.IssueCsv.Rows {
		csvData = append(csvData, []string{
			issue.IssueID,
			string(issue.IssueType),
			issue.ResourceID,
			issue.ResourceName,
			issue.ResourceType,
			issue.Region,
			issue.RelatedID,
		})
	}

	csvFilePath := filepath.Join(csvClient.WorkingFolderPath, "issues.csv")
	csvFile, err := os.Create(csvFilePath)
	if err != nil {
		csvClient.Logger.Fatalf("Failed to create file: %v", err)
	}
	defer csvFile.Close()
	csvWriter := csvwriter.NewWriter(csvFile)
	defer csvWriter.Flush()
	err = csvWriter.WriteAll(csvData)
	if err != nil {
		csvClient.Logger.Fatalf("Failed to write CSV file: %v", err)
	}
	csvClient.Logger.Infof("Issues written to %s", csvFilePath)
}

type ByIssueTypeResourceTypeAndID []*IssueCsvRow

func (o ByIssueTypeResourceTypeAndID) Len() int      { return len(o) }
func (o ByIssueTypeResourceTypeAndID) Swap(i, j int) { o[i], o[j] = o[j], o[i] }
func (o ByIssueTypeResourceTypeAndID) Less(i, j int) bool {
	if o[i].IssueType != o[j].IssueType {
		return o[i].IssueType < o[j].IssueType
	}

	if o[i].ResourceType != o[j].ResourceType {
		return o[i].ResourceType < o[j].ResourceType
	}

	if o[i].ResourceID != o[j].ResourceID {
		return o[i].ResourceID < o[j].ResourceID
	}

	return o[i].RelatedID < o[j].RelatedID
}
