package types

// Issue is a data-quality finding about a scan result. Issues are reported
// alongside the graph but never change which nodes or edges get built.
type Issue struct {
	IssueID      string
	IssueType    IssueType
	ResourceID   string
	ResourceName string
	ResourceType string
	Region       string
	RelatedID    string
}

type IssueType string

const (
	IssueTypeNone                IssueType = "None"
	IssueTypeDuplicateResourceID IssueType = "DuplicateResourceID"
	IssueTypeDanglingReference   IssueType = "DanglingReference"
	IssueTypeUnknownServiceType  IssueType = "UnknownServiceType"
)

func (issueType IssueType) IsValidIssueType() bool {
	switch issueType {
	case IssueTypeNone,
		IssueTypeDuplicateResourceID,
		IssueTypeDanglingReference,
		IssueTypeUnknownServiceType:
		return true
	default:
		return false
	}
}
