package lifecycle

import "github.com/lexkit/lexsync/resource"

// Request types carried by lifecycle events.
const (
	RequestCreate = "Create"
	RequestUpdate = "Update"
	RequestDelete = "Delete"
)

// Resource types this handler manages.
const (
	ResourceBot     = "Custom::LexBot"
	ResourceVersion = "Custom::LexBotVersion"
	ResourceAlias   = "Custom::LexBotAlias"
)

// Response statuses.
const (
	StatusSuccess = "SUCCESS"
	StatusFailed  = "FAILED"
)

// Event is one lifecycle request against a managed resource. Properties carry
// the full declared configuration tree; Old properties carry the previous one
// on updates.
type Event struct {
	RequestType           string         `json:"RequestType"`
	RequestID             string         `json:"RequestId,omitempty"`
	ResourceType          string         `json:"ResourceType"`
	LogicalResourceID     string         `json:"LogicalResourceId,omitempty"`
	PhysicalResourceID    string         `json:"PhysicalResourceId,omitempty"`
	ResourceProperties    resource.Props `json:"ResourceProperties,omitempty"`
	OldResourceProperties resource.Props `json:"OldResourceProperties,omitempty"`
}

// Response reports the outcome of one lifecycle request. The physical id is
// preserved on failure so the caller can still address the resource when it
// rolls back.
type Response struct {
	Status             string         `json:"Status"`
	Reason             string         `json:"Reason,omitempty"`
	RequestID          string         `json:"RequestId"`
	PhysicalResourceID string         `json:"PhysicalResourceId,omitempty"`
	Data               resource.Props `json:"Data,omitempty"`
}
