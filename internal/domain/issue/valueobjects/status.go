package valueobjects

import "fmt"

type IssueStatus string

const (
	StatusOpen             IssueStatus = "open"
	StatusPendingVendor    IssueStatus = "pending_vendor"
	StatusResolutionAgreed IssueStatus = "resolution_agreed"
	StatusClosed           IssueStatus = "closed"
)

var validIssueStatuses = map[IssueStatus]bool{
	StatusOpen:             true,
	StatusPendingVendor:    true,
	StatusResolutionAgreed: true,
	StatusClosed:           true,
}

// Closed is terminal: no outgoing transitions.
var issueStatusTransitions = map[IssueStatus][]IssueStatus{
	StatusOpen: {
		StatusPendingVendor,
		StatusClosed,
	},
	StatusPendingVendor: {
		StatusResolutionAgreed,
		StatusClosed,
	},
	StatusResolutionAgreed: {
		StatusClosed,
	},
	StatusClosed: {},
}

func (s IssueStatus) String() string {
	return string(s)
}

func (s IssueStatus) IsValid() bool {
	return validIssueStatuses[s]
}

func (s IssueStatus) CanTransitionTo(newStatus IssueStatus) bool {
	allowedTransitions, ok := issueStatusTransitions[s]
	if !ok {
		return false
	}

	for _, allowed := range allowedTransitions {
		if allowed == newStatus {
			return true
		}
	}
	return false
}

func (s IssueStatus) IsOpen() bool {
	return s == StatusOpen
}

func (s IssueStatus) IsPendingVendor() bool {
	return s == StatusPendingVendor
}

func (s IssueStatus) IsResolutionAgreed() bool {
	return s == StatusResolutionAgreed
}

func (s IssueStatus) IsClosed() bool {
	return s == StatusClosed
}

func NewIssueStatus(s string) (IssueStatus, error) {
	status := IssueStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid issue status: %s", s)
	}
	return status, nil
}
