package constants

// LinkStatus is the lifecycle state of a registered content link.
type LinkStatus string

const (
	LinkPending    LinkStatus = "pending"
	LinkInProgress LinkStatus = "in_progress"
	LinkCompleted  LinkStatus = "completed"
	LinkRejected   LinkStatus = "rejected"
	LinkOnHold     LinkStatus = "on_hold"
)

func (s LinkStatus) Valid() bool {
	switch s {
	case LinkPending, LinkInProgress, LinkCompleted, LinkRejected, LinkOnHold:
		return true
	}
	return false
}

// TaskStatus is the state of a QA task. There is no pending state at this
// layer: content is pending at the link level before a task exists.
type TaskStatus string

const (
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
)

func (s TaskStatus) Valid() bool {
	return s == TaskInProgress || s == TaskCompleted
}

// AccountStatus is the state of a posting account.
type AccountStatus string

const (
	AccountActive   AccountStatus = "active"
	AccountInactive AccountStatus = "inactive"
	AccountDisabled AccountStatus = "disabled"
)

// Reviewable reports whether the account may claim QA tasks.
func (s AccountStatus) Reviewable() bool {
	return s != AccountInactive && s != AccountDisabled
}

// ContentKind identifies which share-URL shape a link was ingested from.
type ContentKind string

const (
	KindFile         ContentKind = "file"
	KindDocument     ContentKind = "document"
	KindSpreadsheet  ContentKind = "spreadsheet"
	KindPresentation ContentKind = "presentation"
)

// Priority orders links in the review queue.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}
