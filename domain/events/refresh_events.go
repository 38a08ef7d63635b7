package events

import "dochub/domain/drive"

// ListingRefreshedEvent signals that the active listing was reprojected and
// connected clients should refetch it.
type ListingRefreshedEvent struct {
	Source drive.SourceKind
	Count  int
}

// SelectionRefreshedEvent signals that the selected item's detail changed.
type SelectionRefreshedEvent struct {
	ItemID  string
	DriveID string
}

// MutationCompletedEvent signals a successful remote mutation.
type MutationCompletedEvent struct {
	Operation string
	ItemID    string
	ItemName  string
}

// MutationFailedEvent signals a remote mutation failure. Always user-visible.
type MutationFailedEvent struct {
	Operation string
	ItemID    string
	Error     string
}
