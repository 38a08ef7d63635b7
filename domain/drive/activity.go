package drive

import (
	"fmt"
	"time"
)

// ActionKind classifies an activity record for the access-history facet.
type ActionKind string

const (
	ActionAccessed  ActionKind = "accessed"
	ActionEdited    ActionKind = "edited"
	ActionCheckedIn ActionKind = "checked-in"
	ActionVersioned ActionKind = "versioned"
)

// ActivityRecord is one entry of an item's access history.
type ActivityRecord struct {
	Actor     string
	Action    ActionKind
	Version   string // set when Action is ActionVersioned
	Timestamp time.Time
}

// Describe renders the action for display.
func (a ActivityRecord) Describe() string {
	if a.Action == ActionVersioned && a.Version != "" {
		return fmt.Sprintf("versioned (v%s)", a.Version)
	}
	return string(a.Action)
}

// VersionRecord is one entry of an item's version history.
type VersionRecord struct {
	ID         string
	Label      string
	Timestamp  time.Time
	ModifiedBy string
	SizeBytes  int64
}
