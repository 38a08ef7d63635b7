package drive

import (
	"time"
)

// SourceKind identifies which listing source the browse view is showing.
type SourceKind string

const (
	SourceRecent SourceKind = "recent"
	SourceAll    SourceKind = "all"
	SourceFolder SourceKind = "folder"
	SourceShared SourceKind = "shared"
	SourceSearch SourceKind = "search"
)

// SortOption controls client-side ordering of a listing.
type SortOption string

const (
	SortModifiedDesc SortOption = "modifiedDesc"
	SortModifiedAsc  SortOption = "modifiedAsc"
	SortNameAsc      SortOption = "nameAsc"
	SortNameDesc     SortOption = "nameDesc"
)

// ItemRecord is an immutable snapshot of a remote drive entry at fetch time.
// A changed item is never mutated in place; it is replaced wholesale by a
// fresh fetch.
type ItemRecord struct {
	ID             string
	Name           string
	IsFolder       bool
	Deleted        bool // delta feeds emit a deleted marker; passed through as-is
	LastModifiedAt time.Time
	ModifiedBy     string
	WebURL         string
	ParentDriveID  string
	SizeBytes      int64
}

// IsDocument returns true if this is a file
func (i ItemRecord) IsDocument() bool {
	return !i.IsFolder
}

// GetDisplayName returns a user-friendly name for the item
func (i ItemRecord) GetDisplayName() string {
	if i.Name != "" {
		return i.Name
	}
	return i.ID // Fallback to ID if no name
}

// DeltaPage holds one page of a delta listing plus the cursor for the next
// page. The cursor is an opaque continuation string; empty means exhausted.
type DeltaPage struct {
	Items      []ItemRecord
	NextCursor string
}

// User represents the signed-in user profile.
type User struct {
	ID          string
	DisplayName string
	Email       string
}
