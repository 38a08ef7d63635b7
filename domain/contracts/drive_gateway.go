package contracts

import (
	"context"
	"io"

	"dochub/domain/drive"
)

// DriveGateway defines operations against the remote document-graph API.
// It is the single source of truth for remote reads and mutations; it owns
// identifier caching and continuation-link following, and performs no
// retries of its own.
type DriveGateway interface {
	// ResolveSite resolves the configured site path to a site ID.
	// Cached after first success; concurrent callers share one in-flight call.
	ResolveSite(ctx context.Context) (string, error)

	// ResolveDrive resolves the default document drive for a site.
	// Cached per site ID with the same sharing semantics as ResolveSite.
	ResolveDrive(ctx context.Context, siteID string) (string, error)

	// ListChildren lists a folder's children, following continuation links
	// until exhausted.
	ListChildren(ctx context.Context, driveID, folderID string) ([]drive.ItemRecord, error)

	// ListChildrenByPath lists children of a path-addressed folder under the
	// drive root. Path segments are URL-escaped individually.
	ListChildrenByPath(ctx context.Context, driveID, folderPath string) ([]drive.ItemRecord, error)

	// ListFolders lists only the folders under the drive root.
	ListFolders(ctx context.Context, driveID string) ([]drive.ItemRecord, error)

	// DeltaPage fetches exactly one page of the drive's delta listing.
	// An empty cursor starts a fresh enumeration. The returned cursor is
	// opaque; empty means the feed is exhausted.
	DeltaPage(ctx context.Context, driveID, cursor string, pageSize int) (drive.DeltaPage, error)

	// Search searches the user's drive, following continuation links.
	Search(ctx context.Context, query string) ([]drive.ItemRecord, error)

	// Recent lists the user's recently used items.
	Recent(ctx context.Context) ([]drive.ItemRecord, error)

	// SharedWithMe lists items shared with the signed-in user.
	SharedWithMe(ctx context.Context) ([]drive.ItemRecord, error)

	// GetItem fetches bare item metadata.
	GetItem(ctx context.Context, driveID, itemID string) (drive.ItemRecord, error)

	// GetItemWithFields fetches item metadata plus its list-item fields in
	// one batched call.
	GetItemWithFields(ctx context.Context, driveID, itemID string) (drive.ItemDetail, error)

	// GetMetadataFields fetches the item's list-item field values.
	GetMetadataFields(ctx context.Context, driveID, itemID string) (map[string]string, error)

	// PatchMetadataFields patches the given list-item field values.
	PatchMetadataFields(ctx context.Context, driveID, itemID string, fields map[string]string) error

	// ListProjects fetches the tenant's project reference list. Not cached.
	ListProjects(ctx context.Context) ([]string, error)

	// GetSensitivityLabel fetches the item's assigned sensitivity label.
	GetSensitivityLabel(ctx context.Context, driveID, itemID string) (drive.SensitivityLabel, error)

	// ListSensitivityLabels fetches the tenant sensitivity label catalog.
	ListSensitivityLabels(ctx context.Context) ([]drive.SensitivityLabel, error)

	// AssignSensitivityLabel assigns a sensitivity label to an item.
	AssignSensitivityLabel(ctx context.Context, driveID, itemID, labelID, justification string) error

	// GetRetentionLabel fetches the item's retention label.
	GetRetentionLabel(ctx context.Context, driveID, itemID string) (drive.RetentionLabel, error)

	// ListConditionalAccessPolicies fetches the tenant's conditional access
	// policies.
	ListConditionalAccessPolicies(ctx context.Context) ([]drive.AccessPolicy, error)

	// ListInformationBarriers fetches the tenant's information barrier
	// segments.
	ListInformationBarriers(ctx context.Context) ([]string, error)

	// ItemActivities fetches the item's most recent activity records.
	ItemActivities(ctx context.Context, driveID, itemID string, top int) ([]drive.ActivityRecord, error)

	// ItemVersions fetches the item's most recent versions.
	ItemVersions(ctx context.Context, driveID, itemID string, top int) ([]drive.VersionRecord, error)

	// RestoreVersion restores the item to the given version.
	RestoreVersion(ctx context.Context, driveID, itemID, versionID string) error

	// UploadFile uploads content to the signed-in user's personal root with
	// rename-on-conflict.
	UploadFile(ctx context.Context, name string, content io.Reader) (drive.ItemRecord, error)

	// CopyToPersonalRoot copies an item into the user's personal root,
	// preserving its name.
	CopyToPersonalRoot(ctx context.Context, driveID, itemID, name string) error

	// Me fetches the signed-in user's profile. Used as a connectivity probe.
	Me(ctx context.Context) (drive.User, error)
}
