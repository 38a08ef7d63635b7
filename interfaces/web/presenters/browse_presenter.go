// Package presenters transforms domain data into renderer-ready view records.
package presenters

import (
	"fmt"
	"time"

	"dochub/application"
	"dochub/domain/drive"
)

// ItemVM is one listing tile.
type ItemVM struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	IsFolder   bool   `json:"is_folder"`
	Deleted    bool   `json:"deleted"`
	Modified   string `json:"modified"`
	ModifiedBy string `json:"modified_by"`
	SizeKB     string `json:"size_kb"`
	WebURL     string `json:"web_url"`
	DriveID    string `json:"drive_id"`
}

// BreadcrumbVM is one entry of the folder trail.
type BreadcrumbVM struct {
	FolderID string `json:"folder_id"`
	Name     string `json:"name"`
}

// ListingVM is the view model for the browse surface.
type ListingVM struct {
	Source        string         `json:"source"`
	Breadcrumbs   []BreadcrumbVM `json:"breadcrumbs"`
	Query         string         `json:"query,omitempty"`
	Sort          string         `json:"sort"`
	Last7DaysOnly bool           `json:"last_7_days_only"`
	Items         []ItemVM       `json:"items"`
	TotalItems    int            `json:"total_items"`
	HasMore       bool           `json:"has_more"`
	LoadingMore   bool           `json:"loading_more"`
	Error         string         `json:"error,omitempty"`
}

// BrowsePresenter transforms browse snapshots for the renderer.
type BrowsePresenter struct{}

// NewBrowsePresenter creates a browse presenter.
func NewBrowsePresenter() *BrowsePresenter {
	return &BrowsePresenter{}
}

// ToListingViewModel converts a browse snapshot to its view model.
func (p *BrowsePresenter) ToListingViewModel(snap application.ListingSnapshot) *ListingVM {
	crumbs := make([]BreadcrumbVM, 0, len(snap.Breadcrumbs))
	for _, crumb := range snap.Breadcrumbs {
		crumbs = append(crumbs, BreadcrumbVM{FolderID: crumb.FolderID, Name: crumb.DisplayName})
	}

	items := make([]ItemVM, 0, len(snap.Items))
	for _, item := range snap.Items {
		items = append(items, p.toItemVM(item))
	}

	return &ListingVM{
		Source:        string(snap.Source),
		Breadcrumbs:   crumbs,
		Query:         snap.Query,
		Sort:          string(snap.Sort),
		Last7DaysOnly: snap.Last7DaysOnly,
		Items:         items,
		TotalItems:    len(items),
		HasMore:       snap.HasMore,
		LoadingMore:   snap.LoadingMore,
		Error:         snap.LastError,
	}
}

// ToItemViewModels converts a plain item slice, used for the folder tiles
// panel.
func (p *BrowsePresenter) ToItemViewModels(records []drive.ItemRecord) []ItemVM {
	items := make([]ItemVM, 0, len(records))
	for _, record := range records {
		items = append(items, p.toItemVM(record))
	}
	return items
}

func (p *BrowsePresenter) toItemVM(item drive.ItemRecord) ItemVM {
	return ItemVM{
		ID:         item.ID,
		Name:       item.GetDisplayName(),
		Type:       drive.FriendlyType(item.Name, "", item.IsFolder),
		IsFolder:   item.IsFolder,
		Deleted:    item.Deleted,
		Modified:   formatTimestamp(item.LastModifiedAt),
		ModifiedBy: item.ModifiedBy,
		SizeKB:     formatSizeKB(item.SizeBytes),
		WebURL:     item.WebURL,
		DriveID:    item.ParentDriveID,
	}
}

// formatTimestamp renders a timestamp for display, empty when unknown.
func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006 15:04")
}

// formatSizeKB renders a byte count in whole kilobytes.
func formatSizeKB(sizeBytes int64) string {
	if sizeBytes <= 0 {
		return ""
	}
	kb := sizeBytes / 1024
	if kb == 0 {
		kb = 1
	}
	return fmt.Sprintf("%d KB", kb)
}
