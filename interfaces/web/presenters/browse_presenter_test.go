package presenters

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dochub/application"
	"dochub/domain/drive"
)

func TestBrowsePresenter_ToListingViewModel(t *testing.T) {
	presenter := NewBrowsePresenter()
	modified := time.Date(2025, time.March, 10, 9, 30, 0, 0, time.UTC)

	vm := presenter.ToListingViewModel(application.ListingSnapshot{
		Source: drive.SourceFolder,
		Breadcrumbs: []drive.Breadcrumb{
			{FolderID: "a", DisplayName: "Reports"},
			{FolderID: "b", DisplayName: "Q1"},
		},
		Sort:    drive.SortModifiedDesc,
		HasMore: true,
		Items: []drive.ItemRecord{
			{
				ID:             "item-1",
				Name:           "budget.xlsx",
				LastModifiedAt: modified,
				ModifiedBy:     "Avery Chen",
				SizeBytes:      5120,
				ParentDriveID:  "drive-1",
			},
		},
	})

	assert.Equal(t, string(drive.SourceFolder), vm.Source)
	require.Len(t, vm.Breadcrumbs, 2)
	assert.Equal(t, "Q1", vm.Breadcrumbs[1].Name)
	assert.True(t, vm.HasMore)
	assert.Equal(t, 1, vm.TotalItems)

	item := vm.Items[0]
	assert.Equal(t, "budget.xlsx", item.Name)
	assert.Equal(t, "Excel spreadsheet", item.Type)
	assert.Equal(t, "Mar 10, 2025 09:30", item.Modified)
	assert.Equal(t, "5 KB", item.SizeKB)
	assert.Equal(t, "drive-1", item.DriveID)
}

func TestBrowsePresenter_UnknownTimestampAndSizeRenderEmpty(t *testing.T) {
	presenter := NewBrowsePresenter()

	items := presenter.ToItemViewModels([]drive.ItemRecord{
		{ID: "bare", Name: "Reports", IsFolder: true},
	})

	require.Len(t, items, 1)
	assert.Equal(t, "Folder", items[0].Type)
	assert.Empty(t, items[0].Modified)
	assert.Empty(t, items[0].SizeKB)
}

func TestFormatSizeKB(t *testing.T) {
	tests := []struct {
		name     string
		bytes    int64
		expected string
	}{
		{name: "zero", bytes: 0, expected: ""},
		{name: "sub_kilobyte_rounds_up", bytes: 512, expected: "1 KB"},
		{name: "exact", bytes: 2048, expected: "2 KB"},
		{name: "truncates", bytes: 5300, expected: "5 KB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatSizeKB(tt.bytes))
		})
	}
}

func TestBrowsePresenter_NamelessItemFallsBackToID(t *testing.T) {
	presenter := NewBrowsePresenter()

	items := presenter.ToItemViewModels([]drive.ItemRecord{{ID: "item-9"}})

	require.Len(t, items, 1)
	assert.Equal(t, "item-9", items[0].Name)
}
