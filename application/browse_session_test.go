package application

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"dochub/domain/drive"
	"dochub/test/helpers"
)

const testDebounce = 20 * time.Millisecond

func newTestSession(fixture *helpers.GatewayFixture) *BrowseSession {
	listing := NewListingService(fixture.Gateway, 25)
	return NewBrowseSession(listing, nil, testDebounce)
}

func TestBrowseSession_ShowRecent_ShapesToTopTenFiles(t *testing.T) {
	fixture := helpers.NewGatewayFixture()

	var items []drive.ItemRecord
	for i := 0; i < 12; i++ {
		items = append(items, helpers.Data.Item(fmt.Sprintf("file-%d", i), fmt.Sprintf("file-%d.docx", i), i+1))
	}
	items = append(items, helpers.Data.Folder("folder-1", "Reports"))
	fixture.ExpectRecent(items)

	session := newTestSession(fixture)
	snap, err := session.ShowRecent(context.Background())

	require.NoError(t, err)
	assert.Equal(t, drive.SourceRecent, snap.Source)
	require.Len(t, snap.Items, 10)
	assert.Equal(t, "file-0", snap.Items[0].ID)
	for _, item := range snap.Items {
		assert.False(t, item.IsFolder)
	}
	fixture.Gateway.AssertExpectations(t)
}

func TestBrowseSession_ShowAllThenLoadMore_AppendsPages(t *testing.T) {
	fixture := helpers.NewGatewayFixture()
	fixture.ExpectResolve()
	fixture.ExpectDeltaPage("", drive.DeltaPage{
		Items:      []drive.ItemRecord{helpers.Data.Item("a", "alpha.docx", 10)},
		NextCursor: "cursor-1",
	})
	fixture.ExpectDeltaPage("cursor-1", drive.DeltaPage{
		Items:      []drive.ItemRecord{helpers.Data.Item("b", "bravo.docx", 5)},
		NextCursor: "",
	})

	session := newTestSession(fixture)

	snap, err := session.ShowAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, drive.SourceAll, snap.Source)
	assert.True(t, snap.HasMore)
	require.Len(t, snap.Items, 1)

	snap, err = session.LoadMore(context.Background())
	require.NoError(t, err)
	assert.False(t, snap.HasMore)
	require.Len(t, snap.Items, 2)
	// New pages land after existing ones even though "b" is newer.
	assert.Equal(t, "a", snap.Items[0].ID)
	assert.Equal(t, "b", snap.Items[1].ID)
}

func TestBrowseSession_LoadMore_DropsConcurrentTrigger(t *testing.T) {
	fixture := helpers.NewGatewayFixture()
	fixture.ExpectResolve()
	fixture.ExpectDeltaPage("", drive.DeltaPage{
		Items:      []drive.ItemRecord{helpers.Data.Item("a", "alpha.docx", 10)},
		NextCursor: "cursor-1",
	})

	session := newTestSession(fixture)
	_, err := session.ShowAll(context.Background())
	require.NoError(t, err)

	fixture.Gateway.On("DeltaPage", mock.Anything, helpers.TestDriveID, "cursor-1", mock.Anything).
		Run(func(args mock.Arguments) {
			// A second trigger while the page is in flight is dropped.
			snap, nestedErr := session.LoadMore(context.Background())
			assert.NoError(t, nestedErr)
			assert.True(t, snap.LoadingMore)
			assert.Len(t, snap.Items, 1)
		}).
		Return(drive.DeltaPage{
			Items:      []drive.ItemRecord{helpers.Data.Item("b", "bravo.docx", 5)},
			NextCursor: "",
		}, nil)

	snap, err := session.LoadMore(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.Items, 2)
	assert.False(t, snap.LoadingMore)
	fixture.Gateway.AssertNumberOfCalls(t, "DeltaPage", 2)
}

func TestBrowseSession_LoadMore_NoopOutsideDeltaSource(t *testing.T) {
	fixture := helpers.NewGatewayFixture()
	fixture.ExpectRecent([]drive.ItemRecord{helpers.Data.Item("a", "alpha.docx", 1)})

	session := newTestSession(fixture)
	_, err := session.ShowRecent(context.Background())
	require.NoError(t, err)

	snap, err := session.LoadMore(context.Background())
	require.NoError(t, err)
	assert.Len(t, snap.Items, 1)
	fixture.Gateway.AssertNotCalled(t, "DeltaPage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBrowseSession_SortAndFilter_ReprojectWithoutRefetch(t *testing.T) {
	fixture := helpers.NewGatewayFixture()
	// Timestamps are anchored to the wall clock because the 7-day filter
	// cuts off relative to now.
	stale := helpers.Data.Item("old", "zulu.docx", 0)
	stale.LastModifiedAt = time.Now().Add(-10 * 24 * time.Hour)
	fresh := helpers.Data.Item("new", "alpha.docx", 0)
	fresh.LastModifiedAt = time.Now().Add(-time.Hour)
	fixture.ExpectShared([]drive.ItemRecord{stale, fresh})

	session := newTestSession(fixture)
	snap, err := session.ShowShared(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.Items, 2)
	assert.Equal(t, "new", snap.Items[0].ID)

	snap = session.SetSort(drive.SortNameDesc)
	assert.Equal(t, "old", snap.Items[0].ID)

	snap = session.SetFilter(true)
	require.Len(t, snap.Items, 1)
	assert.Equal(t, "new", snap.Items[0].ID)

	// Toggling the filter off restores the unfiltered projection exactly.
	snap = session.SetFilter(false)
	require.Len(t, snap.Items, 2)
	assert.Equal(t, "old", snap.Items[0].ID)

	fixture.Gateway.AssertNumberOfCalls(t, "SharedWithMe", 1)
}

func TestBrowseSession_FolderDescentAndBack(t *testing.T) {
	fixture := helpers.NewGatewayFixture()
	fixture.ExpectResolve()
	fixture.ExpectRecent([]drive.ItemRecord{helpers.Data.Item("r", "recent.docx", 1)})
	fixture.ExpectChildren("folder-1", []drive.ItemRecord{helpers.Data.Item("child", "child.docx", 2)})

	session := newTestSession(fixture)

	snap, err := session.OpenFolder(context.Background(), "folder-1", "Reports")
	require.NoError(t, err)
	assert.Equal(t, drive.SourceFolder, snap.Source)
	require.Len(t, snap.Breadcrumbs, 1)
	assert.Equal(t, "Reports", snap.Breadcrumbs[0].DisplayName)
	require.Len(t, snap.Items, 1)
	assert.Equal(t, "child", snap.Items[0].ID)

	snap, err = session.Back(context.Background())
	require.NoError(t, err)
	assert.Equal(t, drive.SourceRecent, snap.Source)
	assert.Empty(t, snap.Breadcrumbs)
}

func TestBrowseSession_FetchFailureKeepsPriorItems(t *testing.T) {
	fixture := helpers.NewGatewayFixture()
	fixture.ExpectRecent([]drive.ItemRecord{helpers.Data.Item("a", "alpha.docx", 1)})
	fixture.Gateway.On("SharedWithMe", mock.Anything).Return(nil, errors.New("gateway unavailable"))

	session := newTestSession(fixture)
	_, err := session.ShowRecent(context.Background())
	require.NoError(t, err)

	snap, err := session.ShowShared(context.Background())
	require.Error(t, err)
	assert.Contains(t, snap.LastError, "gateway unavailable")
	// The prior projection is still displayed alongside the error.
	require.Len(t, snap.Items, 1)
	assert.Equal(t, "a", snap.Items[0].ID)
}

func TestBrowseSession_SearchDebounce_OnlyLatestQueryFetches(t *testing.T) {
	fixture := helpers.NewGatewayFixture()
	fixture.Gateway.On("Search", mock.Anything, "report").
		Return([]drive.ItemRecord{helpers.Data.Item("hit", "report.docx", 1)}, nil)

	session := newTestSession(fixture)
	session.SearchInput("r")
	session.SearchInput("re")
	session.SearchInput("report")

	require.Eventually(t, func() bool {
		snap := session.Snapshot()
		return snap.Source == drive.SourceSearch && len(snap.Items) == 1
	}, time.Second, 5*time.Millisecond)

	snap := session.Snapshot()
	assert.Equal(t, "report", snap.Query)
	assert.Equal(t, "hit", snap.Items[0].ID)
	fixture.Gateway.AssertNumberOfCalls(t, "Search", 1)
	fixture.Gateway.AssertNotCalled(t, "Search", mock.Anything, "r")
	fixture.Gateway.AssertNotCalled(t, "Search", mock.Anything, "re")
}

func TestBrowseSession_SearchResultDiscardedAfterSourceChange(t *testing.T) {
	fixture := helpers.NewGatewayFixture()
	fixture.ExpectRecent([]drive.ItemRecord{helpers.Data.Item("r", "recent.docx", 1)})

	session := newTestSession(fixture)
	navigated := make(chan struct{})
	fixture.Gateway.On("Search", mock.Anything, "alpha").
		Run(func(args mock.Arguments) {
			// The user leaves the search view while the fetch is in flight.
			_, err := session.ShowRecent(context.Background())
			assert.NoError(t, err)
			close(navigated)
		}).
		Return([]drive.ItemRecord{helpers.Data.Item("stale", "alpha.docx", 1)}, nil)

	session.SearchInput("alpha")

	select {
	case <-navigated:
	case <-time.After(time.Second):
		t.Fatal("search fetch never started")
	}
	time.Sleep(50 * time.Millisecond)

	snap := session.Snapshot()
	assert.Equal(t, drive.SourceRecent, snap.Source)
	require.Len(t, snap.Items, 1)
	assert.Equal(t, "r", snap.Items[0].ID)
}

func TestBrowseSession_Refresh_RestartsDeltaPaging(t *testing.T) {
	fixture := helpers.NewGatewayFixture()
	fixture.ExpectResolve()
	fixture.ExpectDeltaPage("", drive.DeltaPage{
		Items:      []drive.ItemRecord{helpers.Data.Item("a", "alpha.docx", 10)},
		NextCursor: "",
	})

	session := newTestSession(fixture)
	_, err := session.ShowAll(context.Background())
	require.NoError(t, err)

	snap, err := session.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, drive.SourceAll, snap.Source)
	require.Len(t, snap.Items, 1)
	fixture.Gateway.AssertNumberOfCalls(t, "DeltaPage", 2)
}
