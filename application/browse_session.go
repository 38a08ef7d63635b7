package application

import (
	"context"
	"sync"
	"time"

	"dochub/domain/drive"
	domainevents "dochub/domain/events"
	"dochub/logging"
	"dochub/platform/events"
)

// ListingSnapshot is a point-in-time copy of the browse state handed to
// presenters. Slices are copies; mutating a snapshot never touches the
// session.
type ListingSnapshot struct {
	Source        drive.SourceKind
	Breadcrumbs   []drive.Breadcrumb
	Query         string
	Sort          drive.SortOption
	Last7DaysOnly bool
	Items         []drive.ItemRecord
	HasMore       bool
	LoadingMore   bool
	LastError     string
}

// BrowseSession is the per-process browse state machine: one navigation
// state, the fetched items for the active source, and the projected display
// sequence. All transitions run under one mutex; the state value is swapped
// atomically so readers always see a consistent view.
type BrowseSession struct {
	mu      sync.Mutex
	listing *ListingService
	bus     *events.RefreshEventBus
	logger  *logging.Logger

	nav       drive.NavigationState
	raw       []drive.ItemRecord   // full fetch for non-delta sources
	pages     [][]drive.ItemRecord // per-page fetches for the delta source
	projected []drive.ItemRecord

	loadingMore bool
	lastError   string

	debounce     time.Duration
	searchTimer  *time.Timer
	pendingQuery string
}

// NewBrowseSession creates a browse session starting on the Recent view.
func NewBrowseSession(listing *ListingService, bus *events.RefreshEventBus, debounce time.Duration) *BrowseSession {
	return &BrowseSession{
		listing:  listing,
		bus:      bus,
		logger:   logging.Default().WithComponent("browse_session"),
		nav:      drive.NewNavigationState(),
		debounce: debounce,
	}
}

// Snapshot returns a copy of the current browse state.
func (s *BrowseSession) Snapshot() ListingSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *BrowseSession) snapshotLocked() ListingSnapshot {
	crumbs := make([]drive.Breadcrumb, len(s.nav.Breadcrumbs))
	copy(crumbs, s.nav.Breadcrumbs)
	items := make([]drive.ItemRecord, len(s.projected))
	copy(items, s.projected)
	return ListingSnapshot{
		Source:        s.nav.Source,
		Breadcrumbs:   crumbs,
		Query:         s.nav.Query,
		Sort:          s.nav.Sort,
		Last7DaysOnly: s.nav.Last7DaysOnly,
		Items:         items,
		HasMore:       s.nav.Source == drive.SourceAll && s.nav.DeltaCursor != "",
		LoadingMore:   s.loadingMore,
		LastError:     s.lastError,
	}
}

// CurrentSource returns the active listing source.
func (s *BrowseSession) CurrentSource() drive.SourceKind {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nav.Source
}

// ShowRecent switches to the recent-items view and fetches it.
func (s *BrowseSession) ShowRecent(ctx context.Context) (ListingSnapshot, error) {
	s.mu.Lock()
	s.nav = s.nav.EnterRecent()
	s.mu.Unlock()
	return s.refetch(ctx)
}

// ShowAll switches to the delta-backed full listing. Paging always restarts
// from scratch; the first page is fetched here.
func (s *BrowseSession) ShowAll(ctx context.Context) (ListingSnapshot, error) {
	s.mu.Lock()
	s.nav = s.nav.EnterAll()
	s.pages = nil
	s.projected = nil
	nav := s.nav
	s.mu.Unlock()

	page, err := s.listing.FetchDeltaPage(ctx, "")
	if err != nil {
		return s.recordError(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.nav.Source != drive.SourceAll {
		// Superseded by another transition while fetching.
		return s.snapshotLocked(), nil
	}
	s.nav = nav.WithDeltaCursor(page.NextCursor)
	s.pages = [][]drive.ItemRecord{page.Items}
	s.reprojectLocked()
	s.lastError = ""
	s.publishRefreshLocked()
	return s.snapshotLocked(), nil
}

// ShowShared switches to the shared-with-me view and fetches it.
func (s *BrowseSession) ShowShared(ctx context.Context) (ListingSnapshot, error) {
	s.mu.Lock()
	s.nav = s.nav.EnterShared()
	s.mu.Unlock()
	return s.refetch(ctx)
}

// OpenFolder descends into a folder and fetches its children.
func (s *BrowseSession) OpenFolder(ctx context.Context, folderID, displayName string) (ListingSnapshot, error) {
	s.mu.Lock()
	s.nav = s.nav.EnterFolder(folderID, displayName)
	s.mu.Unlock()
	return s.refetch(ctx)
}

// Back pops one breadcrumb and fetches the resulting view.
func (s *BrowseSession) Back(ctx context.Context) (ListingSnapshot, error) {
	s.mu.Lock()
	s.nav = s.nav.Back()
	s.mu.Unlock()
	return s.refetch(ctx)
}

// CrumbTo truncates the breadcrumb trail to the clicked ancestor and fetches
// that folder's listing.
func (s *BrowseSession) CrumbTo(ctx context.Context, index int) (ListingSnapshot, error) {
	s.mu.Lock()
	s.nav = s.nav.CrumbTo(index)
	s.mu.Unlock()
	return s.refetch(ctx)
}

// SetSort changes the sort option and reprojects without refetching.
func (s *BrowseSession) SetSort(sort drive.SortOption) ListingSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nav = s.nav.WithSort(sort)
	s.reprojectLocked()
	s.publishRefreshLocked()
	return s.snapshotLocked()
}

// SetFilter toggles the last-7-days filter and reprojects without
// refetching. Toggling off restores the unfiltered projection exactly.
func (s *BrowseSession) SetFilter(last7DaysOnly bool) ListingSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nav = s.nav.WithFilter(last7DaysOnly)
	s.reprojectLocked()
	s.publishRefreshLocked()
	return s.snapshotLocked()
}

// LoadMore fetches the next delta page. A second trigger while a fetch is
// outstanding is dropped, not queued.
func (s *BrowseSession) LoadMore(ctx context.Context) (ListingSnapshot, error) {
	s.mu.Lock()
	if s.nav.Source != drive.SourceAll || s.loadingMore || s.nav.DeltaCursor == "" {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap, nil
	}
	s.loadingMore = true
	cursor := s.nav.DeltaCursor
	s.mu.Unlock()

	page, err := s.listing.FetchDeltaPage(ctx, cursor)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadingMore = false
	if err != nil {
		s.lastError = err.Error()
		return s.snapshotLocked(), err
	}
	if s.nav.Source != drive.SourceAll || s.nav.DeltaCursor != cursor {
		// The view moved on while the page was in flight.
		return s.snapshotLocked(), nil
	}
	s.nav = s.nav.WithDeltaCursor(page.NextCursor)
	s.pages = append(s.pages, page.Items)
	s.reprojectLocked()
	s.lastError = ""
	s.publishRefreshLocked()
	return s.snapshotLocked(), nil
}

// SearchInput registers a keystroke. The fetch is debounced: a new keystroke
// within the quiet window cancels the previous pending intent, and only the
// latest query issues a network call. Late results for a superseded query
// are discarded.
func (s *BrowseSession) SearchInput(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingQuery = query
	if s.searchTimer != nil {
		s.searchTimer.Stop()
	}
	s.searchTimer = time.AfterFunc(s.debounce, func() {
		s.runSearch(query)
	})
}

func (s *BrowseSession) runSearch(query string) {
	s.mu.Lock()
	if s.pendingQuery != query {
		// A newer keystroke arrived after this timer was armed.
		s.mu.Unlock()
		return
	}
	s.nav = s.nav.EnterSearch(query)
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	items, err := s.listing.FetchSource(ctx, drive.NewNavigationState().EnterSearch(query))

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.nav.Source != drive.SourceSearch || s.nav.Query != query {
		// Query identity changed while the fetch was in flight.
		return
	}
	if err != nil {
		s.lastError = err.Error()
		s.logger.Warn("search fetch failed", "query", query, "error", err)
		return
	}
	s.raw = items
	s.reprojectLocked()
	s.lastError = ""
	s.publishRefreshLocked()
}

// Refresh refetches the active source in place. Used after mutations that
// invalidate the listing.
func (s *BrowseSession) Refresh(ctx context.Context) (ListingSnapshot, error) {
	s.mu.Lock()
	source := s.nav.Source
	s.mu.Unlock()
	if source == drive.SourceAll {
		return s.ShowAll(ctx)
	}
	return s.refetch(ctx)
}

// refetch fetches the current non-delta source and reprojects.
func (s *BrowseSession) refetch(ctx context.Context) (ListingSnapshot, error) {
	s.mu.Lock()
	nav := s.nav
	s.mu.Unlock()

	items, err := s.listing.FetchSource(ctx, nav)
	if err != nil {
		return s.recordError(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.nav.Source != nav.Source || s.nav.Query != nav.Query || len(s.nav.Breadcrumbs) != len(nav.Breadcrumbs) {
		// Superseded by another transition while fetching.
		return s.snapshotLocked(), nil
	}
	s.raw = items
	s.reprojectLocked()
	s.lastError = ""
	s.publishRefreshLocked()
	return s.snapshotLocked(), nil
}

func (s *BrowseSession) recordError(err error) (ListingSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = err.Error()
	s.logger.Warn("listing fetch failed", "source", s.nav.Source, "error", err)
	return s.snapshotLocked(), err
}

// reprojectLocked rebuilds the display sequence from the stored fetch. The
// delta source reapplies the sort within each page and keeps page order; the
// recent source shapes to non-folder top 10; other sources run the plain
// filter-then-sort projection.
func (s *BrowseSession) reprojectLocked() {
	switch s.nav.Source {
	case drive.SourceAll:
		var out []drive.ItemRecord
		for _, page := range s.pages {
			out = drive.AppendDeltaPage(out, page, s.nav.Sort)
		}
		s.projected = out
	case drive.SourceRecent:
		// Shape to the 10 most recently modified non-folders first, then
		// apply the user's sort and filter to that window.
		s.projected = drive.Project(drive.ProjectRecent(s.raw), s.nav.Sort, s.nav.Last7DaysOnly, time.Now())
	default:
		s.projected = drive.Project(s.raw, s.nav.Sort, s.nav.Last7DaysOnly, time.Now())
	}
}

func (s *BrowseSession) publishRefreshLocked() {
	if s.bus == nil {
		return
	}
	s.bus.PublishListingRefreshed(domainevents.ListingRefreshedEvent{
		Source: s.nav.Source,
		Count:  len(s.projected),
	})
}
