package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"dochub/application"
	"dochub/domain/drive"
	"dochub/interfaces/web/presenters"
	"dochub/logging"
)

// BrowseHandlers serves the browse surface: source switching, folder
// descent, sort/filter, incremental paging, and search intent.
type BrowseHandlers struct {
	session   *application.BrowseSession
	listing   *application.ListingService
	presenter *presenters.BrowsePresenter
	logger    *logging.Logger
}

// NewBrowseHandlers creates browse handlers.
func NewBrowseHandlers(session *application.BrowseSession, listing *application.ListingService) *BrowseHandlers {
	return &BrowseHandlers{
		session:   session,
		listing:   listing,
		presenter: presenters.NewBrowsePresenter(),
		logger:    logging.Default().WithComponent("browse_handlers"),
	}
}

// GetListing returns the current browse snapshot.
func (h *BrowseHandlers) GetListing(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.presenter.ToListingViewModel(h.session.Snapshot()))
}

// SwitchSource switches to the named root source and fetches it.
func (h *BrowseHandlers) SwitchSource(w http.ResponseWriter, r *http.Request) {
	var (
		snap application.ListingSnapshot
		err  error
	)
	switch chi.URLParam(r, "source") {
	case string(drive.SourceRecent):
		snap, err = h.session.ShowRecent(r.Context())
	case string(drive.SourceAll):
		snap, err = h.session.ShowAll(r.Context())
	case string(drive.SourceShared):
		snap, err = h.session.ShowShared(r.Context())
	default:
		respondError(w, http.StatusBadRequest, "unknown source")
		return
	}
	if err != nil {
		respondJSON(w, http.StatusBadGateway, h.presenter.ToListingViewModel(snap))
		return
	}
	respondJSON(w, http.StatusOK, h.presenter.ToListingViewModel(snap))
}

// OpenFolder descends into a folder.
func (h *BrowseHandlers) OpenFolder(w http.ResponseWriter, r *http.Request) {
	folderID := chi.URLParam(r, "folderID")
	if folderID == "" {
		respondError(w, http.StatusBadRequest, "folder id is required")
		return
	}
	name := r.URL.Query().Get("name")
	snap, err := h.session.OpenFolder(r.Context(), folderID, name)
	if err != nil {
		respondJSON(w, http.StatusBadGateway, h.presenter.ToListingViewModel(snap))
		return
	}
	respondJSON(w, http.StatusOK, h.presenter.ToListingViewModel(snap))
}

// Back pops one breadcrumb.
func (h *BrowseHandlers) Back(w http.ResponseWriter, r *http.Request) {
	snap, err := h.session.Back(r.Context())
	if err != nil {
		respondJSON(w, http.StatusBadGateway, h.presenter.ToListingViewModel(snap))
		return
	}
	respondJSON(w, http.StatusOK, h.presenter.ToListingViewModel(snap))
}

// CrumbTo truncates the trail to a clicked ancestor.
func (h *BrowseHandlers) CrumbTo(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid breadcrumb index")
		return
	}
	snap, err := h.session.CrumbTo(r.Context(), index)
	if err != nil {
		respondJSON(w, http.StatusBadGateway, h.presenter.ToListingViewModel(snap))
		return
	}
	respondJSON(w, http.StatusOK, h.presenter.ToListingViewModel(snap))
}

// SetSort changes the sort option. Pure reprojection, no fetch.
func (h *BrowseHandlers) SetSort(w http.ResponseWriter, r *http.Request) {
	sort := drive.SortOption(r.URL.Query().Get("sort"))
	switch sort {
	case drive.SortModifiedDesc, drive.SortModifiedAsc, drive.SortNameAsc, drive.SortNameDesc:
	default:
		respondError(w, http.StatusBadRequest, "unknown sort option")
		return
	}
	respondJSON(w, http.StatusOK, h.presenter.ToListingViewModel(h.session.SetSort(sort)))
}

// SetFilter toggles the last-7-days filter. Pure reprojection, no fetch.
func (h *BrowseHandlers) SetFilter(w http.ResponseWriter, r *http.Request) {
	enabled := r.URL.Query().Get("last7days") == "true"
	respondJSON(w, http.StatusOK, h.presenter.ToListingViewModel(h.session.SetFilter(enabled)))
}

// LoadMore fetches the next delta page. Duplicate triggers while a fetch is
// outstanding return the unchanged snapshot.
func (h *BrowseHandlers) LoadMore(w http.ResponseWriter, r *http.Request) {
	snap, err := h.session.LoadMore(r.Context())
	if err != nil {
		respondJSON(w, http.StatusBadGateway, h.presenter.ToListingViewModel(snap))
		return
	}
	respondJSON(w, http.StatusOK, h.presenter.ToListingViewModel(snap))
}

// SearchInput registers a search keystroke. The session debounces; the
// response acknowledges the intent rather than returning results, which
// arrive via a later listing fetch or SSE refresh.
func (h *BrowseHandlers) SearchInput(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	h.session.SearchInput(query)
	respondJSON(w, http.StatusAccepted, map[string]string{"query": query})
}

// FolderTiles lists the folders at the drive root for the navigation panel.
func (h *BrowseHandlers) FolderTiles(w http.ResponseWriter, r *http.Request) {
	folders, err := h.listing.FolderTiles(r.Context())
	if err != nil {
		h.logger.Warn("folder tiles fetch failed", "error", err)
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, h.presenter.ToItemViewModels(folders))
}
