package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"dochub/application"
	"dochub/domain/contracts"
	"dochub/interfaces/web/presenters"
	"dochub/logging"
)

// SelectionHandlers serves the selected-item detail panel and its lazily
// loaded facets.
type SelectionHandlers struct {
	selection *application.SelectionService
	gateway   contracts.DriveGateway
	presenter *presenters.SelectionPresenter
	logger    *logging.Logger
}

// NewSelectionHandlers creates selection handlers.
func NewSelectionHandlers(selection *application.SelectionService, gateway contracts.DriveGateway) *SelectionHandlers {
	return &SelectionHandlers{
		selection: selection,
		gateway:   gateway,
		presenter: presenters.NewSelectionPresenter(),
		logger:    logging.Default().WithComponent("selection_handlers"),
	}
}

// Select replaces the selection with the given item and returns the primary
// metadata view. A drive query parameter carries the cross-drive hint for
// shared items.
func (h *SelectionHandlers) Select(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemID")
	if itemID == "" {
		respondError(w, http.StatusBadRequest, "item id is required")
		return
	}
	driveHint := r.URL.Query().Get("drive")

	snap, err := h.selection.Select(r.Context(), itemID, driveHint)
	if err != nil {
		h.logger.Warn("selection failed", "item_id", itemID, "error", err)
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, h.presenter.ToSelectionViewModel(snap))
}

// GetSelection returns the current selection snapshot.
func (h *SelectionHandlers) GetSelection(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.selection.Snapshot()
	if !ok {
		respondError(w, http.StatusNotFound, "nothing selected")
		return
	}
	respondJSON(w, http.StatusOK, h.presenter.ToSelectionViewModel(snap))
}

// ClearSelection drops the selection.
func (h *SelectionHandlers) ClearSelection(w http.ResponseWriter, r *http.Request) {
	h.selection.Clear()
	respondJSON(w, http.StatusNoContent, nil)
}

// LoadFacet triggers one facet load and returns the updated snapshot. The
// load is synchronous within this request; a stale result against a newer
// selection is discarded by the service and the newer snapshot is returned.
func (h *SelectionHandlers) LoadFacet(w http.ResponseWriter, r *http.Request) {
	switch chi.URLParam(r, "facet") {
	case "classification":
		h.selection.LoadClassification(r.Context())
	case "access":
		h.selection.LoadAccess(r.Context())
	case "versions":
		h.selection.LoadVersions(r.Context())
	case "security":
		h.selection.LoadSecurity(r.Context())
	default:
		respondError(w, http.StatusBadRequest, "unknown facet")
		return
	}

	snap, ok := h.selection.Snapshot()
	if !ok {
		respondError(w, http.StatusNotFound, "nothing selected")
		return
	}
	respondJSON(w, http.StatusOK, h.presenter.ToSelectionViewModel(snap))
}

// BeginEdit flips the classification panel into edit mode.
func (h *SelectionHandlers) BeginEdit(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.selection.BeginClassificationEdit()
	if !ok {
		respondError(w, http.StatusConflict, "classification is not loaded")
		return
	}
	respondJSON(w, http.StatusOK, h.presenter.ToSelectionViewModel(snap))
}

// LabelCatalog returns the tenant sensitivity label catalog for the label
// picker. Only served to elevated roles.
func (h *SelectionHandlers) LabelCatalog(w http.ResponseWriter, r *http.Request) {
	if !h.selection.CanEditLabels() {
		respondError(w, http.StatusForbidden, application.ErrLabelEditingNotPermitted.Error())
		return
	}
	labels, err := h.gateway.ListSensitivityLabels(r.Context())
	if err != nil {
		var ge *contracts.GatewayError
		if errors.As(err, &ge) {
			h.logger.Warn("label catalog fetch failed", "operation", ge.Op, "error", err)
		}
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, h.presenter.ToLabelViewModels(labels))
}
