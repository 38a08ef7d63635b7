package handlers

import (
	"errors"
	"net/http"

	"dochub/application"
	"dochub/interfaces/web/presenters"
	"dochub/logging"
)

// maxUploadBytes caps simple uploads at the single-request limit.
const maxUploadBytes = 4 << 20

// MutationHandlers serves remote mutations: upload, metadata save, label
// assignment, copy fallback, version restore.
type MutationHandlers struct {
	mutations *application.MutationService
	selection *application.SelectionService
	presenter *presenters.SelectionPresenter
	browse    *presenters.BrowsePresenter
	logger    *logging.Logger
}

// NewMutationHandlers creates mutation handlers.
func NewMutationHandlers(mutations *application.MutationService, selection *application.SelectionService) *MutationHandlers {
	return &MutationHandlers{
		mutations: mutations,
		selection: selection,
		presenter: presenters.NewSelectionPresenter(),
		browse:    presenters.NewBrowsePresenter(),
		logger:    logging.Default().WithComponent("mutation_handlers"),
	}
}

// Upload stores a file in the user's personal root with rename-on-conflict.
func (h *MutationHandlers) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	item, err := h.mutations.UploadNew(r.Context(), header.Filename, file)
	if err != nil {
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"id": item.ID, "name": item.Name})
}

type saveMetadataRequest struct {
	Department string `json:"department"`
	Project    string `json:"project"`
	Category   string `json:"category"`
}

// SaveMetadata patches the selection's classification fields. Schemas that
// expose none of the fields yield a user-visible no-op message.
func (h *MutationHandlers) SaveMetadata(w http.ResponseWriter, r *http.Request) {
	var req saveMetadataRequest
	if err := decodeJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.mutations.SaveMetadata(r.Context(), req.Department, req.Project, req.Category)
	if errors.Is(err, application.ErrNoClassificationFields) {
		respondJSON(w, http.StatusOK, map[string]string{"message": err.Error()})
		return
	}
	if err != nil {
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}

	snap, _ := h.selection.Snapshot()
	respondJSON(w, http.StatusOK, h.presenter.ToSelectionViewModel(snap))
}

type assignLabelRequest struct {
	LabelID   string `json:"label_id"`
	LabelName string `json:"label_name"`
}

// AssignLabel assigns a sensitivity label to the selected item.
func (h *MutationHandlers) AssignLabel(w http.ResponseWriter, r *http.Request) {
	var req assignLabelRequest
	if err := decodeJSONBody(r, &req); err != nil || req.LabelID == "" {
		respondError(w, http.StatusBadRequest, "label_id is required")
		return
	}

	err := h.mutations.AssignSensitivityLabel(r.Context(), req.LabelID, req.LabelName)
	if errors.Is(err, application.ErrLabelEditingNotPermitted) {
		respondError(w, http.StatusForbidden, err.Error())
		return
	}
	if err != nil {
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}

	snap, _ := h.selection.Snapshot()
	respondJSON(w, http.StatusOK, h.presenter.ToSelectionViewModel(snap))
}

// CopyToPersonalDrive runs the cross-drive fallback for a selection that
// resolved NotFound.
func (h *MutationHandlers) CopyToPersonalDrive(w http.ResponseWriter, r *http.Request) {
	if err := h.mutations.CopyToPersonalDrive(r.Context()); err != nil {
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Copy to your personal drive started"})
}

// RestoreVersion restores the selected item to a prior version and returns
// the reloaded selection.
func (h *MutationHandlers) RestoreVersion(w http.ResponseWriter, r *http.Request) {
	versionID := r.URL.Query().Get("version")
	if versionID == "" {
		respondError(w, http.StatusBadRequest, "version is required")
		return
	}

	if err := h.mutations.RestoreVersion(r.Context(), versionID); err != nil {
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}

	snap, ok := h.selection.Snapshot()
	if !ok {
		respondJSON(w, http.StatusOK, map[string]string{"message": "version restored"})
		return
	}
	respondJSON(w, http.StatusOK, h.presenter.ToSelectionViewModel(snap))
}
