package application

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"dochub/domain/contracts"
	"dochub/domain/drive"
	domainevents "dochub/domain/events"
	"dochub/logging"
	"dochub/platform/events"
)

const (
	activityTop = 5
	versionTop  = 5
)

// SelectionContext is the mutable detail state for the currently selected
// item. It is replaced wholesale on every new selection; the Token is the
// identity compared before applying any asynchronous facet result, so
// results for a superseded selection are discarded.
type SelectionContext struct {
	Token   uuid.UUID
	ItemID  string
	DriveID string

	Detail       drive.ItemDetail
	FriendlyType string

	// NotFound marks a selection whose item could not be resolved in the
	// requested drive; the copy-to-personal-drive fallback is offered.
	NotFound     bool
	FallbackName string

	Classification drive.ClassificationFacet
	Access         drive.AccessFacet
	Versions       drive.VersionsFacet
	Security       drive.SecurityFacet
}

// SelectionSnapshot is a presenter-safe copy of the selection state.
type SelectionSnapshot struct {
	Token         uuid.UUID
	ItemID        string
	DriveID       string
	Detail        drive.ItemDetail
	FriendlyType  string
	NotFound      bool
	FallbackName  string
	CanEditLabels bool

	Classification drive.ClassificationFacet
	Access         drive.AccessFacet
	Versions       drive.VersionsFacet
	Security       drive.SecurityFacet
}

// SelectionService orchestrates the selected-item detail panel: primary
// metadata plus four independently lazy-loaded facets, each with its own
// failure isolation.
type SelectionService struct {
	mu      sync.Mutex
	gateway contracts.DriveGateway
	listing *ListingService
	bus     *events.RefreshEventBus
	logger  *logging.Logger

	canEditLabels bool
	current       *SelectionContext
}

// NewSelectionService creates a selection service. canEditLabels gates the
// sensitivity-label editing surface for elevated roles.
func NewSelectionService(gateway contracts.DriveGateway, listing *ListingService, bus *events.RefreshEventBus, canEditLabels bool) *SelectionService {
	return &SelectionService{
		gateway:       gateway,
		listing:       listing,
		bus:           bus,
		logger:        logging.Default().WithComponent("selection_service"),
		canEditLabels: canEditLabels,
	}
}

// CanEditLabels reports whether the caller may surface label editing.
func (s *SelectionService) CanEditLabels() bool {
	return s.canEditLabels
}

// Snapshot returns a copy of the current selection, or ok=false when nothing
// is selected.
func (s *SelectionService) Snapshot() (SelectionSnapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return SelectionSnapshot{}, false
	}
	return s.snapshotLocked(), true
}

func (s *SelectionService) snapshotLocked() SelectionSnapshot {
	cur := s.current
	return SelectionSnapshot{
		Token:          cur.Token,
		ItemID:         cur.ItemID,
		DriveID:        cur.DriveID,
		Detail:         cur.Detail,
		FriendlyType:   cur.FriendlyType,
		NotFound:       cur.NotFound,
		FallbackName:   cur.FallbackName,
		CanEditLabels:  s.canEditLabels,
		Classification: cur.Classification,
		Access:         cur.Access,
		Versions:       cur.Versions,
		Security:       cur.Security,
	}
}

// Select replaces the selection wholesale and fetches primary metadata in
// one expanded call. A NotFound result does not fail the selection: the
// context is marked for the copy-to-personal-drive fallback, with a
// best-effort name recovery from the item's home drive.
func (s *SelectionService) Select(ctx context.Context, itemID, driveIDHint string) (SelectionSnapshot, error) {
	driveID := driveIDHint
	if driveID == "" {
		resolved, err := s.listing.DefaultDrive(ctx)
		if err != nil {
			return SelectionSnapshot{}, err
		}
		driveID = resolved
	}

	next := &SelectionContext{
		Token:          uuid.New(),
		ItemID:         itemID,
		DriveID:        driveID,
		Classification: drive.ClassificationFacet{Status: drive.FacetUnloaded},
		Access:         drive.AccessFacet{Status: drive.FacetUnloaded},
		Versions:       drive.VersionsFacet{Status: drive.FacetUnloaded},
		Security:       drive.SecurityFacet{Status: drive.FacetUnloaded},
	}

	// Installing the context before the fetch supersedes any in-flight
	// facet loads from the previous selection.
	s.mu.Lock()
	s.current = next
	token := next.Token
	s.mu.Unlock()

	detail, err := s.gateway.GetItemWithFields(ctx, driveID, itemID)
	if err != nil {
		if !contracts.IsNotFound(err) {
			s.mu.Lock()
			defer s.mu.Unlock()
			if s.current != nil && s.current.Token == token {
				s.current = nil
			}
			return SelectionSnapshot{}, err
		}
		fallbackName := s.recoverName(ctx, driveID, itemID)
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.current == nil || s.current.Token != token {
			return s.snapshotOrEmptyLocked()
		}
		s.current.NotFound = true
		s.current.FallbackName = fallbackName
		return s.snapshotLocked(), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil || s.current.Token != token {
		return s.snapshotOrEmptyLocked()
	}
	s.current.Detail = detail
	s.current.FriendlyType = detail.FriendlyTypeLabel()
	return s.snapshotLocked(), nil
}

func (s *SelectionService) snapshotOrEmptyLocked() (SelectionSnapshot, error) {
	if s.current == nil {
		return SelectionSnapshot{}, nil
	}
	return s.snapshotLocked(), nil
}

// recoverName fetches bare metadata for the fallback filename. Best effort;
// an empty name is acceptable.
func (s *SelectionService) recoverName(ctx context.Context, driveID, itemID string) string {
	item, err := s.gateway.GetItem(ctx, driveID, itemID)
	if err != nil {
		s.logger.Graph("fallback name recovery failed", "item_id", itemID, "error", err)
		return ""
	}
	return item.Name
}

// Clear drops the selection.
func (s *SelectionService) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
}

// stillCurrentLocked reports whether the given token identifies the live
// selection. Callers must hold the mutex.
func (s *SelectionService) stillCurrentLocked(token uuid.UUID) bool {
	return s.current != nil && s.current.Token == token
}

// LoadClassification loads the classification facet: the item's
// department/project/category field values plus the tenant project list. The
// project list is fetched fresh on every load; its failure is non-critical
// and degrades to an empty list.
func (s *SelectionService) LoadClassification(ctx context.Context) {
	s.mu.Lock()
	if s.current == nil || s.current.NotFound || s.current.Classification.Status == drive.FacetLoading {
		s.mu.Unlock()
		return
	}
	s.current.Classification.Status = drive.FacetLoading
	token := s.current.Token
	fields := s.current.Detail.Fields
	s.mu.Unlock()

	projects, err := s.gateway.ListProjects(ctx)
	if err != nil {
		s.logger.Warn("project list fetch failed", "error", err)
		projects = nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.stillCurrentLocked(token) {
		return
	}
	s.current.Classification = drive.ClassificationFacet{
		Status: drive.FacetLoaded,
		Data:   drive.NewClassification(fields, projects),
	}
}

// LoadAccess loads the access-history facet: the most recent activity
// records mapped to actor/action/timestamp rows.
func (s *SelectionService) LoadAccess(ctx context.Context) {
	token, driveID, itemID, ok := s.beginAccess()
	if !ok {
		return
	}

	records, err := s.gateway.ItemActivities(ctx, driveID, itemID, activityTop)

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.stillCurrentLocked(token) {
		return
	}
	if err != nil {
		s.current.Access = drive.AccessFacet{Status: drive.FacetFailed, Reason: err.Error()}
		return
	}
	s.current.Access = drive.AccessFacet{Status: drive.FacetLoaded, Data: records}
}

func (s *SelectionService) beginAccess() (uuid.UUID, string, string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil || s.current.NotFound || s.current.Access.Status == drive.FacetLoading {
		return uuid.UUID{}, "", "", false
	}
	s.current.Access.Status = drive.FacetLoading
	return s.current.Token, s.current.DriveID, s.current.ItemID, true
}

// LoadVersions loads the version-history facet.
func (s *SelectionService) LoadVersions(ctx context.Context) {
	s.mu.Lock()
	if s.current == nil || s.current.NotFound || s.current.Versions.Status == drive.FacetLoading {
		s.mu.Unlock()
		return
	}
	s.current.Versions.Status = drive.FacetLoading
	token := s.current.Token
	driveID := s.current.DriveID
	itemID := s.current.ItemID
	s.mu.Unlock()

	records, err := s.gateway.ItemVersions(ctx, driveID, itemID, versionTop)

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.stillCurrentLocked(token) {
		return
	}
	if err != nil {
		s.current.Versions = drive.VersionsFacet{Status: drive.FacetFailed, Reason: err.Error()}
		return
	}
	s.current.Versions = drive.VersionsFacet{Status: drive.FacetLoaded, Data: records}
}

// LoadSecurity loads the security-posture facet via four isolated
// sub-fetches. Each sub-section that fails independently degrades to
// "Unavailable"; a partial posture is still Loaded.
func (s *SelectionService) LoadSecurity(ctx context.Context) {
	s.mu.Lock()
	if s.current == nil || s.current.NotFound || s.current.Security.Status == drive.FacetLoading {
		s.mu.Unlock()
		return
	}
	s.current.Security.Status = drive.FacetLoading
	token := s.current.Token
	driveID := s.current.DriveID
	itemID := s.current.ItemID
	s.mu.Unlock()

	posture := drive.SecurityPosture{}

	if label, err := s.gateway.GetSensitivityLabel(ctx, driveID, itemID); err != nil {
		s.logger.Security("sensitivity label unavailable", "item_id", itemID, "error", err)
		posture.SensitivityLabel = drive.UnavailableMarker
	} else if label.DisplayName != "" {
		posture.SensitivityLabel = label.DisplayName
	} else {
		posture.SensitivityLabel = "None"
	}

	if label, err := s.gateway.GetRetentionLabel(ctx, driveID, itemID); err != nil {
		s.logger.Security("retention label unavailable", "item_id", itemID, "error", err)
		posture.RetentionLabel = drive.UnavailableMarker
	} else if label.DisplayName != "" {
		posture.RetentionLabel = label.DisplayName
	} else {
		posture.RetentionLabel = "None"
	}

	if policies, err := s.gateway.ListConditionalAccessPolicies(ctx); err != nil {
		s.logger.Security("conditional access policies unavailable", "error", err)
		posture.AccessPolicySummary = drive.UnavailableMarker
	} else {
		enabled := 0
		for _, policy := range policies {
			if policy.State == "enabled" {
				enabled++
			}
		}
		posture.AccessPolicySummary = summarizePolicies(enabled, len(policies))
	}

	if barriers, err := s.gateway.ListInformationBarriers(ctx); err != nil {
		s.logger.Security("information barriers unavailable", "error", err)
		posture.BarriersUnavailable = true
	} else {
		posture.InformationBarriers = barriers
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.stillCurrentLocked(token) {
		return
	}
	s.current.Security = drive.SecurityFacet{Status: drive.FacetLoaded, Data: posture}
}

// summarizePolicies renders the conditional-access sub-section.
func summarizePolicies(enabled, total int) string {
	if total == 0 {
		return "No policies"
	}
	return fmt.Sprintf("%d of %d policies enabled", enabled, total)
}

// BeginClassificationEdit flips the classification panel into edit mode.
// No network call is involved.
func (s *SelectionService) BeginClassificationEdit() (SelectionSnapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil || s.current.Classification.Status != drive.FacetLoaded {
		return SelectionSnapshot{}, false
	}
	s.current.Classification.Data.Editable = true
	return s.snapshotLocked(), true
}

// ApplyClassificationSaved records a successful metadata save: new values,
// back to read-only. Token-guarded like every other async apply.
func (s *SelectionService) ApplyClassificationSaved(token uuid.UUID, department, project, category string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.stillCurrentLocked(token) || s.current.Classification.Status != drive.FacetLoaded {
		return
	}
	data := &s.current.Classification.Data
	data.Department = department
	data.Project = project
	data.Category = category
	data.Editable = false
}

// ApplySensitivityLabel records a successful label assignment optimistically.
func (s *SelectionService) ApplySensitivityLabel(token uuid.UUID, labelName string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.stillCurrentLocked(token) || s.current.Security.Status != drive.FacetLoaded {
		return
	}
	s.current.Security.Data.SensitivityLabel = labelName
}

// Reload refetches the full selection detail in place, resetting every
// facet. Used after a version restore.
func (s *SelectionService) Reload(ctx context.Context) (SelectionSnapshot, error) {
	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return SelectionSnapshot{}, nil
	}
	itemID := s.current.ItemID
	driveID := s.current.DriveID
	s.mu.Unlock()

	snap, err := s.Select(ctx, itemID, driveID)
	if err == nil && s.bus != nil {
		s.bus.PublishSelectionRefreshed(domainevents.SelectionRefreshedEvent{
			ItemID:  itemID,
			DriveID: driveID,
		})
	}
	return snap, err
}
