package application

import (
	"context"
	"errors"
	"io"

	"dochub/domain/contracts"
	"dochub/domain/drive"
	domainevents "dochub/domain/events"
	"dochub/logging"
	"dochub/platform/events"
)

// ErrNoClassificationFields marks a metadata save against a schema that
// exposes none of the classification fields. A user-visible no-op, not a
// gateway failure.
var ErrNoClassificationFields = errors.New("this library does not expose classification fields")

// ErrLabelEditingNotPermitted marks a label assignment attempted without the
// elevated role.
var ErrLabelEditingNotPermitted = errors.New("sensitivity label editing requires an elevated role")

// MutationService coordinates remote mutations: upload, metadata save, label
// assignment, copy, version restore. Each call is at-most-once with no
// automatic retry; failures leave the pre-mutation state intact and are
// published as user-visible events.
type MutationService struct {
	gateway   contracts.DriveGateway
	selection *SelectionService
	session   *BrowseSession
	bus       *events.RefreshEventBus
	logger    *logging.Logger
}

// NewMutationService creates a mutation service.
func NewMutationService(gateway contracts.DriveGateway, selection *SelectionService, session *BrowseSession, bus *events.RefreshEventBus) *MutationService {
	return &MutationService{
		gateway:   gateway,
		selection: selection,
		session:   session,
		bus:       bus,
		logger:    logging.Default().WithComponent("mutation_service"),
	}
}

// UploadNew uploads a file to the signed-in user's personal root with
// rename-on-conflict. On success the active listing refreshes when it is the
// Recent view, where the new file would appear.
func (s *MutationService) UploadNew(ctx context.Context, name string, content io.Reader) (drive.ItemRecord, error) {
	item, err := s.gateway.UploadFile(ctx, name, content)
	if err != nil {
		s.publishFailure("upload", "", err)
		return drive.ItemRecord{}, err
	}

	s.publishSuccess("upload", item.ID, item.Name)
	if s.session != nil && s.session.CurrentSource() == drive.SourceRecent {
		if _, err := s.session.Refresh(ctx); err != nil {
			s.logger.Warn("listing refresh after upload failed", "error", err)
		}
	}
	return item, nil
}

// SaveMetadata patches the selection's classification fields. Only keys the
// pre-fetched schema exposes are sent; when none of the three fields exist
// the save is a no-op surfaced as ErrNoClassificationFields. Exactly one
// patch is issued per save, and the panel returns to read-only on success.
func (s *MutationService) SaveMetadata(ctx context.Context, department, project, category string) error {
	snap, ok := s.selection.Snapshot()
	if !ok || snap.Classification.Status != drive.FacetLoaded {
		return errors.New("no classification loaded to save")
	}

	classification := snap.Classification.Data
	if !classification.SchemaSupportsSave() {
		return ErrNoClassificationFields
	}

	patch := classification.PatchableFields(department, project, category)
	if err := s.gateway.PatchMetadataFields(ctx, snap.DriveID, snap.ItemID, patch); err != nil {
		s.publishFailure("save_metadata", snap.ItemID, err)
		return err
	}

	s.selection.ApplyClassificationSaved(snap.Token, department, project, category)
	s.publishSuccess("save_metadata", snap.ItemID, snap.Detail.Item.Name)
	return nil
}

// AssignSensitivityLabel assigns a label to the selected item. Gated on the
// elevated role; the security facet updates optimistically on success.
func (s *MutationService) AssignSensitivityLabel(ctx context.Context, labelID, labelName string) error {
	if !s.selection.CanEditLabels() {
		return ErrLabelEditingNotPermitted
	}
	snap, ok := s.selection.Snapshot()
	if !ok {
		return errors.New("no selection to label")
	}

	if err := s.gateway.AssignSensitivityLabel(ctx, snap.DriveID, snap.ItemID, labelID, ""); err != nil {
		s.publishFailure("assign_label", snap.ItemID, err)
		return err
	}

	s.selection.ApplySensitivityLabel(snap.Token, labelName)
	s.publishSuccess("assign_label", snap.ItemID, snap.Detail.Item.Name)
	return nil
}

// CopyToPersonalDrive copies the selected item into the user's personal
// root. This is the fallback for selections that resolved NotFound in the
// session's drive context.
func (s *MutationService) CopyToPersonalDrive(ctx context.Context) error {
	snap, ok := s.selection.Snapshot()
	if !ok {
		return errors.New("no selection to copy")
	}

	name := snap.Detail.Item.Name
	if name == "" {
		name = snap.FallbackName
	}
	if err := s.gateway.CopyToPersonalRoot(ctx, snap.DriveID, snap.ItemID, name); err != nil {
		s.publishFailure("copy", snap.ItemID, err)
		return err
	}

	s.publishSuccess("copy", snap.ItemID, name)
	return nil
}

// RestoreVersion restores the selected item to a prior version and reloads
// the full selection detail on success.
func (s *MutationService) RestoreVersion(ctx context.Context, versionID string) error {
	snap, ok := s.selection.Snapshot()
	if !ok {
		return errors.New("no selection to restore")
	}

	if err := s.gateway.RestoreVersion(ctx, snap.DriveID, snap.ItemID, versionID); err != nil {
		s.publishFailure("restore_version", snap.ItemID, err)
		return err
	}

	s.publishSuccess("restore_version", snap.ItemID, snap.Detail.Item.Name)
	if _, err := s.selection.Reload(ctx); err != nil {
		s.logger.Warn("selection reload after restore failed", "item_id", snap.ItemID, "error", err)
	}
	return nil
}

func (s *MutationService) publishSuccess(operation, itemID, itemName string) {
	if s.bus == nil {
		return
	}
	s.bus.PublishMutationCompleted(domainevents.MutationCompletedEvent{
		Operation: operation,
		ItemID:    itemID,
		ItemName:  itemName,
	})
}

func (s *MutationService) publishFailure(operation, itemID string, err error) {
	s.logger.Warn("mutation failed", "operation", operation, "item_id", itemID, "error", err)
	if s.bus == nil {
		return
	}
	s.bus.PublishMutationFailed(domainevents.MutationFailedEvent{
		Operation: operation,
		ItemID:    itemID,
		Error:     err.Error(),
	})
}
