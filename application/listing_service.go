package application

import (
	"context"
	"fmt"

	"dochub/domain/contracts"
	"dochub/domain/drive"
	"dochub/logging"
)

// ListingService fetches raw listings for each browse source and resolves
// the session's default drive context on demand. Projection of fetched items
// is the session's concern; this service only talks to the gateway.
type ListingService struct {
	gateway  contracts.DriveGateway
	logger   *logging.Logger
	pageSize int
}

// NewListingService creates a listing service with gateway dependency injection.
func NewListingService(gateway contracts.DriveGateway, pageSize int) *ListingService {
	return &ListingService{
		gateway:  gateway,
		logger:   logging.Default().WithComponent("listing_service"),
		pageSize: pageSize,
	}
}

// DefaultDrive resolves the session's default drive. The gateway caches both
// identifiers, so repeated calls are cheap.
func (s *ListingService) DefaultDrive(ctx context.Context) (string, error) {
	siteID, err := s.gateway.ResolveSite(ctx)
	if err != nil {
		return "", err
	}
	return s.gateway.ResolveDrive(ctx, siteID)
}

// FetchSource fetches the raw items for a non-delta source described by the
// navigation state.
func (s *ListingService) FetchSource(ctx context.Context, nav drive.NavigationState) ([]drive.ItemRecord, error) {
	switch nav.Source {
	case drive.SourceRecent:
		return s.gateway.Recent(ctx)
	case drive.SourceShared:
		return s.gateway.SharedWithMe(ctx)
	case drive.SourceSearch:
		return s.gateway.Search(ctx, nav.Query)
	case drive.SourceFolder:
		folder, ok := nav.CurrentFolder()
		if !ok {
			return nil, fmt.Errorf("folder source with empty breadcrumb trail")
		}
		driveID, err := s.DefaultDrive(ctx)
		if err != nil {
			return nil, err
		}
		return s.gateway.ListChildren(ctx, driveID, folder.FolderID)
	default:
		return nil, fmt.Errorf("source %q is delta-paged, use FetchDeltaPage", nav.Source)
	}
}

// FetchDeltaPage fetches one page of the full listing's delta enumeration.
func (s *ListingService) FetchDeltaPage(ctx context.Context, cursor string) (drive.DeltaPage, error) {
	driveID, err := s.DefaultDrive(ctx)
	if err != nil {
		return drive.DeltaPage{}, err
	}
	return s.gateway.DeltaPage(ctx, driveID, cursor, s.pageSize)
}

// FolderTiles lists the folders at the drive root for the folder navigation
// panel.
func (s *ListingService) FolderTiles(ctx context.Context) ([]drive.ItemRecord, error) {
	driveID, err := s.DefaultDrive(ctx)
	if err != nil {
		return nil, err
	}
	return s.gateway.ListFolders(ctx, driveID)
}
