// Package helpers provides shared builders and canned gateway expectations
// for tests.
package helpers

import (
	"time"

	"github.com/stretchr/testify/mock"

	"dochub/domain/drive"
	"dochub/test/mocks"
)

// Fixed identifiers used across tests.
const (
	TestSiteID  = "site-1"
	TestDriveID = "drive-1"
)

// BaseTime is the reference timestamp test items are offset from.
var BaseTime = time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

// GatewayFixture bundles a gateway mock with expectation helpers.
type GatewayFixture struct {
	Gateway *mocks.MockDriveGateway
}

// NewGatewayFixture creates a gateway fixture.
func NewGatewayFixture() *GatewayFixture {
	return &GatewayFixture{Gateway: &mocks.MockDriveGateway{}}
}

// ExpectResolve cans successful site and drive resolution.
func (f *GatewayFixture) ExpectResolve() {
	f.Gateway.On("ResolveSite", mock.Anything).Return(TestSiteID, nil)
	f.Gateway.On("ResolveDrive", mock.Anything, TestSiteID).Return(TestDriveID, nil)
}

// ExpectRecent cans the recent-items listing.
func (f *GatewayFixture) ExpectRecent(items []drive.ItemRecord) {
	f.Gateway.On("Recent", mock.Anything).Return(items, nil)
}

// ExpectShared cans the shared-with-me listing.
func (f *GatewayFixture) ExpectShared(items []drive.ItemRecord) {
	f.Gateway.On("SharedWithMe", mock.Anything).Return(items, nil)
}

// ExpectChildren cans a folder's children listing.
func (f *GatewayFixture) ExpectChildren(folderID string, items []drive.ItemRecord) {
	f.Gateway.On("ListChildren", mock.Anything, TestDriveID, folderID).Return(items, nil)
}

// ExpectDeltaPage cans one delta page for the given cursor.
func (f *GatewayFixture) ExpectDeltaPage(cursor string, page drive.DeltaPage) {
	f.Gateway.On("DeltaPage", mock.Anything, TestDriveID, cursor, mock.Anything).Return(page, nil)
}

// ExpectDetail cans the batched metadata fetch for an item.
func (f *GatewayFixture) ExpectDetail(itemID string, detail drive.ItemDetail) {
	f.Gateway.On("GetItemWithFields", mock.Anything, TestDriveID, itemID).Return(detail, nil)
}

// TestData provides builders for domain values.
type TestData struct{}

// Item builds a file item modified minutesAgo before BaseTime.
func (TestData) Item(id, name string, minutesAgo int) drive.ItemRecord {
	return drive.ItemRecord{
		ID:             id,
		Name:           name,
		LastModifiedAt: BaseTime.Add(-time.Duration(minutesAgo) * time.Minute),
		ModifiedBy:     "Avery Chen",
		ParentDriveID:  TestDriveID,
		SizeBytes:      2048,
	}
}

// Folder builds a folder item.
func (TestData) Folder(id, name string) drive.ItemRecord {
	return drive.ItemRecord{
		ID:             id,
		Name:           name,
		IsFolder:       true,
		LastModifiedAt: BaseTime,
		ParentDriveID:  TestDriveID,
	}
}

// Detail builds an item detail with the given classification fields.
func (TestData) Detail(id, name, mimeType string, fields map[string]string) drive.ItemDetail {
	if fields == nil {
		fields = map[string]string{}
	}
	return drive.ItemDetail{
		Item: drive.ItemRecord{
			ID:             id,
			Name:           name,
			LastModifiedAt: BaseTime,
			ModifiedBy:     "Avery Chen",
			ParentDriveID:  TestDriveID,
			SizeBytes:      4096,
		},
		MimeType: mimeType,
		Fields:   fields,
	}
}

// Data is the shared builder instance.
var Data TestData
