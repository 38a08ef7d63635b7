package drive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFriendlyType(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		mimeType string
		isFolder bool
		expected string
	}{
		{name: "folder", fileName: "Reports", isFolder: true, expected: "Folder"},
		{name: "word_legacy", fileName: "budget.doc", expected: "Word document"},
		{name: "word_modern", fileName: "budget.docx", expected: "Word document"},
		{name: "excel_legacy", fileName: "numbers.xls", expected: "Excel spreadsheet"},
		{name: "excel_modern", fileName: "numbers.xlsx", expected: "Excel spreadsheet"},
		{name: "powerpoint", fileName: "deck.pptx", expected: "PowerPoint presentation"},
		{name: "pdf", fileName: "contract.pdf", expected: "PDF document"},
		{name: "text", fileName: "notes.txt", expected: "Text file"},
		{name: "jpeg", fileName: "photo.jpeg", expected: "JPEG image"},
		{name: "png", fileName: "logo.png", expected: "PNG image"},
		{name: "uppercase_extension", fileName: "REPORT.DOCX", expected: "Word document"},
		{name: "unknown_extension", fileName: "data.parquet", expected: "PARQUET file"},
		{name: "no_extension_with_mime", fileName: "README", mimeType: "text/plain", expected: "text/plain"},
		{name: "no_extension_no_mime", fileName: "README", expected: "Unknown"},
		{name: "trailing_dot", fileName: "weird.", expected: "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FriendlyType(tt.fileName, tt.mimeType, tt.isFolder))
		})
	}
}
