package drive

import (
	"path/filepath"
	"strings"
)

// friendlyTypes maps a lowercase file extension to a display label.
var friendlyTypes = map[string]string{
	"doc":  "Word document",
	"docx": "Word document",
	"xls":  "Excel spreadsheet",
	"xlsx": "Excel spreadsheet",
	"ppt":  "PowerPoint presentation",
	"pptx": "PowerPoint presentation",
	"pdf":  "PDF document",
	"txt":  "Text file",
	"jpg":  "JPEG image",
	"jpeg": "JPEG image",
	"png":  "PNG image",
}

// FriendlyType derives a human-readable type label from an item's name and
// MIME type. Unknown extensions render as "EXT file"; items without an
// extension fall back to the raw MIME type or "Unknown".
func FriendlyType(name, mimeType string, isFolder bool) string {
	if isFolder {
		return "Folder"
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if ext == "" {
		if mimeType != "" {
			return mimeType
		}
		return "Unknown"
	}

	if label, ok := friendlyTypes[ext]; ok {
		return label
	}
	return strings.ToUpper(ext) + " file"
}
