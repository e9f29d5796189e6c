package models

import (
	"path"

	"github.com/barberscore/registry/pkg/config"
)

// MissingImageURL is served whenever a record has no image set
const MissingImageURL = "https://res.cloudinary.com/barberscore/image/upload/v1554830585/missing_image.jpg"

// ImageUploadPath returns the storage path for a record's image:
// legacy/<type>/<field>/<record-id>
func ImageUploadPath(recordType, field, id string) string {
	return path.Join("legacy", recordType, field, id)
}

// imageURL resolves a stored image name to an external URL, falling back to
// the fixed placeholder when no image is set.
func imageURL(name string) string {
	if name == "" {
		return MissingImageURL
	}
	base := "https://res.cloudinary.com/barberscore/image/upload"
	if config.AppConfig != nil {
		base = config.AppConfig.Media.BaseURL
	}
	return base + "/" + name
}
