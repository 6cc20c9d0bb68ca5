package common

import "strings"

// MediaFileType distinguishes the two media kinds a post may embed.
type MediaFileType string

const (
	MediaFileTypeImage MediaFileType = "image"
	MediaFileTypeVideo MediaFileType = "video"
)

func (mft MediaFileType) String() string {
	return string(mft)
}

func (mft MediaFileType) IsValid() bool {
	return mft == MediaFileTypeImage || mft == MediaFileTypeVideo
}

// DetectFileType maps a MIME type onto image/video.
func DetectFileType(mimeType string) MediaFileType {
	lowerMimeType := strings.ToLower(mimeType)
	if strings.HasPrefix(lowerMimeType, "video/") {
		return MediaFileTypeVideo
	}
	return MediaFileTypeImage
}

// AllowedUploadTypes lists the MIME types accepted on post and profile
// uploads, matching the upload filter of the original API.
var AllowedUploadTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"video/mp4":  true,
}
