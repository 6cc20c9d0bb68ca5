package media

import (
	"context"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"studelie/internal/common"
	"studelie/internal/dbmongo"
)

// FileSource is the slice of the GridFS storage the handler needs.
type FileSource interface {
	DownloadFile(ctx context.Context, fileID string) (io.ReadCloser, *dbmongo.MediaFile, error)
}

// Handler streams stored post media and profile pictures back to
// clients. Upload happens through the feed and user endpoints; this
// only serves what is already in the bucket.
type Handler struct {
	storage FileSource
}

func NewHandler(storage FileSource) *Handler {
	return &Handler{storage: storage}
}

// ServeFile handles GET /media/{fileId}.
func (h *Handler) ServeFile(w http.ResponseWriter, r *http.Request) {
	fileID := mux.Vars(r)["fileId"]

	reader, file, err := h.storage.DownloadFile(r.Context(), fileID)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", contentType(file))
	w.Header().Set("Content-Length", strconv.FormatInt(file.Size, 10))
	w.Header().Set("Cache-Control", "public, max-age=86400")

	if _, err := io.Copy(w, reader); err != nil {
		// Headers are already out, so the client just sees a short body.
		log.Printf("media: streaming %s failed: %v", fileID, err)
	}
}

// contentType prefers the MIME type recorded at upload and falls back
// to the filename extension for files stored before it was recorded.
func contentType(file *dbmongo.MediaFile) string {
	if file.MimeType != "" {
		return file.MimeType
	}
	switch strings.ToLower(filepath.Ext(file.Filename)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".mp4":
		return "video/mp4"
	case ".webm":
		return "video/webm"
	default:
		return "application/octet-stream"
	}
}
