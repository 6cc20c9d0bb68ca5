package media

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studelie/internal/common"
	"studelie/internal/dbmongo"
)

type closeTrackingReader struct {
	io.Reader
	closed bool
}

func (r *closeTrackingReader) Close() error {
	r.closed = true
	return nil
}

type stubFileSource struct {
	file    *dbmongo.MediaFile
	content string
	err     error
	stream  *closeTrackingReader
}

func (s *stubFileSource) DownloadFile(_ context.Context, _ string) (io.ReadCloser, *dbmongo.MediaFile, error) {
	if s.err != nil {
		return nil, nil, s.err
	}
	s.stream = &closeTrackingReader{Reader: strings.NewReader(s.content)}
	return s.stream, s.file, nil
}

func serveMedia(source FileSource, fileID string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/media/{fileId}", NewHandler(source).ServeFile).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/media/"+fileID, nil))
	return rec
}

func TestServeFile_StreamsStoredContent(t *testing.T) {
	source := &stubFileSource{
		file: &dbmongo.MediaFile{
			ID:       "abc123",
			Filename: "photo.jpg",
			Size:     9,
			MimeType: "image/jpeg",
		},
		content: "jpeg-body",
	}

	rec := serveMedia(source, "abc123")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/jpeg", rec.Header().Get("Content-Type"))
	assert.Equal(t, "9", rec.Header().Get("Content-Length"))
	assert.Equal(t, "jpeg-body", rec.Body.String())
	assert.True(t, source.stream.closed, "download stream must be closed after serving")
}

func TestServeFile_FallsBackToExtension(t *testing.T) {
	source := &stubFileSource{
		file:    &dbmongo.MediaFile{ID: "abc123", Filename: "clip.mp4", Size: 4},
		content: "0000",
	}

	rec := serveMedia(source, "abc123")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "video/mp4", rec.Header().Get("Content-Type"))
}

func TestServeFile_MissingFile(t *testing.T) {
	source := &stubFileSource{err: common.NewNotFoundError("file not found")}

	rec := serveMedia(source, "nope")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
