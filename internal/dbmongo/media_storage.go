package dbmongo

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"

	"studelie/internal/common"
)

// MediaStorage stores uploaded post media and profile pictures in the
// GridFS bucket. Files are served back through the media HTTP server.
type MediaStorage struct {
	gridFS *gridfs.Bucket
}

func NewMediaStorage(mongoClient *MongoClient) *MediaStorage {
	return &MediaStorage{
		gridFS: mongoClient.GridFS,
	}
}

type MediaFile struct {
	ID         string               `json:"id"`          // GridFS ObjectID
	Filename   string               `json:"filename"`    // Stored filename (uuid-prefixed)
	Size       int64                `json:"size"`        // File size in bytes
	FileType   common.MediaFileType `json:"file_type"`   // image or video
	MimeType   string               `json:"mime_type"`   // Content type recorded at upload
	UploadedBy string               `json:"uploaded_by"` // User ID who uploaded
	UploadedAt time.Time            `json:"uploaded_at"` // Upload timestamp
}

// UploadFile streams content into GridFS. The stored filename is
// prefixed with a UUID so two uploads with the same name never collide.
func (ms *MediaStorage) UploadFile(ctx context.Context, filename, mimeType, uploaderID string, content io.Reader) (*MediaFile, error) {
	fileType := common.DetectFileType(mimeType)
	storedName := uuid.NewString() + "-" + filename

	metadata := bson.M{
		"file_type":   fileType.String(),
		"mime_type":   mimeType,
		"uploaded_by": uploaderID,
		"uploaded_at": time.Now(),
	}

	opts := options.GridFSUpload().SetMetadata(metadata)
	stream, err := ms.gridFS.OpenUploadStream(storedName, opts)
	if err != nil {
		return nil, fmt.Errorf("upload failed: %w", err)
	}
	defer stream.Close()

	size, err := io.Copy(stream, content)
	if err != nil {
		return nil, fmt.Errorf("file copy failed: %w", err)
	}

	return &MediaFile{
		ID:         stream.FileID.(primitive.ObjectID).Hex(),
		Filename:   storedName,
		Size:       size,
		FileType:   fileType,
		MimeType:   mimeType,
		UploadedBy: uploaderID,
		UploadedAt: time.Now(),
	}, nil
}

// DownloadFile opens a download stream for the given file id. The
// caller owns the stream and must close it.
func (ms *MediaStorage) DownloadFile(ctx context.Context, fileID string) (io.ReadCloser, *MediaFile, error) {
	objectID, err := primitive.ObjectIDFromHex(fileID)
	if err != nil {
		return nil, nil, common.NewNotFoundError("invalid file id")
	}

	stream, err := ms.gridFS.OpenDownloadStream(objectID)
	if err != nil {
		return nil, nil, common.NewNotFoundError("file not found")
	}

	fileInfo := stream.GetFile()
	var metadata bson.M
	if fileInfo.Metadata != nil {
		bson.Unmarshal(fileInfo.Metadata, &metadata)
	}

	mediaFile := &MediaFile{
		ID:         fileID,
		Filename:   fileInfo.Name,
		Size:       fileInfo.Length,
		FileType:   common.MediaFileType(getStringFromMap(metadata, "file_type")),
		MimeType:   getStringFromMap(metadata, "mime_type"),
		UploadedBy: getStringFromMap(metadata, "uploaded_by"),
		UploadedAt: fileInfo.UploadDate,
	}

	return stream, mediaFile, nil
}

func (ms *MediaStorage) DeleteFile(ctx context.Context, fileID string) error {
	objectID, err := primitive.ObjectIDFromHex(fileID)
	if err != nil {
		return common.NewNotFoundError("invalid file id")
	}
	if err := ms.gridFS.Delete(objectID); err != nil {
		return common.NewNotFoundError("file not found")
	}
	return nil
}

func getStringFromMap(m bson.M, key string) string {
	if m == nil {
		return ""
	}
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}
