package db

import (
	"context"
	"fmt"
	"strings"

	"catalog-services/types"

	"github.com/georgysavva/scany/pgxscan"
	"github.com/gofrs/uuid"
	"github.com/gosimple/slug"
	"github.com/ninja-software/terror/v2"
)

// BlobStore is the postgres blob store. Files are addressed by their
// path (namespace/name-uuid.ext), never by a surrogate ID.
type BlobStore struct {
	Conn Conn
}

// Insert stores a new blob under the given namespace and fills in the
// assigned file path.
func (s *BlobStore) Insert(ctx context.Context, blob *types.Blob, namespace string) error {
	uid, err := uuid.NewV4()
	if err != nil {
		return terror.Error(err, "generate file path")
	}
	base := slug.Make(strings.TrimSuffix(blob.FileName, "."+blob.Extension))
	if base == "" {
		base = "file"
	}
	blob.FilePath = fmt.Sprintf("%s/%s-%s.%s", namespace, base, uid.String(), blob.Extension)

	q := `--sql
		INSERT INTO blobs (file_path, file_name, mime_type, file_size_bytes, extension, file, hash, public)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING file_path, file_name, mime_type, file_size_bytes, extension, file, hash, public, created_at`
	err = pgxscan.Get(
		ctx,
		s.Conn,
		blob,
		q,
		blob.FilePath,
		blob.FileName,
		blob.MimeType,
		blob.FileSizeBytes,
		blob.Extension,
		blob.File,
		blob.Hash,
		blob.Public,
	)
	if err != nil {
		return terror.Error(err)
	}
	return nil
}

// Get returns a blob by file path
func (s *BlobStore) Get(ctx context.Context, filePath string) (*types.Blob, error) {
	blob := &types.Blob{}
	q := `--sql
		SELECT file_path, file_name, mime_type, file_size_bytes, extension, file, hash, public, created_at
		FROM blobs
		WHERE file_path = $1`
	err := pgxscan.Get(ctx, s.Conn, blob, q, filePath)
	if err != nil {
		return nil, terror.Error(err)
	}
	return blob, nil
}

// Delete removes a blob by file path
func (s *BlobStore) Delete(ctx context.Context, filePath string) error {
	q := `--sql
		DELETE FROM blobs
		WHERE file_path = $1`
	_, err := s.Conn.Exec(ctx, q, filePath)
	if err != nil {
		return terror.Error(err)
	}
	return nil
}
