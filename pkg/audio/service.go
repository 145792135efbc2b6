package audio

import (
	"context"
	"database/sql"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/minbarapp/minbar/pkg/errcodes"
	"github.com/minbarapp/minbar/pkg/models"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/uptrace/bun"
)

type ListUploadsOptions struct {
	Limit  int
	Offset int
}

// Service is the upload store. Files land under uploadDir with fully
// deterministic names; re-uploading the same (surah, reciter) pair overwrites
// the previous file and replaces its record.
type Service struct {
	db        *bun.DB
	uploadDir string
	log       logger.Logger
}

func NewService(db *bun.DB, uploadDir string) *Service {
	return &Service{
		db:        db,
		uploadDir: uploadDir,
		log:       logger.New(),
	}
}

// Store validates and persists an uploaded recitation. The declared or
// sniffed media type must be an audio type and the surah must be in range;
// both are checked before any filesystem side effect.
func (svc *Service) Store(ctx context.Context, file *multipart.FileHeader, chapter int, reciterID string) (*models.Upload, error) {
	if err := ValidateChapter(chapter); err != nil {
		return nil, err
	}

	src, err := file.Open()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer src.Close()

	if !isAudio(file, src) {
		return nil, errcodes.ValidationError("Only audio files can be uploaded")
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return nil, errors.WithStack(err)
	}

	// Directory creation is idempotent and best-effort: a failure here is
	// logged but the write below is still attempted.
	if err := os.MkdirAll(svc.uploadDir, 0755); err != nil {
		svc.log.Err(err).Warn("upload directory creation failed", logger.Data{"dir": svc.uploadDir})
	}

	filename := UploadFilename(reciterID, chapter)
	targetPath := filepath.Join(svc.uploadDir, filename)

	dst, err := os.Create(targetPath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create upload file: %s", targetPath)
	}
	defer dst.Close()

	size, err := io.Copy(dst, src)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to write upload file: %s", targetPath)
	}

	upload := &models.Upload{
		CreatedAt:   time.Now(),
		Filename:    filename,
		StoragePath: LocalUploadPath(reciterID, chapter),
		Chapter:     chapter,
		ReciterID:   reciterID,
		SizeBytes:   size,
	}

	_, err = svc.db.NewInsert().
		Model(upload).
		On("CONFLICT (chapter, reciter_id) DO UPDATE").
		Set("created_at = EXCLUDED.created_at").
		Set("filename = EXCLUDED.filename").
		Set("storage_path = EXCLUDED.storage_path").
		Set("size_bytes = EXCLUDED.size_bytes").
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return upload, nil
}

// Retrieve fetches the upload record for a (surah, reciter) pair.
func (svc *Service) Retrieve(ctx context.Context, chapter int, reciterID string) (*models.Upload, error) {
	upload := &models.Upload{}
	err := svc.db.NewSelect().
		Model(upload).
		Where("up.chapter = ?", chapter).
		Where("up.reciter_id = ?", reciterID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Upload")
		}
		return nil, errors.WithStack(err)
	}
	return upload, nil
}

// List returns upload records ordered by surah then reciter, with the total.
func (svc *Service) List(ctx context.Context, opts ListUploadsOptions) ([]*models.Upload, int, error) {
	uploads := []*models.Upload{}

	q := svc.db.NewSelect().
		Model(&uploads).
		Order("up.chapter ASC").
		Order("up.reciter_id ASC")

	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		q = q.Offset(opts.Offset)
	}

	total, err := q.ScanAndCount(ctx)
	if err != nil {
		return nil, 0, errors.WithStack(err)
	}

	return uploads, total, nil
}

// isAudio accepts the payload when either the declared content type or the
// sniffed content is an audio type.
func isAudio(file *multipart.FileHeader, src multipart.File) bool {
	if strings.HasPrefix(file.Header.Get("Content-Type"), "audio/") {
		return true
	}

	mtype, err := mimetype.DetectReader(src)
	if err != nil {
		return false
	}
	return strings.HasPrefix(mtype.String(), "audio/")
}
