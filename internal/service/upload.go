package service

import (
	"bytes"
	"context"
	"path/filepath"

	"github.com/google/uuid"

	"notepilot/internal/extractor"
	"notepilot/internal/logging"
	"notepilot/internal/model"
	"notepilot/internal/storage"
)

// UploadService turns an uploaded file into cleaned text.
type UploadService interface {
	// Analyze extracts raw text, archives the source when configured and
	// normalizes the text. Unsupported types fail with
	// *extractor.UnsupportedMediaTypeError before anything else happens.
	Analyze(ctx context.Context, data []byte, filename, contentType string) (*model.UploadResult, error)
}

type uploadService struct {
	extractor extractor.Extractor
	analysis  AnalysisService
	archive   storage.Storage
	log       *logging.Logger
	metrics   *Metrics
}

// NewUploadService constructs an UploadService. archive may be nil.
func NewUploadService(ext extractor.Extractor, analysis AnalysisService, archive storage.Storage, log *logging.Logger, metrics *Metrics) UploadService {
	if log == nil {
		log = logging.Nop()
	}
	return &uploadService{extractor: ext, analysis: analysis, archive: archive, log: log, metrics: metrics}
}

func (s *uploadService) Analyze(ctx context.Context, data []byte, filename, contentType string) (*model.UploadResult, error) {
	res, err := s.extractor.Extract(ctx, data, filename, contentType)
	if err != nil {
		return nil, err
	}
	s.metrics.observeExtraction(res)

	s.archiveSource(ctx, data, filename, contentType)

	cleaned, err := s.analysis.Normalize(ctx, res.Text)
	if err != nil {
		return nil, err
	}

	return &model.UploadResult{
		Status:        model.UploadStatusSuccess,
		Filename:      filename,
		CleanedText:   cleaned,
		AnalysisReady: res.Summary,
	}, nil
}

// archiveSource stores the original bytes under uploads/<uuid><ext>. Failures are only logged.
func (s *uploadService) archiveSource(ctx context.Context, data []byte, filename, contentType string) {
	if s.archive == nil {
		return
	}
	key := filepath.ToSlash(filepath.Join("uploads", uuid.New().String()+filepath.Ext(filename)))
	_, err := s.archive.Put(ctx, key, bytes.NewReader(data), storage.PutObjectOptions{
		Size:        int64(len(data)),
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": filename,
		},
	})
	if err != nil {
		s.log.Error("upload_archive_failed", err, map[string]any{"filename": filename, "key": key})
		return
	}
	s.log.Info("upload_archived", map[string]any{"filename": filename, "key": key})
}
