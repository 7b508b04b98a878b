package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/lmgveerhoek/rescan/core/reconcile"
	"github.com/lmgveerhoek/rescan/core/storage"

	"github.com/minio/minio-go/v7"
)

// ArchiveSink uploads each run summary as a JSON document to object storage,
// keeping a durable trail of runs beside the transient Discord messages.
type ArchiveSink struct {
	client storage.Client
	bucket string
	region string
}

// NewArchiveSink creates an archive sink writing to the configured bucket.
func NewArchiveSink(client storage.Client, cfg storage.Config) *ArchiveSink {
	return &ArchiveSink{
		client: client,
		bucket: cfg.Bucket,
		region: cfg.Region,
	}
}

// Name implements Sink.
func (s *ArchiveSink) Name() string {
	return "archive"
}

// Publish implements Sink. The object name embeds the run's start time and
// ID: runs/20260829T153000Z-<run-id>.json.
func (s *ArchiveSink) Publish(ctx context.Context, summary *reconcile.Summary) error {
	if err := s.ensureBucket(ctx); err != nil {
		return err
	}

	body, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode run summary: %w", err)
	}

	objectName := ObjectName(summary)
	_, err = s.client.PutObject(ctx, s.bucket, objectName,
		bytes.NewReader(body), int64(len(body)),
		minio.PutObjectOptions{ContentType: "application/json"},
	)
	if err != nil {
		return fmt.Errorf("failed to archive run summary %s: %w", objectName, err)
	}

	return nil
}

func (s *ArchiveSink) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check archive bucket: %w", err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: s.region}); err != nil {
		return fmt.Errorf("failed to create archive bucket: %w", err)
	}
	return nil
}

// ObjectName returns the archive object name for a run summary.
func ObjectName(summary *reconcile.Summary) string {
	return fmt.Sprintf("runs/%s-%s.json",
		summary.StartedAt.UTC().Format("20060102T150405Z"),
		summary.RunID,
	)
}
