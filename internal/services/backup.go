package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/AnshRaj112/goalledger-backend/internal/store"
)

// BackupRunTimeout bounds one scheduled backup.
const BackupRunTimeout = time.Minute

// BackupUploader copies a finished backup somewhere off the host.
type BackupUploader interface {
	UploadBackup(ctx context.Context, name string, data []byte) (string, error)
}

// BackupResult describes one written backup.
type BackupResult struct {
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	URL       string    `json:"url,omitempty"`
	Size      int       `json:"size"`
	CreatedAt time.Time `json:"createdAt"`
}

// BackupService writes sanitized snapshots of the ledger document.
type BackupService struct {
	store    *store.Store
	dir      string
	uploader BackupUploader
	Now      func() time.Time
}

// NewBackupService writes into dir. uploader may be nil.
func NewBackupService(s *store.Store, dir string, uploader BackupUploader) *BackupService {
	return &BackupService{store: s, dir: dir, uploader: uploader, Now: time.Now}
}

// Run snapshots the document, strips credentials and writes it to the backup
// directory. A failed upload is logged and leaves the local copy in place.
func (b *BackupService) Run(ctx context.Context) (BackupResult, error) {
	doc, err := b.store.Snapshot(ctx)
	if err != nil {
		return BackupResult{}, err
	}
	data, err := json.MarshalIndent(doc.Sanitized(), "", "  ")
	if err != nil {
		return BackupResult{}, fmt.Errorf("encode backup: %w", err)
	}

	now := b.Now().UTC()
	name := fmt.Sprintf("ledger_export_%s_%s", now.Format("20060102T150405Z"), uuid.NewString()[:8])
	if err := os.MkdirAll(b.dir, 0o755); err != nil {
		return BackupResult{}, fmt.Errorf("create backup dir: %w", err)
	}
	path := filepath.Join(b.dir, name+".json")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return BackupResult{}, fmt.Errorf("write backup: %w", err)
	}

	result := BackupResult{Name: name, Path: path, Size: len(data), CreatedAt: now}
	if b.uploader != nil {
		url, err := b.uploader.UploadBackup(ctx, name, data)
		if err != nil {
			log.Printf("⚠️  backup %s kept locally, upload failed: %v", name, err)
		} else {
			result.URL = url
		}
	}
	return result, nil
}

// Schedule runs Run on the cron spec until the returned scheduler is stopped.
func (b *BackupService) Schedule(spec string) (*cron.Cron, error) {
	c := cron.New(cron.WithChain(cron.Recover(cron.PrintfLogger(log.Default()))))
	if _, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), BackupRunTimeout)
		defer cancel()
		res, err := b.Run(ctx)
		if err != nil {
			log.Printf("⚠️  scheduled backup failed: %v", err)
			return
		}
		log.Printf("✅ Scheduled backup written: %s (%d bytes)", res.Path, res.Size)
	}); err != nil {
		return nil, fmt.Errorf("invalid backup schedule %q: %w", spec, err)
	}
	c.Start()
	return c, nil
}
