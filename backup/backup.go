// Package backup copies the data directory aside once a day and prunes old copies.
package backup

import (
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/juju/clock"
	"github.com/juju/errors"
)

// Scheduler runs daily backups of SrcDir into timestamped folders under BackupDir.
type Scheduler struct {
	SrcDir    string
	BackupDir string
	Retention time.Duration
	Hour      int
	Minute    int
	Clock     clock.Clock
	// Offsite, when set, also receives every backup.
	Offsite Offsite
}

// NextRun returns the first hour:min strictly after now.
func NextRun(now time.Time, hour, min int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, min, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// Run backs up at the scheduled time every day until ctx is done.
func (s *Scheduler) Run(ctx context.Context) {
	for {
		now := s.Clock.Now()
		next := NextRun(now, s.Hour, s.Minute)
		log.Printf("⏳ Next data backup scheduled at: %s", next.Format("2006-01-02 15:04:05"))

		select {
		case <-ctx.Done():
			return
		case <-s.Clock.After(next.Sub(now)):
		}

		if dest, err := s.RunOnce(); err != nil {
			log.Printf("❌ Failed to back up data: %v", err)
		} else {
			log.Printf("✅ Data backed up to %s", dest)
			s.ShipOffsite(ctx, dest)
		}
		s.Cleanup()
	}
}

// RunOnce copies SrcDir into a new timestamped folder and returns its path.
func (s *Scheduler) RunOnce() (string, error) {
	timestamp := s.Clock.Now().Format("2006-01-02_15-04-05")
	destDir := filepath.Join(s.BackupDir, timestamp)

	if err := copyDir(s.SrcDir, destDir); err != nil {
		return "", errors.Annotatef(err, "copying %s to %s", s.SrcDir, destDir)
	}
	return destDir, nil
}

// ShipOffsite uploads dest when an offsite target is configured. Failures are
// logged only; the local copy is already in place.
func (s *Scheduler) ShipOffsite(ctx context.Context, dest string) {
	if s.Offsite == nil {
		return
	}
	if err := s.Offsite.Upload(ctx, dest); err != nil {
		log.Printf("❌ Offsite upload of %s failed: %v", dest, err)
		return
	}
	log.Printf("✅ Backup %s uploaded offsite", filepath.Base(dest))
}

// Cleanup prunes timestamped folders whose mtime is past Retention. Stray files
// in BackupDir are left alone.
func (s *Scheduler) Cleanup() {
	entries, err := os.ReadDir(s.BackupDir)
	if err != nil {
		log.Printf("❌ Failed to read backup directory: %v", err)
		return
	}

	cutoff := s.Clock.Now().Add(-s.Retention)

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			continue
		}
		old := filepath.Join(s.BackupDir, entry.Name())
		if err := os.RemoveAll(old); err != nil {
			log.Printf("❌ Failed to remove old backup %s: %v", old, err)
			continue
		}
		log.Printf("🗑️ Removed old backup: %s", old)
	}
}

// copyDir mirrors src into dest. In-flight store writes (*.tmp) are skipped;
// they are either renamed into place or removed before anyone reads them.
func copyDir(src, dest string) error {
	entries, err := os.ReadDir(src)
	if err != nil {
		return errors.Trace(err)
	}
	if err := os.MkdirAll(dest, 0755); err != nil {
		return errors.Trace(err)
	}
	for _, entry := range entries {
		if isTempFile(entry.Name()) {
			continue
		}
		from := filepath.Join(src, entry.Name())
		to := filepath.Join(dest, entry.Name())

		if entry.IsDir() {
			err = copyDir(from, to)
		} else {
			err = copyFile(from, to)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func isTempFile(name string) bool {
	return strings.HasSuffix(name, ".tmp")
}

// copyFile writes src to dest and fsyncs it so a backup survives a crash.
func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return errors.Annotatef(err, "opening %s", src)
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return errors.Annotatef(err, "creating %s", dest)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return errors.Annotatef(err, "copying %s", src)
	}
	return out.Sync()
}
