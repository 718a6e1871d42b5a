package storage

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/KOUSHAMBHA15IT/emerald-shadow-notes/pkg/utils"
)

const backupFolder = "notes/"

// Backup writes the slots named by keys into a timestamped zip archive in
// dir and returns its path. Missing slots are skipped. Any backend works
// since the blobs are read through Slots. A failed backup leaves no archive
// behind.
func Backup(ctx context.Context, slots Slots, keys []string, dir string, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	zipPath := filepath.Join(dir, "backup-"+now.Format("20060102-150405")+".zip")

	zipFile, err := os.Create(zipPath)
	if err != nil {
		return "", err
	}

	written, err := writeArchive(ctx, zipFile, slots, keys, now)
	if closeErr := zipFile.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		if rmErr := os.Remove(zipPath); rmErr != nil {
			log.WithField("path", zipPath).Warnf("Failed to remove incomplete backup: %v", rmErr)
		}
		return "", err
	}

	log.WithFields(log.Fields{"path": zipPath, "slots": written}).Info("Backup created")
	return zipPath, nil
}

func writeArchive(ctx context.Context, out io.Writer, slots Slots, keys []string, now time.Time) (int, error) {
	zipWriter := zip.NewWriter(out)
	written := 0
	for _, key := range keys {
		data, ok, err := slots.Get(ctx, key)
		if err != nil {
			zipWriter.Close()
			return 0, fmt.Errorf("read slot %q: %w", key, err)
		}
		if !ok {
			continue
		}

		w, err := zipWriter.CreateHeader(&zip.FileHeader{
			Name:     backupFolder + utils.SlotFilename(key),
			Method:   zip.Deflate,
			Modified: now,
		})
		if err != nil {
			zipWriter.Close()
			return 0, err
		}
		if _, err := w.Write(data); err != nil {
			zipWriter.Close()
			return 0, err
		}
		written++
	}
	return written, zipWriter.Close()
}
