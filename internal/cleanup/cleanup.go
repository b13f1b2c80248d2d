package cleanup

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"safinaland-api/internal/database"
)

// Service deletes upload files that no gallery row references anymore.
// Replaced images are normally removed right away by the background remover;
// the sweep catches anything that slipped through (crashes, full queues,
// files written by a request that never committed).
type Service struct {
	db  *database.GormDB
	dir string
}

// NewService creates a cleanup service over the given upload directory.
func NewService(db *database.GormDB, uploadDir string) *Service {
	return &Service{db: db, dir: uploadDir}
}

// CleanupConfig holds configuration for a sweep.
type CleanupConfig struct {
	Retention    time.Duration // Minimum file age before an orphan may be deleted
	MaxDeletions int           // Safety limit per run
	DryRun       bool          // If true, only log what would be deleted
}

// DefaultCleanupConfig returns default configuration
func DefaultCleanupConfig() CleanupConfig {
	return CleanupConfig{
		Retention:    24 * time.Hour,
		MaxDeletions: 1000,
		DryRun:       false,
	}
}

// CleanupResult holds the result of a sweep.
type CleanupResult struct {
	ScannedCount int       `json:"scanned_count"` // Files examined
	OrphanCount  int       `json:"orphan_count"`  // Files with no gallery reference
	DeletedCount int       `json:"deleted_count"` // Files actually deleted
	SkippedCount int       `json:"skipped_count"` // Orphans younger than retention
	ErrorCount   int       `json:"error_count"`
	DryRun       bool      `json:"dry_run"`
	ExecutedAt   time.Time `json:"executed_at"`
	DeletedFiles []string  `json:"deleted_files"`
	Errors       []string  `json:"errors,omitempty"`
}

// Run sweeps the upload directory once.
func (s *Service) Run(config CleanupConfig) (*CleanupResult, error) {
	result := &CleanupResult{
		DryRun:     config.DryRun,
		ExecutedAt: time.Now(),
	}

	referenced, err := s.referencedFiles()
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("Cleanup: Upload dir %s does not exist, nothing to do", s.dir)
			return result, nil
		}
		return nil, fmt.Errorf("read upload dir: %w", err)
	}

	cutoff := time.Now().Add(-config.Retention)

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		result.ScannedCount++

		name := entry.Name()
		if referenced[name] {
			continue
		}
		result.OrphanCount++

		info, err := entry.Info()
		if err != nil {
			result.ErrorCount++
			result.Errors = append(result.Errors, fmt.Sprintf("stat %s: %v", name, err))
			continue
		}
		// A fresh orphan may belong to a request still in flight.
		if info.ModTime().After(cutoff) {
			result.SkippedCount++
			continue
		}

		if result.DeletedCount >= config.MaxDeletions {
			log.Printf("Cleanup: Deletion limit %d reached, stopping", config.MaxDeletions)
			break
		}

		if config.DryRun {
			log.Printf("Cleanup: [DRY-RUN] Would delete %s (modified %s)", name, info.ModTime().Format("2006-01-02"))
			result.DeletedFiles = append(result.DeletedFiles, name)
			result.DeletedCount++
			continue
		}

		if err := os.Remove(filepath.Join(s.dir, name)); err != nil {
			result.ErrorCount++
			result.Errors = append(result.Errors, fmt.Sprintf("remove %s: %v", name, err))
			continue
		}
		log.Printf("Cleanup: Deleted orphaned file %s", name)
		result.DeletedFiles = append(result.DeletedFiles, name)
		result.DeletedCount++
	}

	log.Printf("Cleanup: Completed: scanned=%d orphans=%d deleted=%d skipped=%d errors=%d (dry-run: %v)",
		result.ScannedCount, result.OrphanCount, result.DeletedCount, result.SkippedCount, result.ErrorCount, config.DryRun)

	return result, nil
}

// referencedFiles builds the set of file basenames the gallery table still
// points at.
func (s *Service) referencedFiles() (map[string]bool, error) {
	urls, err := s.db.AllGalleryImageURLs()
	if err != nil {
		return nil, fmt.Errorf("load gallery urls: %w", err)
	}
	referenced := make(map[string]bool, len(urls))
	for _, u := range urls {
		referenced[filepath.Base(u)] = true
	}
	return referenced, nil
}
