package library

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gmmerrors "github.com/Eidenz/GMM/pkg/errors"
)

// ScannedAsset is one mod folder found on disk. FolderName has the disabled
// marker stripped; DiskName is the name as it currently exists.
type ScannedAsset struct {
	EntitySlug string
	FolderName string
	DiskName   string
	Path       string
	Enabled    bool
}

// Scanner walks the library root: immediate subdirectories are entities,
// their immediate subdirectories are assets.
type Scanner struct {
	root   string
	marker string
}

func NewScanner(root, marker string) *Scanner {
	return &Scanner{root: root, marker: marker}
}

// Scan produces the raw disk tree. A bad entity directory is reported as a
// warning and skipped, and its slug is returned in failed so callers know
// its assets were not observed rather than deleted. Only an unreadable root
// aborts the scan.
func (s *Scanner) Scan() ([]ScannedAsset, []string, []string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, nil, nil, gmmerrors.Wrapf(err, gmmerrors.KindIO, "reading library root %s", s.root)
	}

	var assets []ScannedAsset
	var failed []string
	var warnings []string

	for _, entityDir := range entries {
		if !entityDir.IsDir() || hidden(entityDir.Name()) {
			continue
		}
		slug := entityDir.Name()
		entityPath := filepath.Join(s.root, slug)

		modDirs, err := os.ReadDir(entityPath)
		if err != nil {
			failed = append(failed, slug)
			warnings = append(warnings, fmt.Sprintf("skipping entity %q: %v", slug, err))
			continue
		}

		for _, modDir := range modDirs {
			if !modDir.IsDir() || hidden(modDir.Name()) {
				continue
			}
			diskName := modDir.Name()
			clean, enabled := s.SplitMarker(diskName)
			assets = append(assets, ScannedAsset{
				EntitySlug: slug,
				FolderName: clean,
				DiskName:   diskName,
				Path:       filepath.Join(entityPath, diskName),
				Enabled:    enabled,
			})
		}
	}
	return assets, failed, warnings, nil
}

// SplitMarker strips the disabled marker from a disk name, returning the
// clean folder name and whether the folder is enabled.
func (s *Scanner) SplitMarker(diskName string) (string, bool) {
	if strings.HasPrefix(diskName, s.marker) {
		return strings.TrimPrefix(diskName, s.marker), false
	}
	return diskName, true
}

// DiskName is the inverse of SplitMarker.
func (s *Scanner) DiskName(folderName string, enabled bool) string {
	if enabled {
		return folderName
	}
	return s.marker + folderName
}

// hidden filters dot-files and staging directories out of scans.
func hidden(name string) bool {
	return strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
}
