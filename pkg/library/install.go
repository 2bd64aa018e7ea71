package library

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Eidenz/GMM/pkg/archive"
	"github.com/Eidenz/GMM/pkg/db/models"
	gmmerrors "github.com/Eidenz/GMM/pkg/errors"
)

// InstallOptions control archive ingestion. FolderName is optional; when
// empty a name is derived from the archive file and made unique.
type InstallOptions struct {
	EntitySlug  string
	FolderName  string
	ArchivePath string
}

// Install extracts an archive into the library under the given entity. The
// archive is unpacked into a hidden staging directory next to the target,
// validated, then committed with a single rename. No partial mod folder is
// ever visible to a scan.
func (l *Library) Install(ctx context.Context, opts InstallOptions) (*models.Asset, error) {
	if opts.EntitySlug == "" {
		return nil, gmmerrors.New(gmmerrors.KindConfig, "install requires an entity slug")
	}

	var asset *models.Asset
	err := l.withEntityLock(opts.EntitySlug, func() error {
		if err := l.ensureEntity(ctx, opts.EntitySlug); err != nil {
			return err
		}
		entityDir := l.entityDir(opts.EntitySlug)
		if err := os.MkdirAll(entityDir, 0o755); err != nil {
			return gmmerrors.Wrapf(err, gmmerrors.KindIO, "creating entity directory %s", entityDir)
		}

		staging, err := os.MkdirTemp(entityDir, ".staging-*")
		if err != nil {
			return gmmerrors.Wrap(err, gmmerrors.KindIO, "creating staging directory")
		}
		defer os.RemoveAll(staging)

		if err := archive.Extract(ctx, opts.ArchivePath, staging); err != nil {
			return err
		}
		contentRoot := collapseRoot(staging)

		folderName := opts.FolderName
		if folderName == "" {
			folderName = l.uniqueFolderName(entityDir, deriveFolderName(opts.ArchivePath, contentRoot, staging))
		}
		clean, _ := l.scanner.SplitMarker(folderName)
		if clean != folderName {
			return gmmerrors.Newf(gmmerrors.KindConfig,
				"invalid folder name %q: the disabled marker is reserved", folderName)
		}

		target := filepath.Join(entityDir, folderName)
		if dirExists(target) || dirExists(filepath.Join(entityDir, l.scanner.DiskName(folderName, false))) {
			return gmmerrors.Newf(gmmerrors.KindNameCollision,
				"entity %q already has a mod named %q", opts.EntitySlug, folderName)
		}

		if err := os.Rename(contentRoot, target); err != nil {
			return gmmerrors.Wrapf(err, gmmerrors.KindIO, "committing %s", target)
		}

		asset = l.newAssetRow(ScannedAsset{
			EntitySlug: opts.EntitySlug,
			FolderName: folderName,
			DiskName:   folderName,
			Path:       target,
			Enabled:    true,
		})
		if err := l.store.CreateAsset(ctx, asset); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.logger.Info("Installed %s/%s from %s", asset.EntitySlug, asset.FolderName, filepath.Base(opts.ArchivePath))
	return asset, nil
}

// collapseRoot unwraps the common single-wrapper-directory archive layout:
// if staging holds exactly one directory and nothing else, that directory
// becomes the mod root.
func collapseRoot(staging string) string {
	entries, err := os.ReadDir(staging)
	if err != nil || len(entries) != 1 || !entries[0].IsDir() {
		return staging
	}
	return filepath.Join(staging, entries[0].Name())
}

// deriveFolderName picks a folder name from the extracted wrapper directory
// when one exists, otherwise from the archive filename.
func deriveFolderName(archivePath, contentRoot, staging string) string {
	base := filepath.Base(contentRoot)
	if contentRoot == staging {
		base = strings.TrimSuffix(filepath.Base(archivePath), filepath.Ext(archivePath))
	}
	base = cleanupPattern.ReplaceAllString(base, "")
	base = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '.':
			return '_'
		}
		return r
	}, base)
	base = strings.Trim(base, "_")
	if base == "" {
		base = "mod"
	}
	return base
}

// uniqueFolderName appends a numeric suffix until the name is free in both
// enabled and disabled forms.
func (l *Library) uniqueFolderName(entityDir, base string) string {
	name := base
	for i := 2; ; i++ {
		enabled := filepath.Join(entityDir, name)
		disabled := filepath.Join(entityDir, l.scanner.DiskName(name, false))
		if !dirExists(enabled) && !dirExists(disabled) {
			return name
		}
		name = fmt.Sprintf("%s_%d", base, i)
	}
}
