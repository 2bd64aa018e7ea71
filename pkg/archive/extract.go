package archive

import (
	"archive/zip"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/nwaples/rardecode/v2"

	gmmerrors "github.com/Eidenz/GMM/pkg/errors"
)

// entry is one archive member surfaced by a format walker. open must be
// called before the walker advances; rar readers are strictly sequential.
type entry struct {
	name  string
	isDir bool
	open  func() (io.ReadCloser, error)
}

type visitor func(e entry) error

// Extract unpacks the archive at archivePath into stagingDir. Entry paths
// are validated against the staging root before anything is written; any
// validation or write failure removes stagingDir so no partial state can be
// promoted. Cancellation through ctx is honored between entries.
func Extract(ctx context.Context, archivePath, stagingDir string) (err error) {
	format, err := DetectFile(archivePath)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(stagingDir, 0o755); err != nil {
		return gmmerrors.Wrapf(err, gmmerrors.KindIO, "creating staging directory %s", stagingDir)
	}
	defer func() {
		if err != nil {
			os.RemoveAll(stagingDir)
		}
	}()

	// Pass 1: validate every entry path before a single byte is written.
	if err = walk(format, archivePath, func(e entry) error {
		_, verr := securePath(stagingDir, e.name)
		return verr
	}); err != nil {
		return err
	}

	// Pass 2: write.
	err = walk(format, archivePath, func(e entry) error {
		if cerr := ctx.Err(); cerr != nil {
			return gmmerrors.Wrap(cerr, gmmerrors.KindIO, "extraction cancelled")
		}
		target, verr := securePath(stagingDir, e.name)
		if verr != nil {
			return verr
		}
		if e.isDir {
			return wrapIO(os.MkdirAll(target, 0o755), target)
		}
		if mkerr := os.MkdirAll(filepath.Dir(target), 0o755); mkerr != nil {
			return wrapIO(mkerr, filepath.Dir(target))
		}
		src, oerr := e.open()
		if oerr != nil {
			return gmmerrors.Wrapf(oerr, gmmerrors.KindArchiveFormat, "reading entry %s", e.name)
		}
		defer src.Close()
		dst, cerr := os.Create(target)
		if cerr != nil {
			return wrapIO(cerr, target)
		}
		defer dst.Close()
		if _, werr := io.Copy(dst, src); werr != nil {
			return wrapIO(werr, target)
		}
		return nil
	})
	return err
}

func wrapIO(err error, path string) error {
	if err == nil {
		return nil
	}
	return gmmerrors.Wrapf(err, gmmerrors.KindIO, "writing %s", path)
}

// securePath resolves an archive entry name inside root, rejecting absolute
// paths and anything that escapes the root after normalization (zip-slip).
func securePath(root, name string) (string, error) {
	cleaned := strings.ReplaceAll(name, `\`, "/")
	if cleaned == "" {
		return "", gmmerrors.New(gmmerrors.KindArchiveFormat, "empty entry path")
	}
	if strings.Contains(cleaned, ":") || strings.HasPrefix(cleaned, "/") || filepath.IsAbs(cleaned) {
		return "", gmmerrors.Newf(gmmerrors.KindArchiveFormat, "unsafe absolute entry path: %s", name)
	}
	rel := filepath.Clean(filepath.FromSlash(cleaned))
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", gmmerrors.Newf(gmmerrors.KindArchiveFormat, "entry path escapes archive root: %s", name)
	}
	return filepath.Join(root, rel), nil
}

func walk(format Format, archivePath string, fn visitor) error {
	switch format {
	case FormatZip:
		return walkZip(archivePath, fn)
	case FormatSevenZip:
		return walkSevenZip(archivePath, fn)
	case FormatRar:
		return walkRar(archivePath, fn)
	default:
		return gmmerrors.Newf(gmmerrors.KindArchiveFormat, "unsupported archive format: %s", format)
	}
}

func walkZip(archivePath string, fn visitor) error {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return gmmerrors.Wrapf(err, gmmerrors.KindArchiveFormat, "opening zip %s", archivePath)
	}
	defer r.Close()

	for _, f := range r.File {
		f := f
		e := entry{
			name:  f.Name,
			isDir: f.FileInfo().IsDir(),
			open:  func() (io.ReadCloser, error) { return f.Open() },
		}
		if err := fn(e); err != nil {
			return err
		}
	}
	return nil
}

func walkSevenZip(archivePath string, fn visitor) error {
	r, err := sevenzip.OpenReader(archivePath)
	if err != nil {
		return gmmerrors.Wrapf(err, gmmerrors.KindArchiveFormat, "opening 7z %s", archivePath)
	}
	defer r.Close()

	for _, f := range r.File {
		f := f
		e := entry{
			name:  f.Name,
			isDir: f.FileInfo().IsDir(),
			open:  func() (io.ReadCloser, error) { return f.Open() },
		}
		if err := fn(e); err != nil {
			return err
		}
	}
	return nil
}

func walkRar(archivePath string, fn visitor) error {
	r, err := rardecode.OpenReader(archivePath)
	if err != nil {
		return gmmerrors.Wrapf(err, gmmerrors.KindArchiveFormat, "opening rar %s", archivePath)
	}
	defer r.Close()

	for {
		hdr, err := r.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return gmmerrors.Wrapf(err, gmmerrors.KindArchiveFormat, "reading rar %s", archivePath)
		}
		e := entry{
			name:  hdr.Name,
			isDir: hdr.IsDir,
			open: func() (io.ReadCloser, error) {
				// The rar reader is positioned at the current file's data.
				return io.NopCloser(r), nil
			},
		}
		if err := fn(e); err != nil {
			return err
		}
	}
}
