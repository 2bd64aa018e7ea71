package archive

import (
	"bytes"
	"io"
	"os"

	gmmerrors "github.com/Eidenz/GMM/pkg/errors"
)

// Format identifies a supported container format.
type Format int

const (
	FormatUnknown Format = iota
	FormatZip
	FormatSevenZip
	FormatRar
)

func (f Format) String() string {
	switch f {
	case FormatZip:
		return "zip"
	case FormatSevenZip:
		return "7z"
	case FormatRar:
		return "rar"
	default:
		return "unknown"
	}
}

var (
	magicZip      = []byte{'P', 'K', 0x03, 0x04}
	magicZipEmpty = []byte{'P', 'K', 0x05, 0x06}
	magicSevenZip = []byte{0x37, 0x7A, 0xBC, 0xAF, 0x27, 0x1C}
	// Covers both RAR 4.x and 5.x signatures.
	magicRar = []byte{'R', 'a', 'r', '!', 0x1A, 0x07}
)

// Detect sniffs the container format from leading bytes. The file extension
// is never consulted, so a mislabeled archive cannot bypass detection.
func Detect(header []byte) Format {
	switch {
	case bytes.HasPrefix(header, magicZip), bytes.HasPrefix(header, magicZipEmpty):
		return FormatZip
	case bytes.HasPrefix(header, magicSevenZip):
		return FormatSevenZip
	case bytes.HasPrefix(header, magicRar):
		return FormatRar
	default:
		return FormatUnknown
	}
}

// DetectFile sniffs the format of an archive on disk.
func DetectFile(path string) (Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return FormatUnknown, gmmerrors.Wrapf(err, gmmerrors.KindIO, "opening archive %s", path)
	}
	defer f.Close()

	header := make([]byte, 8)
	n, err := f.Read(header)
	if err != nil && err != io.EOF {
		return FormatUnknown, gmmerrors.Wrapf(err, gmmerrors.KindIO, "reading archive header %s", path)
	}

	format := Detect(header[:n])
	if format == FormatUnknown {
		return FormatUnknown, gmmerrors.Newf(gmmerrors.KindArchiveFormat, "unrecognized archive format: %s", path)
	}
	return format, nil
}
