package library

import (
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/ini.v1"
)

// assetNamespace seeds the deterministic asset IDs so the same folder under
// the same entity always maps to the same row across rescans.
var assetNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("gmm://library/asset"))

// AssetID derives the stable identifier for an entity/folder pair. The folder
// name must already be clean of the disabled marker.
func AssetID(entitySlug, folderName string) string {
	return uuid.NewSHA1(assetNamespace, []byte(entitySlug+"/"+folderName)).String()
}

// cleanupPattern strips version suffixes and stray disabled markers that
// commonly leak into archive or folder names.
var cleanupPattern = regexp.MustCompile(`(?i)(_v\d+(\.\d+)*|_DISABLED|DISABLED_|\(disabled\))`)

// DeriveDisplayName turns a folder name into a presentable default name.
func DeriveDisplayName(folderName string) string {
	name := cleanupPattern.ReplaceAllString(folderName, "")
	name = strings.ReplaceAll(name, "_", " ")
	name = strings.TrimSpace(name)
	if name == "" {
		return folderName
	}
	return name
}

// previewCandidates are checked in order; the first match wins.
var previewCandidates = []string{
	"preview.png", "preview.jpg", "preview.jpeg",
	"icon.png", "icon.jpg",
	"thumbnail.png", "thumbnail.jpg",
}

// metadataSections are probed in order; the first populated key of each
// kind wins.
var metadataSections = []string{"Mod", "Settings", "Info", "General"}

// DeducedMetadata is everything a folder can tell us about itself without
// any user input.
type DeducedMetadata struct {
	Name        string
	Author      string
	Description string
	ImageFile   string
	ConfigINIs  []string
}

// DeduceMetadata inspects an asset folder and fills in defaults for a fresh
// database row. folderName must be the clean name. Unreadable files are
// skipped silently: deduction never fails, it just deduces less.
func DeduceMetadata(path, folderName string) DeducedMetadata {
	meta := DeducedMetadata{Name: DeriveDisplayName(folderName)}

	for _, candidate := range previewCandidates {
		if info, err := os.Stat(filepath.Join(path, candidate)); err == nil && !info.IsDir() {
			meta.ImageFile = candidate
			break
		}
	}

	meta.ConfigINIs = findConfigINIs(path)

	for _, rel := range meta.ConfigINIs {
		if applyINIMetadata(&meta, filepath.Join(path, rel)) {
			break
		}
	}
	return meta
}

// findConfigINIs collects relative paths of every .ini under the folder,
// sorted so root-level files are probed first.
func findConfigINIs(root string) []string {
	var inis []string
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path != root && hidden(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.EqualFold(filepath.Ext(d.Name()), ".ini") {
			if rel, err := filepath.Rel(root, path); err == nil {
				inis = append(inis, filepath.ToSlash(rel))
			}
		}
		return nil
	})
	sort.Slice(inis, func(i, j int) bool {
		di, dj := strings.Count(inis[i], "/"), strings.Count(inis[j], "/")
		if di != dj {
			return di < dj
		}
		return inis[i] < inis[j]
	})
	return inis
}

// applyINIMetadata reads name/author/description hints from one ini file.
// Returns true once a name was found, which stops further probing.
func applyINIMetadata(meta *DeducedMetadata, path string) bool {
	file, err := ini.LoadSources(ini.LoadOptions{
		SkipUnrecognizableLines: true,
		AllowNonUniqueSections:  true,
	}, path)
	if err != nil {
		return false
	}

	found := false
	for _, sectionName := range metadataSections {
		section, err := file.GetSection(sectionName)
		if err != nil {
			continue
		}
		if v := firstKey(section, "Name", "ModName"); v != "" && !found {
			meta.Name = v
			found = true
		}
		if v := firstKey(section, "Author"); v != "" && meta.Author == "" {
			meta.Author = v
		}
		if v := firstKey(section, "Description"); v != "" && meta.Description == "" {
			meta.Description = v
		}
	}
	return found
}

func firstKey(section *ini.Section, names ...string) string {
	for _, name := range names {
		if section.HasKey(name) {
			if v := strings.TrimSpace(section.Key(name).String()); v != "" {
				return v
			}
		}
	}
	return ""
}
