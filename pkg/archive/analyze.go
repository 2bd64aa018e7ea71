package archive

import (
	"path"
	"strings"
)

// Entry describes one archive member for presentation-layer import dialogs.
type Entry struct {
	Path            string `json:"path"`
	IsDir           bool   `json:"is_dir"`
	IsLikelyModRoot bool   `json:"is_likely_mod_root"`
}

// Analysis summarizes an archive before installation: entries, candidate mod
// roots (directories holding an INI directly) and a detected preview image.
type Analysis struct {
	Format       Format  `json:"format"`
	Entries      []Entry `json:"entries"`
	PreviewPath  string  `json:"preview_path,omitempty"`
	DeducedName  string  `json:"deduced_name,omitempty"`
}

var previewCandidates = []string{
	"preview.png", "preview.jpg",
	"icon.png", "icon.jpg",
	"thumbnail.png", "thumbnail.jpg",
}

// Analyze lists the archive content without extracting anything.
func Analyze(archivePath string) (*Analysis, error) {
	format, err := DetectFile(archivePath)
	if err != nil {
		return nil, err
	}

	analysis := &Analysis{
		Format:      format,
		DeducedName: strings.TrimSuffix(path.Base(strings.ReplaceAll(archivePath, `\`, "/")), path.Ext(archivePath)),
	}

	iniParents := make(map[string]bool)
	if err := walk(format, archivePath, func(e entry) error {
		name := strings.TrimSuffix(strings.ReplaceAll(e.name, `\`, "/"), "/")
		analysis.Entries = append(analysis.Entries, Entry{Path: name, IsDir: e.isDir})
		if !e.isDir && strings.HasSuffix(strings.ToLower(name), ".ini") {
			if parent := path.Dir(name); parent != "." {
				iniParents[parent] = true
			}
		}
		return nil
	}); err != nil {
		return nil, err
	}

	for i := range analysis.Entries {
		e := &analysis.Entries[i]
		if e.IsDir && iniParents[e.Path] {
			e.IsLikelyModRoot = true
			if analysis.PreviewPath == "" {
				analysis.PreviewPath = findPreview(analysis.Entries, e.Path)
			}
		}
	}
	return analysis, nil
}

func findPreview(entries []Entry, root string) string {
	for _, candidate := range previewCandidates {
		want := root + "/" + candidate
		for _, e := range entries {
			if !e.IsDir && strings.EqualFold(e.Path, want) {
				return e.Path
			}
		}
	}
	return ""
}
