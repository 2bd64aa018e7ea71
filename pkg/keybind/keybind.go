// Package keybind extracts key-binding declarations from the INI files a mod
// ships for its loader. Sections named with a configured prefix (for example
// [KeySwap]) declare one binding per "key" assignment; a comment line above
// the assignment supplies a human-readable description.
package keybind

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"

	gmmerrors "github.com/Eidenz/GMM/pkg/errors"
)

// Record is one extracted key binding.
type Record struct {
	SectionTitle string `json:"section_title"`
	Description  string `json:"description,omitempty"`
	KeyCombo     string `json:"key_combo"`
}

// FileWarning reports a file that could not be parsed during aggregation.
type FileWarning struct {
	Path string
	Err  error
}

// Parser holds the grammar configuration. DefaultSectionPrefix matches the
// loader's convention of [KeySwap], [KeyToggle] and friends.
type Parser struct {
	SectionPrefix string
}

const DefaultSectionPrefix = "Key"

func NewParser(sectionPrefix string) *Parser {
	if sectionPrefix == "" {
		sectionPrefix = DefaultSectionPrefix
	}
	return &Parser{SectionPrefix: sectionPrefix}
}

var loadOptions = ini.LoadOptions{
	AllowShadows:             true,
	AllowNonUniqueSections:   true,
	SkipUnrecognizableLines:  true,
	SpaceBeforeInlineComment: true,
}

// Parse extracts bindings from one INI source. Duplicate "key" assignments
// are all reported in file order, never deduplicated.
func (p *Parser) Parse(source []byte) ([]Record, error) {
	f, err := ini.LoadSources(loadOptions, source)
	if err != nil {
		return nil, gmmerrors.Wrap(err, gmmerrors.KindParse, "malformed ini")
	}

	var records []Record
	for _, section := range f.Sections() {
		if !p.isKeySection(section.Name()) {
			continue
		}
		for _, key := range section.Keys() {
			if !strings.EqualFold(key.Name(), "key") {
				continue
			}
			desc := cleanComment(key.Comment)
			for _, combo := range key.ValueWithShadows() {
				combo = strings.TrimSpace(combo)
				if combo == "" {
					continue
				}
				records = append(records, Record{
					SectionTitle: section.Name(),
					Description:  desc,
					KeyCombo:     combo,
				})
			}
		}
	}
	return records, nil
}

// ParseFile extracts bindings from one INI file on disk.
func (p *Parser) ParseFile(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, gmmerrors.Wrapf(err, gmmerrors.KindParse, "reading %s", filepath.Base(path))
	}
	return p.Parse(data)
}

// ParseAll aggregates bindings across several INI files, best effort: a file
// that fails to open or parse yields a warning while the rest are still
// processed.
func (p *Parser) ParseAll(paths []string) ([]Record, []FileWarning) {
	var records []Record
	var warnings []FileWarning
	for _, path := range paths {
		recs, err := p.ParseFile(path)
		if err != nil {
			warnings = append(warnings, FileWarning{Path: path, Err: err})
			continue
		}
		records = append(records, recs...)
	}
	return records, warnings
}

func (p *Parser) isKeySection(name string) bool {
	if name == ini.DefaultSection {
		return false
	}
	return len(name) >= len(p.SectionPrefix) &&
		strings.EqualFold(name[:len(p.SectionPrefix)], p.SectionPrefix)
}

func cleanComment(comment string) string {
	lines := strings.Split(comment, "\n")
	// Only the line directly above the assignment counts as the description.
	last := strings.TrimSpace(lines[len(lines)-1])
	return strings.TrimSpace(strings.TrimLeft(last, ";#"))
}
