package library

import (
	"context"
	"os"

	"github.com/Eidenz/GMM/pkg/db/models"
	gmmerrors "github.com/Eidenz/GMM/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DefinitionsFile declares known entities up front so they get proper
// display names and categories instead of slug-derived defaults.
type DefinitionsFile struct {
	Categories []CategoryDefinition `yaml:"categories"`
}

type CategoryDefinition struct {
	Slug     string             `yaml:"slug"`
	Entities []EntityDefinition `yaml:"entities"`
}

type EntityDefinition struct {
	Slug string `yaml:"slug"`
	Name string `yaml:"name"`
}

// LoadDefinitions parses an entity definitions YAML file.
func LoadDefinitions(path string) (*DefinitionsFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, gmmerrors.Wrapf(err, gmmerrors.KindIO, "reading definitions %s", path)
	}
	var defs DefinitionsFile
	if err := yaml.Unmarshal(data, &defs); err != nil {
		return nil, gmmerrors.Wrapf(err, gmmerrors.KindParse, "parsing definitions %s", path)
	}
	return &defs, nil
}

// SeedDefinitions upserts every declared entity. Already-known entities get
// their display name and category refreshed from the definitions file.
func (l *Library) SeedDefinitions(ctx context.Context, defs *DefinitionsFile) error {
	for _, category := range defs.Categories {
		for _, def := range category.Entities {
			if def.Slug == "" {
				return gmmerrors.Newf(gmmerrors.KindConfig,
					"definitions category %q contains an entity without a slug", category.Slug)
			}
			name := def.Name
			if name == "" {
				name = DeriveDisplayName(def.Slug)
			}
			entity := &models.Entity{
				Slug:        def.Slug,
				DisplayName: name,
				Category:    category.Slug,
			}
			if err := l.store.UpsertEntity(ctx, entity); err != nil {
				return err
			}
		}
	}
	return nil
}
