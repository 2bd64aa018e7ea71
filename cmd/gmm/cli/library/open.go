package library

import (
	"context"
	"fmt"

	config "github.com/Eidenz/GMM/internal/config/server"
	"github.com/Eidenz/GMM/pkg/db/models"
	"github.com/Eidenz/GMM/pkg/db/store"
	gmmerrors "github.com/Eidenz/GMM/pkg/errors"
	modlib "github.com/Eidenz/GMM/pkg/library"
	"github.com/Eidenz/GMM/pkg/log"
)

// openLibrary wires a one-shot library instance for CLI commands: config,
// metadata store and engine, plus a closer the caller must defer.
func openLibrary(ctx context.Context) (*modlib.Library, func(), error) {
	cfg, err := config.LoadServerConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	st, err := store.NewSQLiteStore(store.SQLiteConfig{Path: cfg.Metadata.SQLite.Path})
	if err != nil {
		return nil, nil, err
	}
	closer := func() { _ = st.Close() }

	if err := st.Connect(ctx); err != nil {
		closer()
		return nil, nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		closer()
		return nil, nil, err
	}

	root := cfg.Library.Root
	if root == "" {
		stored, err := st.GetSetting(ctx, models.SettingKeyLibraryRoot)
		if err != nil && !gmmerrors.IsKind(err, gmmerrors.KindNotFound) {
			closer()
			return nil, nil, err
		}
		root = stored
	}
	if root == "" {
		closer()
		return nil, nil, gmmerrors.New(gmmerrors.KindConfig,
			"no library root configured; pass --mods-root or set library.root")
	}
	if err := st.SetSetting(ctx, models.SettingKeyLibraryRoot, root); err != nil {
		closer()
		return nil, nil, err
	}

	logger := log.NewLoggerService("gmm", cfg.Log)
	lib := modlib.New(modlib.Config{
		Root:             root,
		DisabledMarker:   cfg.Library.DisabledMarker,
		KeySectionPrefix: cfg.Library.KeySectionPrefix,
	}, st, logger)

	if cfg.Library.Definitions != "" {
		defs, err := modlib.LoadDefinitions(cfg.Library.Definitions)
		if err != nil {
			closer()
			return nil, nil, err
		}
		if err := lib.SeedDefinitions(ctx, defs); err != nil {
			closer()
			return nil, nil, err
		}
	}

	return lib, closer, nil
}
