package agent

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/mwantia/fabric/pkg/container"

	config "github.com/Eidenz/GMM/internal/config/server"
	"github.com/Eidenz/GMM/pkg/db/models"
	"github.com/Eidenz/GMM/pkg/db/store"
	gmmerrors "github.com/Eidenz/GMM/pkg/errors"
	"github.com/Eidenz/GMM/pkg/library"
	"github.com/Eidenz/GMM/pkg/log"
)

type GMMAgent struct {
	mutex sync.RWMutex
	wait  sync.WaitGroup

	cfg *config.BaseServerConfig
	sc  *container.ServiceContainer
	log log.LoggerService

	store   *store.SQLiteStore
	library *library.Library
}

func NewAgent(cfg *config.BaseServerConfig) *GMMAgent {
	return &GMMAgent{
		cfg: cfg,
		sc:  container.NewServiceContainer(),
		log: log.NewLoggerService("gmm", cfg.Log),
	}
}

func (gma *GMMAgent) setupServices(ctx context.Context) error {
	st, err := store.NewSQLiteStore(store.SQLiteConfig{
		Path: gma.cfg.Metadata.SQLite.Path,
	})
	if err != nil {
		return err
	}
	if err := st.Connect(ctx); err != nil {
		return err
	}
	if err := st.Migrate(ctx); err != nil {
		return err
	}
	gma.store = st

	root, err := gma.resolveLibraryRoot(ctx)
	if err != nil {
		return err
	}

	gma.library = library.New(library.Config{
		Root:             root,
		DisabledMarker:   gma.cfg.Library.DisabledMarker,
		KeySectionPrefix: gma.cfg.Library.KeySectionPrefix,
	}, st, gma.log.Named("library"))

	if gma.cfg.Library.Definitions != "" {
		defs, err := library.LoadDefinitions(gma.cfg.Library.Definitions)
		if err != nil {
			return err
		}
		if err := gma.library.SeedDefinitions(ctx, defs); err != nil {
			return err
		}
	}

	errs := container.Errors{}

	gma.log.Debug("Registering 'LoggerService'...")
	errs.Add(container.Register[log.LoggerServiceImpl](gma.sc,
		container.With[log.LoggerService](),
		container.WithInstance(gma.log)))

	gma.log.Debug("Registering 'MetadataStore'...")
	errs.Add(container.Register[store.SQLiteStore](gma.sc,
		container.With[store.MetadataStore](),
		container.WithInstance(gma.store)))

	gma.log.Debug("Registering 'Library'...")
	errs.Add(container.Register[library.Library](gma.sc,
		container.WithInstance(gma.library)))

	return errs.Errors()
}

// resolveLibraryRoot prefers the configured root and falls back to the path
// persisted in the settings table. Whichever wins gets persisted so external
// tools can read it back.
func (gma *GMMAgent) resolveLibraryRoot(ctx context.Context) (string, error) {
	root := gma.cfg.Library.Root
	if root == "" {
		stored, err := gma.store.GetSetting(ctx, models.SettingKeyLibraryRoot)
		if err != nil && !gmmerrors.IsKind(err, gmmerrors.KindNotFound) {
			return "", err
		}
		root = stored
	}
	if root == "" {
		return "", gmmerrors.New(gmmerrors.KindConfig,
			"no library root configured; set library.root or the stored setting")
	}
	if err := gma.store.SetSetting(ctx, models.SettingKeyLibraryRoot, root); err != nil {
		return "", err
	}
	return root, nil
}

// Library exposes the engine for embedding callers.
func (gma *GMMAgent) Library() *library.Library {
	gma.mutex.RLock()
	defer gma.mutex.RUnlock()
	return gma.library
}

func (gma *GMMAgent) Serve(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	gma.mutex.Lock()

	if err := gma.setupServices(ctx); err != nil {
		gma.mutex.Unlock()
		return err
	}

	gma.startRescanLoop(ctx)

	gma.mutex.Unlock()
	<-ctx.Done()

	timeout, err := time.ParseDuration(gma.cfg.ShutdownTimeout)
	if err != nil {
		// Set default of 60 seconds if error
		timeout = 60 * time.Second
	}

	shutdown, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := gma.sc.Cleanup(shutdown); err != nil {
		return fmt.Errorf("failed to complete service container cleanup: %w", err)
	}

	gma.wait.Wait()

	if err := gma.store.Close(); err != nil {
		return fmt.Errorf("failed to close metadata store: %w", err)
	}
	return nil
}

// startRescanLoop reconciles the store against disk immediately, then on the
// configured interval until shutdown. An interval of 0 disables the loop
// after the initial pass.
func (gma *GMMAgent) startRescanLoop(ctx context.Context) {
	interval, err := time.ParseDuration(gma.cfg.Library.RescanInterval)
	if err != nil {
		gma.log.Warn("Invalid rescan interval %q, using 5m", gma.cfg.Library.RescanInterval)
		interval = 5 * time.Minute
	}

	gma.wait.Add(1)
	go func() {
		defer gma.wait.Done()

		if _, err := gma.library.Rescan(ctx); err != nil {
			gma.log.Error("Initial rescan failed: %v", err)
		}
		if interval <= 0 {
			return
		}

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := gma.library.Rescan(ctx); err != nil {
					gma.log.Error("Periodic rescan failed: %v", err)
				}
			}
		}
	}()
}
