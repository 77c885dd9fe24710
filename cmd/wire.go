package cmd

import (
	"fmt"
	"path/filepath"

	osfs "github.com/hack-pad/hackpadfs/os"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/superhappyfuntimellc/Olivetti/internal/archive"
	"github.com/superhappyfuntimellc/Olivetti/internal/config"
	"github.com/superhappyfuntimellc/Olivetti/internal/desk"
	"github.com/superhappyfuntimellc/Olivetti/internal/logging"
	"github.com/superhappyfuntimellc/Olivetti/internal/partner"
	"github.com/superhappyfuntimellc/Olivetti/internal/state"
)

// app holds the wired engine shared by every command.
type app struct {
	cfg   *config.Config
	log   *zap.Logger
	fs    *osfs.FS
	store *state.Store
	state *state.AppState
	desk  *desk.Desk

	// archive is nil when disabled in config.
	archive *archive.Archive

	// passagePath is the index location in fs coordinates.
	passagePath string
}

func wireApp() (*app, error) {
	cfg, err := config.Load(viper.New())
	if err != nil {
		return nil, fmt.Errorf("wire config: %w", err)
	}
	if err := cfg.EnsureDataDir(); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	log := logging.New(logging.Options{FilePath: cfg.LogFile, Verbose: cfg.Verbose})

	fs := osfs.NewFS()
	statePath, err := fs.FromOSPath(cfg.StatePath())
	if err != nil {
		return nil, fmt.Errorf("resolve state path: %w", err)
	}
	passagePath, err := fs.FromOSPath(cfg.PassageIndexPath())
	if err != nil {
		return nil, fmt.Errorf("resolve passage index path: %w", err)
	}

	store := state.NewStore(fs, statePath, log)
	st, generation := store.Load()
	if generation > 0 {
		log.Warn("state recovered from backup", zap.Int("generation", generation))
	}

	var completerOpts []partner.Option
	if cfg.Model != "" {
		completerOpts = append(completerOpts, partner.WithModel(cfg.Model))
	}
	if cfg.BaseURL != "" {
		completerOpts = append(completerOpts, partner.WithBaseURL(cfg.BaseURL))
	}
	completer := partner.NewOpenAIClient(cfg.APIKey, completerOpts...)

	a := &app{
		cfg:         cfg,
		log:         log,
		fs:          fs,
		store:       store,
		state:       st,
		desk:        desk.New(store, completer, log),
		passagePath: passagePath,
	}

	if cfg.ArchiveEnabled {
		arc, err := archive.Open(cfg.ArchivePath())
		if err != nil {
			return nil, fmt.Errorf("open sample archive: %w", err)
		}
		a.archive = arc
	}

	return a, nil
}

// save persists the working state through the durable store.
func (a *app) save() error {
	return a.store.Save(a.state)
}

// osPath converts a user-supplied path into the FS coordinate space.
func (a *app) osPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return a.fs.FromOSPath(abs)
}

func (a *app) shutdown() error {
	_ = a.log.Sync()
	if a.archive != nil {
		return a.archive.Close()
	}
	return nil
}
