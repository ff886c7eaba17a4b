package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sysid/bkmr/internal/action"
	"github.com/sysid/bkmr/internal/config"
	"github.com/sysid/bkmr/internal/domain"
	"github.com/sysid/bkmr/internal/embedding"
	"github.com/sysid/bkmr/internal/fetchmeta"
	"github.com/sysid/bkmr/internal/interpolation"
	"github.com/sysid/bkmr/internal/service"
	"github.com/sysid/bkmr/internal/storage"
	"github.com/sysid/bkmr/internal/tagservice"
)

// app bundles the orchestrator and its collaborators, built once per CLI
// invocation from resolved configuration.
type app struct {
	cfg     *config.Config
	store   *storage.Store
	svc     *service.Service
	tagsSvc *tagservice.Service
}

func newApp(cmd *cobra.Command) (*app, error) {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		defaultPath, err := config.DefaultPath()
		if err != nil {
			return nil, err
		}
		configPath = defaultPath
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	if dbOverride, _ := cmd.Flags().GetString("db"); dbOverride != "" {
		cfg.DBPath = dbOverride
	}

	store, err := storage.New("file:" + cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", cfg.DBPath, err)
	}

	var embedder embedding.Embedder = embedding.NullEmbedder{}
	if cfg.HasEmbedder() {
		oaiEmbedder, err := embedding.NewOpenAIEmbedder(cfg.OpenAIKey)
		if err != nil {
			return nil, fmt.Errorf("configure embedder: %w", err)
		}
		embedder = oaiEmbedder
	}

	dispatcher := &action.Dispatcher{
		Renderer:    interpolation.New(interpolation.SafeShellExecutor{}),
		Clipboard:   action.SystemClipboard{},
		Opener:      action.OSOpener{},
		Shell:       action.InheritedShellRunner{},
		Editor:      cfg.Editor,
		ShellBinary: cfg.Shell,
	}

	svc := service.New(store, embedder, fetchmeta.New(), dispatcher)
	tagsSvc := tagservice.New(store)

	return &app{cfg: cfg, store: store, svc: svc, tagsSvc: tagsSvc}, nil
}

func (a *app) Close() {
	if a.store != nil {
		a.store.Close()
	}
}

func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, domain.ErrDuplicateName):
		return exitDuplicateName
	default:
		return exitUsage
	}
}

func readFileBytes(path string) ([]byte, error) {
	return os.ReadFile(path)
}
