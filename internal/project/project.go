package project

import (
	stderrors "errors"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/AndreyAkinshin/voltcheck/internal/catalog"
	"github.com/AndreyAkinshin/voltcheck/internal/config"
	"github.com/AndreyAkinshin/voltcheck/internal/errors"
	"github.com/AndreyAkinshin/voltcheck/internal/logging"
	"github.com/AndreyAkinshin/voltcheck/pkg/compliance"
)

// Project is a loaded voltcheck project: its configuration and the device
// catalog that configuration selects.
type Project struct {
	Root        string
	Config      *config.Config
	Catalog     *compliance.Catalog
	CatalogInfo catalog.Info
	Warnings    []string
	// HasConfig is false when no .voltcheck/config.json was found and
	// defaults are in effect.
	HasConfig bool
}

// LoadProject finds and loads a project from the current directory. Without
// a config file the current directory becomes the root and defaults apply.
func LoadProject(logger *zap.Logger) (*Project, error) {
	root, err := FindRoot()
	if stderrors.Is(err, ErrNoProjectRoot) {
		cwd, cwdErr := os.Getwd()
		if cwdErr != nil {
			return nil, cwdErr
		}
		logging.OrNop(logger).Debug("no project config found, using defaults", zap.String("dir", cwd))
		return Default(cwd, logger)
	}
	if err != nil {
		return nil, err
	}
	return LoadProjectFrom(root, logger)
}

// LoadProjectFrom loads a project from a specified root directory.
func LoadProjectFrom(root string, logger *zap.Logger) (*Project, error) {
	configPath := filepath.Join(root, ConfigDirName, ConfigFileName)

	cfg, warnings, err := config.LoadAndValidate(configPath)
	if err != nil {
		return nil, errors.WrapKind(errors.KindConfig, configPath, err, "invalid configuration")
	}

	p := &Project{
		Root:      root,
		Config:    cfg,
		Warnings:  warnings,
		HasConfig: true,
	}
	if err := p.UseCatalog(cfg.Catalog.Path, cfg.Catalog.Mode, logger); err != nil {
		return nil, err
	}
	logging.OrNop(logger).Debug("loaded project",
		zap.String("root", root),
		zap.Int("warnings", len(warnings)))
	return p, nil
}

// Default returns a project rooted at root with default configuration and
// the built-in catalog.
func Default(root string, logger *zap.Logger) (*Project, error) {
	p := &Project{Root: root, Config: config.Default()}
	if err := p.UseCatalog("", "", logger); err != nil {
		return nil, err
	}
	return p, nil
}

// UseCatalog replaces the project's catalog. path is resolved against the
// project root; an empty path selects the built-in table.
func (p *Project) UseCatalog(path, mode string, logger *zap.Logger) error {
	c, info, err := catalog.Resolve(p.Resolve(path), mode, logger)
	if err != nil {
		return err
	}
	p.Catalog = c
	p.CatalogInfo = info
	return nil
}

// ConfigPath returns the full path to the project configuration file.
func (p *Project) ConfigPath() string {
	return filepath.Join(p.Root, ConfigDirName, ConfigFileName)
}

// Resolve returns path joined to the project root unless it is empty or
// absolute.
func (p *Project) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(p.Root, path)
}
