package main

import (
	"fmt"
	"os"

	"github.com/sagarc03/servit"
	"github.com/sagarc03/servit/config"
	"github.com/sagarc03/servit/filesystem"
)

// site bundles a Service with the storage and root it reads from.
type site struct {
	opts     servit.Options
	resolver *servit.Resolver
	root     *os.Root
	store    *filesystem.Store
	service  *servit.Service
}

// openSite opens the directory opts points at, resolving a relative
// RootDir against workDir.
func openSite(workDir string, opts servit.Options) (*site, error) {
	resolver := servit.NewResolver(workDir, opts)

	root, err := os.OpenRoot(resolver.Base())
	if err != nil {
		return nil, fmt.Errorf("open root %s: %w", resolver.Base(), err)
	}

	store := filesystem.NewFileStorage(root)
	service, err := servit.NewService(store, resolver, opts)
	if err != nil {
		_ = root.Close()
		return nil, fmt.Errorf("create service: %w", err)
	}

	return &site{
		opts:     opts,
		resolver: resolver,
		root:     root,
		store:    store,
		service:  service,
	}, nil
}

func (s *site) Close() error {
	return s.root.Close()
}

// optionsFor returns the delivery options of the named profile, or the
// base delivery options when name is empty.
func optionsFor(cfg *config.Config, name string) (servit.Options, error) {
	if name == "" {
		return cfg.Delivery, nil
	}
	opts, ok := cfg.ProfileOptions()[name]
	if !ok {
		return servit.Options{}, fmt.Errorf("unknown profile %q", name)
	}
	return opts, nil
}
