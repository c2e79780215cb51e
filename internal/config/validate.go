package config

import (
	"errors"
	"fmt"

	"github.com/flemzord/peerlens/internal/core"
)

// Validate checks the structural validity of a Config.
// It verifies the version field, ensures modules are present, and checks
// that all referenced module IDs exist in the registry. The lookup service
// additionally needs the Bot API backend and the gateway to do anything
// useful, so their absence is flagged here rather than at runtime.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.Version == "" {
		errs = append(errs, errors.New("config: version field is required"))
	} else if cfg.Version != "1" {
		errs = append(errs, fmt.Errorf("config: unsupported version %q (supported: \"1\")", cfg.Version))
	}

	if len(cfg.Modules) == 0 {
		errs = append(errs, errors.New("config: at least one module must be configured"))
	}

	for id := range cfg.Modules {
		if _, ok := core.GetModule(id); !ok {
			errs = append(errs, fmt.Errorf("config: unknown module %q", id))
		}
	}

	if len(cfg.Modules) > 0 {
		if _, ok := cfg.Modules["backend.botapi"]; !ok {
			errs = append(errs, errors.New("config: module \"backend.botapi\" is required (numeric ID lookups have no other source)"))
		}
		if _, ok := cfg.Modules["gateway.http"]; !ok {
			errs = append(errs, errors.New("config: module \"gateway.http\" is required"))
		}
	}

	return errors.Join(errs...)
}
