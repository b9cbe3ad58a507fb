package manifest

import (
	"fmt"

	"github.com/arthur-debert/lazyrec/lazyrec"
	"github.com/arthur-debert/lazyrec/types"
)

// Define registers every model in the manifest against st and returns
// them by name. Models extending a parent are derived from it, so they
// inherit its table, key and deferred declaration unless they override
// them. Validate has already established that parents precede children.
func (f *File) Define(st types.Store) (map[string]*lazyrec.Model, error) {
	models := make(map[string]*lazyrec.Model, len(f.Models))
	for i := range f.Models {
		def := &f.Models[i]
		cfg := lazyrec.ModelConfig{
			Name:           def.Name,
			Table:          def.Table,
			PrimaryKey:     def.PrimaryKey,
			DeferredFields: def.Deferred,
		}

		var (
			m   *lazyrec.Model
			err error
		)
		if def.Extends != "" {
			parent := models[def.Extends]
			if parent == nil {
				return nil, fmt.Errorf("model %q extends unknown model %q", def.Name, def.Extends)
			}
			m, err = parent.Derive(cfg)
		} else {
			m, err = lazyrec.Define(st, cfg)
		}
		if err != nil {
			return nil, err
		}
		models[def.Name] = m
	}
	return models, nil
}
