// Package config provides the configuration system for termkeys.
//
// Configuration is resolved in layers, higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  4. Command Line Flags      │  ← Highest priority (applied by the app)
//	├─────────────────────────────┤
//	│  3. Environment Variables   │  ← TERMKEYS_*
//	├─────────────────────────────┤
//	│  2. Config File             │  ← termkeys.toml / termkeys.yaml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// # Sub-packages
//
//   - loader: TOML, YAML and environment sources
//   - watcher: fsnotify-backed file watching for live reload
//
// # Basic Usage
//
//	cfg, err := config.Load("termkeys.toml")
//	if err != nil {
//	    return err
//	}
//	modes := cfg.Terminal.Modes()
//
// # Live Reload
//
//	w, err := config.Watch("termkeys.toml", func(cfg *config.Config, err error) {
//	    // apply cfg or report err
//	})
//	defer w.Close()
package config
