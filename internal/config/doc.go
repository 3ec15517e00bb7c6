// Package config provides local configuration management for the Trace-Aid
// terminal client.
//
// Configuration lives in the user's config directory:
//
//	~/.config/trace-aid/
//	├── config.toml        # Main configuration
//	├── state/             # Persisted UI state (column prefs, dismissed tips)
//	└── trace-aid.log      # Session log
//
// The config.toml file holds connection and display settings:
//
//	[server]
//	base_url = "https://app.trace-aid.example"
//	token = "${TRACE_AID_TOKEN}"
//
//	[ui]
//	theme = "harbor"
//	autosave = true
//	autosave_delay_ms = 2000
//	poll_interval_s = 60
//
//	[log]
//	level = "info"
//
// String values can reference environment variables using $VAR or ${VAR}
// syntax, which keeps tokens out of the file itself.
//
// Example usage:
//
//	dir, _ := config.DefaultDir()
//	manager := config.NewManager(dir)
//	if err := manager.Load(); err != nil {
//		log.Fatal(err)
//	}
//
//	cfg := manager.Get()
//	fmt.Println("Backend:", cfg.Server.BaseURL)
//
//	// Update a setting
//	manager.Set("ui.theme", "slate")
package config
