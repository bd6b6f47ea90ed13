// Package config loads settings for the device-side guest credential tool.
//
// Sources, later ones winning:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file whose path the caller passes to Load.
//  3. SHOPAI_CLIENT_* environment variables.
//
// Command-line flags are owned by cmd/client, which applies explicitly set
// flags on top of the loaded Config.
//
// # JSON schema
//
// Durations accept strings like "24h" or integer nanoseconds:
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "database_path": "/home/me/.config/shopai/guest.db",
//	  "key_path": "/home/me/.config/shopai/sealing.key",
//	  "refresh_buffer": "24h",
//	  "issue_timeout": "10s",
//	  "clear_on_sign_in": false
//	}
package config
