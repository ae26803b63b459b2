// Package config provides centralized configuration management for PVPulse.
// It handles loading configuration from multiple sources, validation, and
// provides a type-safe API for accessing configuration values throughout the
// application.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//  1. Environment variables (highest priority)
//  2. YAML configuration file
//  3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern PVP_* for namespacing:
//
//	PVP_SERVER_PORT=8080
//	PVP_SOURCE_PATH=data/pvoil_prices.csv
//	PVP_SOURCE_URL=https://example.com/prices.csv
//	PVP_LOGGING_LEVEL=info
//
// # Product Catalog
//
// The catalog section defines the fuel products the pipeline tracks. Each
// entry carries a stable code, the official product name as published, and
// optional alias spellings:
//
//	catalog:
//	  - code: ron95
//	    name: "Xăng RON 95-III"
//	    aliases: ["Xang RON 95", "RON95"]
//
// The default catalog covers the four PVOIL retail products and is used
// whenever the configuration file omits a catalog section.
//
// # Validation
//
// All configuration is validated at load time with go-playground/validator:
// required fields are present, the log level is one of debug/info/warn/error,
// and the source URL (when set) is well formed.
//
// # Usage
//
// Load configuration at application startup:
//
//	cfg, err := config.Load("config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
