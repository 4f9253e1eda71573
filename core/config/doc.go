// Package config provides configuration management for the inventory tool.
//
// It utilizes Viper for loading configuration from environment variables,
// an optional .env file, and the command-line flags of the root command.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Graph: tenant credentials, identity and Graph endpoints
//   - Log: level, format and environment
//   - Database: local store driver and location (sqlite by default)
//   - Metadata: enrichment toggle, lookup interval and store endpoints
//   - Export: output directory and artifact name
//   - Storage: optional S3/MinIO upload of the artifacts
//
// Every key maps to an environment variable by replacing dots with underscores
// (database.name -> DATABASE_NAME). The credentials also accept TENANT_ID, CLIENT_ID and
// CLIENT_SECRET, and NODE_ENV sets log.env.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".", cmd.Flags())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Export.Name)
package config
