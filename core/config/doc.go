// Package config provides configuration management for the row merger.
//
// It utilizes Viper for loading configuration from environment variables and an optional
// .env file. Defaults come from the `default` struct tags of each section.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key, body limit)
//   - Storage: S3/MinIO credentials and the dataset bucket
//   - Log: Logging level and format
//   - Database: optional MySQL or SQLite connection for table datasets and merge history
//   - Merge: default threshold and plan cache TTL
//   - Dataset: delimiter, header handling, normalization and output prefix
//
// Environment variables map onto nested keys, e.g. MERGE_THRESHOLD -> merge.threshold.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Merge.Threshold)
package config
