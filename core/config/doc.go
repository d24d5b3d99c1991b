// Package config provides configuration management for the object store.
//
// It loads an optional .env file with godotenv and then reads environment
// variables through Viper. Defaults come from the `default` struct tags of
// each partial configuration, so every key is known to Viper before
// AutomaticEnv resolves it.
//
// # Configuration Structure
//
//   - Server: HTTP server settings (port, API key)
//   - Storage: backend, endpoint, credentials, region and bucket
//   - Transfer: concurrency, part size and progress poll interval
//   - Log: logging level and format
//
// Nested keys map to upper-case variables joined by underscores, e.g.
// storage.bucket is STORAGE_BUCKET.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Storage.Bucket)
package config
