// Package config provides configuration management for the pipeline.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Log: logging level and format
//   - Server: HTTP server settings (port, API key)
//   - Storage: S3/MinIO credentials
//   - Cache: Redis page cache for scraped sources
//   - Source: game data endpoint URLs and set key
//   - Recipes: scrape sources, precedence, and match threshold
//   - Work: local artifact directory
//   - Search: search service endpoint, indexes, and vectorizer
//   - Agent: chat completion endpoint and retrieval depth
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Search.Endpoint)
package config
