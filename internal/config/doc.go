// Package config provides configuration management for tasksched.
//
// Configuration is loaded from environment variables using the env package.
// Command-line flags take precedence over anything loaded here.
//
// Example usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return err
//	}
//
//	store := storage.NewStoreWithPath(cfg.Dir)
package config
