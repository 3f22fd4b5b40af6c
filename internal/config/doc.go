// Package config provides configuration parsing for Querido projects.
//
// The configuration is stored in querido.json at the project root. This
// package handles loading, saving, defaulting, and validating it.
//
// # Configuration File Structure
//
//	{
//	  "name": "my-app",
//	  "sources": ["app", "src"],
//	  "schema": "schema.json",
//	  "artifacts": {
//	    "output": "__generated__",
//	    "archive": {
//	      "bucket": "my-app-artifacts",
//	      "region": "us-east-1",
//	      "prefix": "ci/"
//	    }
//	  },
//	  "watch": {
//	    "debounce": "100ms",
//	    "ignore": ["node_modules", "dist"]
//	  },
//	  "lsp": {
//	    "logFile": ".querido/lsp.log"
//	  }
//	}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Sources:", cfg.Sources)
package config
