// Package config loads autoroute project configuration.
//
// The configuration is stored in autoroute.json (or autoroute.yaml) at the
// project root, the nearest directory holding a config file or go.mod.
// Every field can be overridden with an AUTOROUTE_* environment variable;
// a .env file in the project root is loaded first.
//
// # Configuration File Structure
//
//	{
//	  "routes": "app/routes",
//	  "trailingSlash": false,
//	  "exclude": "*_draft.go",
//	  "indexName": "index",
//	  "output": "app/routes/routes_gen.go",
//	  "server": {
//	    "host": "localhost",
//	    "port": 8080,
//	    "appendSlash": true
//	  },
//	  "store": {
//	    "driver": "postgres",
//	    "databaseURL": "postgres://localhost/colors"
//	  }
//	}
//
// # Environment Overrides
//
//	AUTOROUTE_ROUTES, AUTOROUTE_TRAILING_SLASH, AUTOROUTE_EXCLUDE,
//	AUTOROUTE_INDEX_NAME, AUTOROUTE_OUTPUT, AUTOROUTE_LOG_LEVEL,
//	AUTOROUTE_SERVER_HOST, AUTOROUTE_SERVER_PORT, AUTOROUTE_SERVER_APPEND_SLASH,
//	AUTOROUTE_SERVER_SHUTDOWN_TIMEOUT, AUTOROUTE_STORE_DRIVER,
//	AUTOROUTE_STORE_DATABASE_URL, AUTOROUTE_STORE_BUCKET, AUTOROUTE_STORE_PREFIX
//
// # Usage
//
//	cfg, err := config.LoadFromWorkingDir()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	routes, err := router.Discover(cfg.RoutesPath(), loader, cfg.RouterOptions()...)
package config
