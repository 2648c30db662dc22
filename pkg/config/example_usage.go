package config

// Example usage of the configuration system:
//
// 1. Load configuration with all sources:
//
//     cfg, err := config.Load("", nil)
//     if err != nil {
//         log.Fatal(err)
//     }
//
// 2. Load with custom config file:
//
//     cfg, err := config.Load("/path/to/config.yaml", nil)
//     if err != nil {
//         log.Fatal(err)
//     }
//
// 3. Load with command line flags:
//
//     flags := map[string]interface{}{
//         "user-id":     "2244994945",
//         "handle":      "XDevelopers",
//         "max-results": 500,
//         "output-dir":  "./data",
//         "log-level":   "debug",
//     }
//     cfg, err := config.Load("", flags)
//     if err != nil {
//         log.Fatal(err)
//     }
//
// 4. Programmatic configuration:
//
//     cfg := config.DefaultConfig()
//     cfg.Twitter.BearerToken = "your-bearer-token"
//     cfg.Twitter.UserID = "2244994945"
//     cfg.Twitter.Handle = "XDevelopers"
//
//     if err := cfg.Validate(); err != nil {
//         log.Fatal(err)
//     }
//
// 5. Save configuration to file:
//
//     if err := cfg.Save(".xscraper.yaml"); err != nil {
//         log.Fatal(err)
//     }
//
// 6. Environment variables:
//
//     export XSCRAPER_BEARER_TOKEN="your-bearer-token"
//     export XSCRAPER_USER_ID="2244994945"
//     export XSCRAPER_HANDLE="XDevelopers"
//     export XSCRAPER_MAX_RESULTS="500"
//     export XSCRAPER_OUTPUT_DIR="./data"
//     export XSCRAPER_NOTIFICATIONS_ENABLED="true"
//     export XSCRAPER_LOG_LEVEL="debug"
//
// 7. Using configuration in your application:
//
//     // Create API client with config
//     client := twitter.NewClient(&cfg.Twitter, nil)
//
//     // Open the record log for appending
//     w, err := tweetlog.OpenWriter(cfg.TweetsPath())
//
//     // Run a fetch
//     f, err := fetcher.New(cfg)
//     written, err := f.Fetch(ctx, cfg.Twitter.UserID, cfg.Fetch.MaxResults)
