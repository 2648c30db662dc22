// Package fetcher provides the write path of xscraper: it walks a
// user's timeline through the pagination engine and persists every
// yielded tweet to the append-only record log.
//
// The fetcher is deliberately thin. Page-walk policy (when to stop,
// what to yield) lives in pkg/pagination; wire concerns live in
// pkg/twitter; persistence lives in pkg/tweetlog. This package only
// composes them and reports progress.
//
// Usage:
//
//	cfg, err := config.Load("", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	f, err := fetcher.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	written, err := f.Fetch(context.Background(), cfg.Twitter.UserID, cfg.Fetch.MaxResults)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("wrote %d tweets\n", written)
//
// Failure semantics:
//
// Appends are line-atomic, so whatever was flushed before a failure
// remains a valid record log. Storage failures carry the
// tweetlog.ErrLogWrite marker; upstream protocol failures surface as a
// *twitter.Error wrapped with the item count already written. Callers
// can tell the two apart with errors.Is and errors.As.
//
// Every run gets a UUID run id bound into its log fields, and a
// manifest (pkg/runmeta) is written next to the record log whether the
// run succeeds or fails.
package fetcher
