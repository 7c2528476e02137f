package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/fleetsync/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   path of the local cache database
//	-m string   mongodb connection uri
//	-i int      sync interval in minutes
//	-t string   identity token
//
// The function filters os.Args to the flags it knows about, using
// flagx.FilterArgs, so cobra and other components keep their own flags.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-m", "-i", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.CacheDSN, "d", cfg.CacheDSN, "path of the local cache database")
	fs.StringVar(&cfg.MongoURI, "m", cfg.MongoURI, "mongodb connection uri")
	fs.StringVar(&cfg.IDToken, "t", cfg.IDToken, "identity token")
	syncInterval := fs.Int("i", int(cfg.SyncInterval.Minutes()), "sync interval (in minutes)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.SyncInterval = time.Duration(*syncInterval) * time.Minute
}
