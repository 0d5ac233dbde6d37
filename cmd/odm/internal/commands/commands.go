package commands

import (
	"github.com/clinkit/rwsgo/internal/logger"
	"github.com/clinkit/rwsgo/rws"
)

type Globals struct {
	Debug   bool
	Version string
}

// connectionFlags are shared by every command that talks to RWS.
type connectionFlags struct {
	URL      string `help:"RWS endpoint URL" default:"https://innovate.mdsol.com" env:"RWS_URL"`
	Username string `help:"RWS username" env:"RWS_USERNAME"`
	Password string `help:"RWS password" env:"RWS_PASSWORD"`
	CacheDir string `help:"HTTP cache directory for metadata requests" env:"RWS_CACHE_DIR"`
	Retries  uint   `help:"Attempts per request" default:"3"`
}

func (c *connectionFlags) connection(globals *Globals, extra ...rws.Option) *rws.Connection {
	log := logger.Setup(globals.Debug)

	opts := []rws.Option{
		rws.WithLogger(log),
		rws.WithMaxTries(c.Retries),
	}
	if c.CacheDir != "" {
		opts = append(opts, rws.WithHTTPClient(rws.NewCachingHTTPClient(c.CacheDir)))
	}
	opts = append(opts, extra...)

	return rws.NewConnection(c.URL, c.Username, c.Password, opts...)
}
