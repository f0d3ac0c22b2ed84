package web

import (
	"moodlog/client"
	"moodlog/store"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
)

// App holds the dependencies the page handlers work with: the journal
// service client and the local history cache.
type App struct {
	client *client.Client
	store  *store.Store
}

// NewServer creates and configures the companion UI server.
func NewServer(addr string, c *client.Client, st *store.Store) *rweb.Server {
	s := rweb.NewServer(rweb.ServerOptions{
		Address: addr,
		Verbose: true,
	})

	// Apply middleware
	s.Use(rweb.RequestInfo)
	s.Use(SecurityHeadersMiddleware)
	s.Use(LoggingMiddleware)

	app := &App{client: c, store: st}
	setupRoutes(s, app)

	// Serve static files using embedded FS
	SetupStaticFiles(s)

	return s
}

// Run starts the server.
func Run(s *rweb.Server, addr string) error {
	logger.Info("MoodLog companion UI starting", "address", addr)
	return s.Run()
}
