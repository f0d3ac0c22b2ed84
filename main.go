package main

import (
	"log"

	"moodlog/client"
	"moodlog/config"
	"moodlog/store"
	"moodlog/web"

	"github.com/rohanthewiz/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	// Initialize logger
	logger.SetLogLevel(cfg.LogLevel)

	// Open the local history cache
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		log.Fatal("Failed to open history cache: ", err)
	}
	defer st.Close()

	// Build the journal service client
	c, err := client.New(client.Config{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.HTTPTimeout,
	})
	if err != nil {
		log.Fatal("Failed to create service client: ", err)
	}

	// Start the companion UI
	srv := web.NewServer(cfg.ListenAddr, c, st)
	logger.Info("Starting MoodLog companion UI",
		"listen", cfg.ListenAddr,
		"service", cfg.BaseURL,
	)
	log.Fatal(web.Run(srv, cfg.ListenAddr))
}
