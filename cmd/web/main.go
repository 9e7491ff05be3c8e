// Command web initializes the Music-Scout-Go application and starts the HTTP
// server. Configuration is provided via environment variables for Spotify API
// credentials, the cookie signing key and the database location. The server
// listens on port 4000 by default and serves the JSON API plus a Prometheus
// metrics endpoint.

package main

import (
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"Music-Scout-Go/pkg/auth"
	"Music-Scout-Go/pkg/catalog"
	"Music-Scout-Go/pkg/db"
	"Music-Scout-Go/pkg/discovery"
	"Music-Scout-Go/pkg/handlers"
)

// main configures application dependencies and starts the HTTP server.
func main() {
	// A .env file is a development convenience; in production the
	// variables come from the environment directly.
	_ = godotenv.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	// Credentials are validated lazily: the first catalog request fails
	// with a configuration error when they are missing, so a misconfigured
	// server still starts and reports the problem through the API. The
	// signing key however protects cookies and must be present up front.
	clientID := os.Getenv("SPOTIFY_CLIENT_ID")
	clientSecret := os.Getenv("SPOTIFY_CLIENT_SECRET")
	signingKey := os.Getenv("SIGNING_KEY")
	if signingKey == "" {
		log.Fatal("SIGNING_KEY must be set")
	}
	if clientID == "" || clientSecret == "" {
		log.Warn("SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET are not set; catalog requests will fail")
	}

	// DATABASE_PATH allows the SQLite file to be customised. It defaults
	// to a file named musicscout.db in the working directory.
	dbPath := os.Getenv("DATABASE_PATH")
	if dbPath == "" {
		dbPath = "musicscout.db"
	}
	database, err := db.New(dbPath)
	if err != nil {
		log.WithError(err).Fatal("open database")
	}
	defer database.Close()

	tokens := auth.NewStore(&auth.ClientCredentials{
		ClientID:     clientID,
		ClientSecret: clientSecret,
	})
	client := catalog.New(tokens)

	var opts []discovery.Option
	if market := os.Getenv("MARKET"); market != "" {
		opts = append(opts, discovery.WithMarket(market))
	}
	svc := discovery.New(client, log, opts...)

	app := &handlers.Application{
		Discovery: svc,
		Tokens:    tokens,
		DB:        database,
		SignKey:   []byte(signingKey),
		Log:       log,
	}

	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = ":4000"
	}
	log.WithField("addr", addr).Info("starting server")
	if err := http.ListenAndServe(addr, app.Routes()); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
