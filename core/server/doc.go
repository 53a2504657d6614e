// Package server holds the HTTP server configuration.
//
// The serve command owns startup and shutdown; this package only defines the settings
// it reads: listen port, API key and the request body limit. Inline merge requests
// carry both datasets in the body, so the limit is sized in megabytes.
package server
