// Package database provides connection management, schema lifecycle,
// configuration types, query logging, health checks and driver error
// classification for the credential store, built on top of Bun.
package database
