// Package repository provides a generic repository abstraction built on Bun
// for filtered lookups, inserts, column updates and transactions.
package repository
