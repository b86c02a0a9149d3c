// Package credstore is a credential and session record store. A Repository
// owns one store session and serializes every call through it; records are
// created, looked up by AND-ed equality filters that must match exactly one
// row, and updated through a whitelist of mutable attributes.
package credstore
