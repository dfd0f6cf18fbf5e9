// Package commands implements the tdcart CLI: a local cart kept in a file
// store under --home, with the same catalog, pricing and suggestion rules
// the HTTP service uses.
package commands
