// Package types defines the Shelf interface, the Book entity, and the
// standard errors for the bookshelf storage system.
package types
