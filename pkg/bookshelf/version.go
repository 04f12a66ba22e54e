// Package bookshelf exposes build metadata shared by the CLI.
package bookshelf

// Version is the bookshelf release version.
const Version = "0.1.0"
