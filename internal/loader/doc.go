// Package loader reads the category table from delimited files or from the
// snapshot store and caches it for the life of the process.
package loader
