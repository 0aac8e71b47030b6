// Package notes is a small CRUD service built on promisemux. Store calls run
// on their own goroutines and are returned to the router as deferred results.
package notes
