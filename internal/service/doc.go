// Package service implements the application's use cases on top of the
// store, storage, extraction, and generation layers. Handlers call into
// this package; it owns transactions and the per-file upload pipeline.
package service
