package download

// Package download implements the core fetch pipeline: it resolves a
// manifest, plans every file, and fetches them over HTTP behind a fixed-size
// concurrency gate. Per-file failures are recorded, never propagated.
