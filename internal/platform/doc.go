package platform

// Package platform contains OS and filesystem glue: existence checks,
// directory creation, durable file writes and destination path resolution.
