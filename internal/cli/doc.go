package cli

// Package cli wires configuration, logging and the download service into the
// asset-fetcher command line. Missing inputs are asked for interactively.
