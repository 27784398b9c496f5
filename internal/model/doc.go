package model

// Package model defines domain data structures used across the app: the
// manifest and its file descriptors, fetch plans, per-file fetch tasks and the
// batch report. Status values are explicit and transitions are one-way.
