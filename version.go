package main

// Version is overridden at build time, see tools/build-version.go.
var Version = "0.0.0-unknown"
