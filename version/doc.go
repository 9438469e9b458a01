// Package version reports which pariter build is linked into the running
// binary, read from the embedded build info or set via -ldflags. The
// version is attached to every span and metric pariter emits.
package version
