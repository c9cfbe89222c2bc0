// Package inttest enables writing of integration tests. Sets up a Docker
// container for PostgreSQL, ensures it is ready before returning and cleans it
// up after the tests are finished.
package inttest
