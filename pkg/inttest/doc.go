// Package inttest starts the backing services of the CUFF backend in Docker for integration
// tests. Setup functions block until the service accepts connections and register cleanup with
// the test.
package inttest
