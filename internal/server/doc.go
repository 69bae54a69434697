// Package server exposes the request boundary as a JSON HTTP API built on
// fiber. Successful replies carry {"data": ...}; failures carry
// {"error": "..."} with status 400 for invalid input and 500 otherwise.
package server
