// Package processor runs the slangify commands. It builds the model client,
// speech provider, capability functions and request boundary from the
// loaded configuration and prints results for one-shot commands, or hands
// the boundary to the desktop GUI or the HTTP server.
package processor
