// Package surface holds the state of one interactive slangify session. It
// is independent of any toolkit: the desktop GUI drives a Session and
// renders the snapshots it publishes.
package surface
