// Package boundary is the request boundary between the surfaces (desktop,
// HTTP, Lambda, CLI) and the capability functions. It validates caller
// input, invokes exactly one capability and converts failures into an
// *Error whose message is safe to show to users. Underlying causes are
// logged and stay reachable through errors.Unwrap, but never leak into
// Error().
package boundary
