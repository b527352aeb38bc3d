// Package errors defines error types for the engine bridge.
//
// Every failure the bridge can hit has a typed error here, and every typed
// error knows the ResultCode it surfaces as at the GetBestMove boundary.
// All error types support unwrapping and can be checked using errors.Is,
// errors.As, and errors.AsType.
package errors
