// Package logger wraps zap with a global sugared logger and a context carrier.
//
// Services receive a context and log through it, so a name or fields attached
// with WithName and WithKV follow the request into every helper it calls.
package logger
