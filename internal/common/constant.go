// Package common contains shared constants and sentinel errors used across
// service components.
package common

// AuthTokenHeaderName is the HTTP header that carries the bearer token on
// protected requests.
const AuthTokenHeaderName = "x-auth-token"
