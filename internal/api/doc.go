// Package api handles incoming HTTP requests, routing, request validation,
// and response formatting. It acts as an adapter between external clients
// and the learning engine, translating HTTP concerns to engine operations.
package api
