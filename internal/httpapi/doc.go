// Package httpapi exposes the application operations as a local JSON REST
// API for a host UI. Every handler is a thin adapter over internal/services;
// errors are mapped to HTTP statuses by their sentinel kind.
package httpapi
