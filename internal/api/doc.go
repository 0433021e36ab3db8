// Package api contains the HTTP handlers. Each handler decodes and validates
// its request, calls a service and maps the outcome to a status code and a
// JSON body. Errors are turned into responses by HandleAPIError, which never
// returns internal error text to the client.
package api
