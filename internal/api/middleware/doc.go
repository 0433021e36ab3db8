// Package middleware provides HTTP middleware shared by all routes.
package middleware
