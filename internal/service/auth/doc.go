// Package auth holds the credential checks used by the user service.
package auth
