// Package domain contains the core business entities (users and tweets), their
// field constraints, and the validation errors they produce. It has no knowledge
// of HTTP or of how records are persisted.
package domain
