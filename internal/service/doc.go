// Package service contains the application use cases. It orchestrates the
// domain types, the store interfaces and password hashing to implement user
// registration and login, profile management and tweet posting.
//
// Services receive their dependencies through constructor injection and never
// depend on a concrete store backend. Errors from the store are wrapped with
// fmt.Errorf("...: %w") so the api package can still match them with errors.Is.
package service
