// Package auth holds the credential and session model of the API: bcrypt
// password hashing, HS256 session tokens and the ownership gate applied to
// mutating recipe operations.
package auth
