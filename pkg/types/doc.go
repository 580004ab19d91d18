// Package types defines the Store interface, open and write flags, backend
// configuration, and standard errors for the prefkit preferences system.
package types
