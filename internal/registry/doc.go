// Package registry provides the single point of truth for the defaults of one
// build session.
//
// The Registry holds exactly one metadata.Document. It starts out
// unregistered, in which state every Fetch returns the empty Document, and is
// populated at most once by the bootstrap collaborator. Later registrations
// are ignored (first wins), or rejected with ErrAlreadyRegistered when the
// registry was created with WithStrict.
//
// Publication is a single atomic pointer store of a fully built, privately
// owned copy, so any number of concurrent readers observe either the empty
// state or the complete Document, never a partially written one.
package registry
