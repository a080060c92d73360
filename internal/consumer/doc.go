// Package consumer reconstitutes the registry's defaults for one dependent
// project, applying that project's local overrides.
//
// Merge rule, per field:
//
//   - scalars: a non-empty override wins, otherwise the defaults value,
//     otherwise unset;
//   - list groups (licenses, developers, mailing lists): a declared override
//     list replaces the defaults list as a whole (or is appended to it under
//     the Append strategy);
//   - singletons (organization, issue management, scm): a set override
//     replaces the defaults value as a whole.
//
// Merging is pure: it never mutates either input and always returns a new
// Document.
package consumer
