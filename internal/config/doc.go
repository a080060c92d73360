// Package config defines the format-agnostic configuration model for the
// application, along with the Loader interface for reading it from files.
//
// A build is described by one settings file at its root, which declares the
// organization defaults and optionally lists the subordinate projects, and by
// one project file per subordinate project, which carries that project's
// overrides. Concrete loaders for HCL and YAML live in separate packages; the
// ByExtension loader dispatches between them.
package config
