// Package yamlcfg implements config.Loader for YAML settings and project
// files.
//
// YAML has no expression language, so scalar values are expanded with
// ${NAME} references instead: ${defaults.<field>} resolves to a scalar of the
// registered defaults (project files only) and any other name resolves to an
// environment variable. "$${" escapes a literal "${"; a "$" that does not
// start a reference is left untouched.
package yamlcfg
