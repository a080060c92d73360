// Package hcl provides the HCL implementation of the config.Loader interface
// and an HCL renderer for metadata documents.
//
// A settings file declares the defaults in an `organization_defaults` block
// whose nested blocks mirror the value containers:
//
//	include = ["services/api"]
//
//	organization_defaults {
//	  group_id = "com.acme"
//	  licenses {
//	    license { type = "Apache-2.0" }
//	  }
//	}
//
// A project file holds exactly one `project "<name>"` block with the same
// body schema. Project expressions can refer to the registered defaults via
// the `defaults` variable, e.g. `group_id = "${defaults.group_id}.api"`.
package hcl
