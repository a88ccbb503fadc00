// Package services defines the error taxonomy shared by the external
// collaborators (remote catalog API, importer script).
//
// Sentinel errors classify failures by how the run should react: ErrAuth and
// ErrMalformedArtifact abort the invocation, ErrExternalTool is absorbed into
// ledger records and the run continues, ErrConfiguration points at a config
// problem the user must fix.
package services
