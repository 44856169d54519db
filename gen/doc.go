// Package gen is the netforge generation engine. Given a validated
// archetype configuration it composes a complete, buildable Go project
// as an in-memory FileSet and emits it under a target directory.
//
// The pipeline for one run is:
//
//	config -> Validate -> archetype generator -> FileSet -> Writer.Emit
//
// Three archetypes exist: a TCP echo server, a TCP worker-pool server and
// an HTTP service. The two TCP archetypes share the read-mode synthesizer,
// so the same ReadMode always produces identical framing code regardless
// of archetype. A run is synchronous and keeps no state; concurrent runs
// only need distinct target directories.
//
// Errors are structured: *ValidationError for rejected configs,
// *SynthesisError for validator/synthesizer contract violations,
// *GenerationError for composition failures and *EmitError for filesystem
// failures. Each matches its sentinel (ErrInvalidConfig and friends) via
// errors.Is.
package gen
