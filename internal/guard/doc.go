// Package guard implements the pre-build artifact gate.
//
// A run is linear and terminal:
//
//	artifact present?      yes -> skipped (exit 0)
//	toolchain available?   no  -> toolchain missing (exit 1)
//	toolchain build        ok  -> built (exit 0)
//	                       err -> build failed (subprocess code, or 1)
//
// Nothing is retried and no partial output is cleaned up; producing the
// artifact is entirely delegated to the toolchain.
package guard
