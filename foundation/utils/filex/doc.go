// Package filex provides file helpers for the mRW platform.
//
// Package: filex
// Title: File Operations for mRW
// Description: Existence checks, directory creation and atomic file
//              replacement used by the history persistence layer.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation with comprehensive file utilities
// - 2026-10-18 v0.2.0: Reduced to the helpers used by mRW, added WriteAtomic
//
// # Atomic writes
//
// WriteAtomic streams content into a temporary file in the target directory
// and renames it over the target only after the content was written and
// synced. Readers see either the old or the new file, never a partial one:
//
//	err := filex.WriteAtomic("data/history.csv", 0644, func(w io.Writer) error {
//	    _, err := io.WriteString(w, "operator,operand_a,operand_b,result\n")
//	    return err
//	})
package filex
