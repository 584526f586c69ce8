// Package platform provides cross-platform filesystem operations: directory
// creation with post-verification, hard linking with a copy fallback, atomic
// file replacement, and permission management. On Windows, Chmod is a no-op
// and LinkFile falls back to copying when hard links are unavailable.
package platform
