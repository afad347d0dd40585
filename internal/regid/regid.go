// Package regid generates the human-facing registration codes handed out to
// participants.  Codes look like "C25-7KQX2MNP": a fixed fest prefix and an
// 8-character random suffix drawn from an alphabet with the visually
// confusable symbols (0/O, 1/I) removed, so codes survive being read out
// loud at a help desk.
package regid

import gonanoid "github.com/matoous/go-nanoid/v2"

const (
	// Prefix is prepended to every generated code.
	Prefix = "C25-"

	// Alphabet holds the 32 symbols a suffix may use.
	Alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

	// SuffixLen is the number of random symbols after the prefix.
	// 32^8 ≈ 1.1e12 combinations; collisions are handled by the unique
	// index on the registrations table plus a retry in the create path.
	SuffixLen = 8
)

// Generate returns a fresh registration code.  It never blocks on anything
// but the OS entropy source.
func Generate() string {
	return Prefix + gonanoid.MustGenerate(Alphabet, SuffixLen)
}
