/*
Package spooky implements SpookyHash V2, Bob Jenkins' non-cryptographic
128-bit hash:

"SpookyHash: a 128-bit noncryptographic hash"
Bob Jenkins, http://burtleburtle.net/bob/hash/spooky.html

SpookyHash takes a byte range and a 128-bit seed (two uint64 halves) and
produces a 128-bit digest. The digest decomposes as two uint64 halves
(Hash128), a single uint64 (Hash64, equal to Hash128's first half when
seed1 == seed2), or the low 32 bits of that (Hash32).

Short and Long Paths

Inputs shorter than BufSize (192 bytes) are mixed with a 4-lane "short"
path (ShortMix, ShortEnd); everything else uses a 12-lane "long" path
(MixBlock, End) that absorbs 96-byte blocks. Both paths are exposed as
one-shot functions over a byte slice and as an incremental Hasher that
produces the same digest for a stream split into any sequence of Update
calls as the one-shot function would for the concatenation of those
chunks.

Incremental Hashing

Hasher holds twelve uint64 accumulators, a 192-byte staging buffer, and a
running length, switching internally between the short and long paths
the same way the one-shot functions do. Final reads this state without
mutating it, so it may be called repeatedly and interleaved with further
Update calls on the same stream. State and RestoreState snapshot and
resume a Hasher's underlying fields for hosts that need to park a
partial hash.

Standard Library Adapter

New and NewWithSeeds return a Hash128Sum (a hash.Hash extended with
Sum128), and NewHash64 returns a hash.Hash64, for code that wants to plug
SpookyHash into anything built against hash.Hash or hash.Hash64, such as the approximate-membership and
count-distinct sketches in the approx subpackage.

Non-goals

SpookyHash is not a cryptographic hash: it offers no collision
resistance against an adversarial input, and its digest is only portable
between implementations that share its little-endian byte-to-lane
convention.
*/
package spooky
