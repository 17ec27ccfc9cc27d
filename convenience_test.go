package spooky

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashStringMatchesHashBytes(t *testing.T) {
	s := "the quick brown fox jumps over the lazy dog"
	h1, h2 := HashString(s, scConst, scConst)
	w1, w2 := Hash128([]byte(s), scConst, scConst)
	assert.Equal(t, w1, h1)
	assert.Equal(t, w2, h2)
}

func TestHashStringEmptyIsNotNilDigest(t *testing.T) {
	h1, h2 := HashString("", scConst, scConst)
	n1, n2 := Hash128(nil, scConst, scConst)
	assert.False(t, h1 == n1 && h2 == n2, "empty string hashed to the nil-input sentinel")
}

func TestHashRangeBoundsChecking(t *testing.T) {
	data := fixedInput(10)
	_, _, err := HashRange(data, 3, 5, 1, 2)
	assert.NoError(t, err)

	_, _, err = HashRange(data, -1, 5, 1, 2)
	assert.ErrorIs(t, err, ErrRangeOutOfBounds)

	_, _, err = HashRange(data, 8, 5, 1, 2)
	assert.ErrorIs(t, err, ErrRangeOutOfBounds)

	_, _, err = HashRange(data, 0, -1, 1, 2)
	assert.ErrorIs(t, err, ErrRangeOutOfBounds)
}

func TestHashRangeMatchesSlice(t *testing.T) {
	data := fixedInput(40)
	got1, got2, err := HashRange(data, 10, 20, 5, 6)
	assert.NoError(t, err)
	want1, want2 := Hash128(data[10:30], 5, 6)
	assert.Equal(t, want1, got1)
	assert.Equal(t, want2, got2)
}

func TestHashStringSequenceDistinguishesAbsentFromEmpty(t *testing.T) {
	a, b := "a", ""
	withEmpty := []*string{&a, &b}
	withAbsent := []*string{&a, nil}

	h1, h2 := HashStringSequence(withEmpty, scConst, scConst)
	g1, g2 := HashStringSequence(withAbsent, scConst, scConst)
	assert.False(t, h1 == g1 && h2 == g2, "present empty string hashed the same as an absent element")
}

func TestHashStringSequenceDeterministic(t *testing.T) {
	a, c := "ab", "c"
	items := []*string{&a, &c}
	h1, h2 := HashStringSequence(items, 1, 1)
	g1, g2 := HashStringSequence(items, 1, 1)
	assert.Equal(t, h1, g1)
	assert.Equal(t, h2, g2)
}
