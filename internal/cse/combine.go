package cse

import (
	"math"

	"github.com/cespare/xxhash/v2"
)

// goldenRatio is the odd mixing constant from boost::hash_combine.
const goldenRatio = 0x9e3779b9

// combine mixes each hash into seed, left to right. Order matters.
func combine(seed *uint64, hashes ...uint64) {
	for _, h := range hashes {
		*seed ^= h + goldenRatio + (*seed << 6) + (*seed >> 2)
	}
}

func hashInt(v int64) uint64 {
	return uint64(v) //nolint:gosec // G115: reinterpreting bits is intended.
}

func hashInt32(v int32) uint64 {
	return hashInt(int64(v))
}

func hashUint(v uint64) uint64 {
	return v
}

func hashLen(n int) uint64 {
	return uint64(n) //nolint:gosec // G115: lengths are non-negative.
}

func hashByte(v uint8) uint64 {
	return uint64(v)
}

func hashString(s string) uint64 {
	return xxhash.Sum64String(s)
}

func hashBytes(b []byte) uint64 {
	return xxhash.Sum64(b)
}

// hashFloat32 hashes the bit pattern; both zeros hash to 0 because +0 == -0.
func hashFloat32(f float32) uint64 {
	if f == 0 {
		return 0
	}
	return uint64(math.Float32bits(f))
}

// hashFloat64 hashes the bit pattern; both zeros hash to 0 because +0 == -0.
func hashFloat64(f float64) uint64 {
	if f == 0 {
		return 0
	}
	return math.Float64bits(f)
}

// sequenceHash hashes a tag naming the sequence's role, its length, then each element.
// The tag keeps e.g. a shape from colliding with an int64 payload of the same values.
func sequenceHash[T any](tag string, s []T, hasher func(T) uint64) uint64 {
	var seed uint64
	combine(&seed, hashString(tag), hashLen(len(s)))
	for _, v := range s {
		combine(&seed, hasher(v))
	}
	return seed
}
