package axi

import "log"

// NumBursts returns the number of bursts needed to transfer the given number
// of elements, with at most maxBurstLen beats per burst.
func NumBursts(elementCount, maxBurstLen int) int {
	if maxBurstLen <= 0 || maxBurstLen > MaxBurstLen {
		log.Panicf("max burst length %d out of range", maxBurstLen)
	}

	return (elementCount + maxBurstLen - 1) / maxBurstLen
}

// BeatsInBurst returns the number of beats in the burstIndex-th burst of a
// transfer. Every burst carries maxBurstLen beats except possibly the
// trailing one.
func BeatsInBurst(burstIndex, elementCount, maxBurstLen int) int {
	remaining := elementCount - burstIndex*maxBurstLen

	if remaining <= 0 {
		log.Panicf("burst %d does not exist in a %d-element transfer",
			burstIndex, elementCount)
	}

	if remaining > maxBurstLen {
		return maxBurstLen
	}

	return remaining
}

// SizeOf returns the AxSIZE encoding for the given number of bytes per beat.
func SizeOf(beatBytes uint64) uint8 {
	size := uint8(0)
	for b := uint64(1); b < beatBytes; b <<= 1 {
		size++
	}

	if uint64(1)<<size != beatBytes {
		log.Panicf("beat size %d is not a power of two", beatBytes)
	}

	return size
}
