package bridge

import (
	"log"

	"github.com/sarchlab/axibridge/axi"
)

// A transfer holds the mutable registers of one in-flight transfer: the
// current local index, the current external byte address, and the burst and
// beat counters. A transfer is created when the bridge accepts a TransferReq
// and is discarded once the last burst's final beat or response is observed.
type transfer struct {
	req *TransferReq

	elemBytes   uint64
	maxBurstLen int

	// busAddr is the byte address of the next burst, advanced by
	// burstBeats*elemBytes after each completed burst.
	busAddr uint64

	// localIndex is the index of the next local memory word, advanced by one
	// per accepted beat.
	localIndex int

	// txnCount counts the bursts issued so far; the transfer is complete if
	// and only if txnCount == txnTarget.
	txnCount  int
	txnTarget int

	// burstBeats is the number of beats in the in-flight burst, and
	// beatsDone the number of beats accepted so far within it.
	burstBeats int
	beatsDone  int

	// maxTransfers is the beat count the write address engine publishes to
	// the write data engine once per burst.
	maxTransfers int
}

func newTransfer(req *TransferReq, elemBytes uint64, maxBurstLen int) *transfer {
	if req.ElementCount <= 0 {
		log.Panicf("transfer of %d elements is not possible", req.ElementCount)
	}

	return &transfer{
		req:         req,
		elemBytes:   elemBytes,
		maxBurstLen: maxBurstLen,
		busAddr:     req.BaseAddr,
		txnTarget:   axi.NumBursts(req.ElementCount, maxBurstLen),
	}
}

// nextBurstBeats returns the number of beats of the next burst to issue.
func (t *transfer) nextBurstBeats() int {
	return axi.BeatsInBurst(t.txnCount, t.req.ElementCount, t.maxBurstLen)
}

// burstAttr builds the address-channel fields of the next burst.
func (t *transfer) burstAttr() axi.BurstAttr {
	return axi.BurstAttr{
		Addr:        t.busAddr,
		LenMinusOne: uint8(t.nextBurstBeats() - 1),
		Size:        axi.SizeOf(t.elemBytes),
		Burst:       axi.BurstIncr,
	}
}

// beginBurst records that a burst of the given number of beats was accepted
// on the address channel.
func (t *transfer) beginBurst(beats int) {
	t.txnCount++
	if t.txnCount > t.txnTarget {
		log.Panicf("issued %d bursts for a %d-burst transfer",
			t.txnCount, t.txnTarget)
	}

	t.burstBeats = beats
	t.beatsDone = 0
	t.maxTransfers = beats
}

// endBurst advances the bus address past the completed burst and reports
// whether more bursts remain.
func (t *transfer) endBurst() (moreBursts bool) {
	t.busAddr += uint64(t.burstBeats) * t.elemBytes

	return t.txnCount < t.txnTarget
}

// lastBeatOfBurst reports whether the next beat is the final beat of the
// in-flight burst.
func (t *transfer) lastBeatOfBurst() bool {
	return t.beatsDone == t.burstBeats-1
}
