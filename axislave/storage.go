package axislave

import (
	"log"
)

// A Storage keeps the bytes behind the external bus.
//
// The storage is managed in pages. Pages that are never touched by Read or
// Write are not allocated.
type Storage struct {
	pageSize uint64
	capacity uint64
	pages    map[uint64][]byte
}

// NewStorage creates a storage with the given capacity in bytes.
func NewStorage(capacity uint64) *Storage {
	return &Storage{
		pageSize: 4096,
		capacity: capacity,
		pages:    make(map[uint64][]byte),
	}
}

// Capacity returns the capacity of the storage in bytes.
func (s *Storage) Capacity() uint64 {
	return s.capacity
}

func (s *Storage) page(addr uint64) []byte {
	if addr >= s.capacity {
		log.Panicf("address 0x%x is beyond the storage capacity 0x%x",
			addr, s.capacity)
	}

	base := addr - addr%s.pageSize
	page, ok := s.pages[base]
	if !ok {
		page = make([]byte, s.pageSize)
		s.pages[base] = page
	}

	return page
}

// Read returns n bytes starting at the given address.
func (s *Storage) Read(addr, n uint64) []byte {
	out := make([]byte, n)

	for copied := uint64(0); copied < n; {
		page := s.page(addr + copied)
		offset := (addr + copied) % s.pageSize
		copied += uint64(copy(out[copied:], page[offset:]))
	}

	return out
}

// Write stores the given bytes starting at the given address.
func (s *Storage) Write(addr uint64, data []byte) {
	for copied := uint64(0); copied < uint64(len(data)); {
		page := s.page(addr + copied)
		offset := (addr + copied) % s.pageSize
		copied += uint64(copy(page[offset:], data[copied:]))
	}
}
