package bbit

// ScanMode selects one of the four enumeration orders every scanning
// bitset supports.
type ScanMode int

const (
	// NonDestructive scans forward, low to high, without modifying the
	// bitset. The cursor caches the last-returned (block, offset); the
	// next step resumes strictly after that position.
	NonDestructive ScanMode = iota
	// NonDestructiveReverse scans high to low, without modifying the bitset.
	NonDestructiveReverse
	// Destructive scans forward, clearing each returned bit before it is
	// returned. The cursor caches only the current block.
	Destructive
	// DestructiveReverse scans high to low, clearing each returned bit.
	DestructiveReverse
)

// Cursor is the per-bitset scan state: (block index, bit offset).
// InitScan resets it to (noBit, maskLim) via newCursor before seeding it
// for the chosen mode. A bitset that has never been scanned holds the
// zero Cursor, (0, 0), not (noBit, maskLim).
type Cursor struct {
	block  int
	offset int
	mode   ScanMode
	inited bool
}

func newCursor() Cursor {
	return Cursor{block: noBit, offset: maskLim}
}

// Scanner is the uniform scan contract both Dense and Sparse implement,
// so callers can enumerate set bits without knowing the backing storage.
type Scanner interface {
	InitScan(mode ScanMode)
	InitScanFrom(firstBit int, mode ScanMode) error
	Next() int
	NextPaired(other Scanner) int
}

// --- Dense scanning -------------------------------------------------

// InitScan seeds the scan cursor for mode. Forward modes start at block
// 0; reverse modes start at the last block.
func (d *Dense) InitScan(mode ScanMode) {
	d.cursor = newCursor()
	d.cursor.mode = mode
	d.cursor.inited = true
	switch mode {
	case NonDestructive:
		d.cursor.block = 0
		d.cursor.offset = noBit // next() starts scanning from offset 0
	case NonDestructiveReverse:
		d.cursor.block = len(d.words) - 1
		d.cursor.offset = maskLim // next() starts scanning from offset 63 down
	case Destructive:
		d.cursor.block = 0
	case DestructiveReverse:
		d.cursor.block = len(d.words) - 1
	}
}

// InitScanFrom seeds the cursor so the next Next() call returns the first
// set bit strictly after firstBit (or the bitset's extremum, if
// firstBit == noBit). Only defined for the two non-destructive modes;
// starting a destructive scan from a given position is unsupported and
// rejected outright.
func (d *Dense) InitScanFrom(firstBit int, mode ScanMode) error {
	if mode != NonDestructive && mode != NonDestructiveReverse {
		return errUnsupportedScanFrom
	}
	if firstBit == noBit {
		d.InitScan(mode)
		return nil
	}
	d.cursor = newCursor()
	d.cursor.mode = mode
	d.cursor.inited = true
	d.cursor.block = wordIndex(firstBit)
	d.cursor.offset = bitOffset(firstBit)
	return nil
}

// Next returns the next set bit in scan order, or noBit if exhausted.
func (d *Dense) Next() int {
	switch d.cursor.mode {
	case NonDestructive:
		return d.nextForward()
	case NonDestructiveReverse:
		return d.nextReverse()
	case Destructive:
		return d.nextDestructive()
	case DestructiveReverse:
		return d.nextDestructiveReverse()
	default:
		return noBit
	}
}

// NextPaired behaves like Next but also clears the returned bit from
// other at the same global index, when other is itself a *Dense. Used
// by inner loops that track a parallel candidate set alongside the one
// being scanned.
func (d *Dense) NextPaired(other Scanner) int {
	b := d.Next()
	if b == noBit {
		return noBit
	}
	if od, ok := other.(*Dense); ok && od.Is(b) {
		od.Erase(b)
	}
	return b
}

func (d *Dense) nextForward() int {
	blk, off := d.cursor.block, d.cursor.offset
	for blk < len(d.words) {
		w := d.words[blk]
		w = trimLow(w, off+1)
		if w != 0 {
			p := lsb(w)
			d.cursor.block = blk
			d.cursor.offset = p
			return blk*64 + p
		}
		blk++
		off = -1
	}
	d.cursor.block = len(d.words)
	d.cursor.offset = noBit
	return noBit
}

func (d *Dense) nextReverse() int {
	blk, off := d.cursor.block, d.cursor.offset
	for blk >= 0 {
		w := d.words[blk]
		if off < 64 {
			w = trimHigh(w, off-1)
		}
		if w != 0 {
			p := msb(w)
			d.cursor.block = blk
			d.cursor.offset = p
			return blk*64 + p
		}
		blk--
		off = 64
	}
	d.cursor.block = noBit
	d.cursor.offset = noBit
	return noBit
}

func (d *Dense) nextDestructive() int {
	blk := d.cursor.block
	for blk < len(d.words) {
		w := d.words[blk]
		if w != 0 {
			p := lsb(w)
			d.words[blk] &^= maskBit(p)
			d.cursor.block = blk
			return blk*64 + p
		}
		blk++
	}
	d.cursor.block = len(d.words)
	return noBit
}

func (d *Dense) nextDestructiveReverse() int {
	blk := d.cursor.block
	for blk >= 0 {
		w := d.words[blk]
		if w != 0 {
			p := msb(w)
			d.words[blk] &^= maskBit(p)
			d.cursor.block = blk
			return blk*64 + p
		}
		blk--
	}
	d.cursor.block = noBit
	return noBit
}

// --- Sparse scanning -------------------------------------------------

// InitScan seeds the scan cursor for mode. Forward modes start at the
// first record; reverse modes start at the last. Non-destructive modes
// on an empty sparse bitset are a harmless no-op (Next simply returns
// noBit); destructive modes on an empty bitset panic, since there is no
// record vector left to index. Use InitScanChecked for the fallible form.
func (s *Sparse) InitScan(mode ScanMode) {
	if err := s.InitScanChecked(mode); err != nil && (mode == Destructive || mode == DestructiveReverse) {
		panic(err)
	}
}

// InitScanChecked is InitScan's fallible form: it returns ErrScanOnEmpty
// rather than panicking, for any mode, when the bitset is currently
// empty, so callers in configurations that want to treat an empty scan
// as ordinary end-of-iteration can do so.
func (s *Sparse) InitScanChecked(mode ScanMode) error {
	s.cursor = newCursor()
	s.cursor.mode = mode
	s.cursor.inited = true

	if len(s.records) == 0 {
		s.scanPos = 0
		if mode == NonDestructiveReverse || mode == DestructiveReverse {
			s.scanPos = -1
		}
		return ErrScanOnEmpty
	}

	switch mode {
	case NonDestructive:
		s.scanPos = 0
		s.cursor.offset = noBit
	case NonDestructiveReverse:
		s.scanPos = len(s.records) - 1
		s.cursor.offset = maskLim
	case Destructive:
		s.scanPos = 0
	case DestructiveReverse:
		s.scanPos = len(s.records) - 1
	}
	return nil
}

// InitScanFrom seeds the cursor so the next Next() call returns the
// first set bit strictly after firstBit. Only defined for the two
// non-destructive modes.
func (s *Sparse) InitScanFrom(firstBit int, mode ScanMode) error {
	if mode != NonDestructive && mode != NonDestructiveReverse {
		return errUnsupportedScanFrom
	}
	if firstBit == noBit {
		return s.InitScanChecked(mode)
	}
	s.cursor = newCursor()
	s.cursor.mode = mode
	s.cursor.inited = true

	idx, off := wordIndex(firstBit), bitOffset(firstBit)
	_, pos := s.findBlockPos(idx)
	s.scanPos = pos
	if pos < len(s.records) && s.records[pos].idx == idx {
		s.cursor.offset = off
	} else if mode == NonDestructive {
		s.cursor.offset = noBit // resume from the start of this record
	} else {
		s.scanPos = pos - 1 // resume from the end of the previous record
		s.cursor.offset = maskLim
	}
	return nil
}

// Next returns the next set bit in scan order, or noBit if exhausted.
func (s *Sparse) Next() int {
	switch s.cursor.mode {
	case NonDestructive:
		return s.nextForward()
	case NonDestructiveReverse:
		return s.nextReverse()
	case Destructive:
		return s.nextDestructive()
	case DestructiveReverse:
		return s.nextDestructiveReverse()
	default:
		return noBit
	}
}

// NextPaired behaves like Next but also clears the returned bit from
// other, when other is itself a *Sparse.
func (s *Sparse) NextPaired(other Scanner) int {
	b := s.Next()
	if b == noBit {
		return noBit
	}
	if os, ok := other.(*Sparse); ok && os.Is(b) {
		os.Erase(b)
	}
	return b
}

func (s *Sparse) nextForward() int {
	for s.scanPos < len(s.records) {
		r := s.records[s.scanPos]
		w := trimLow(r.bits, s.cursor.offset+1)
		if w != 0 {
			p := lsb(w)
			s.cursor.offset = p
			return r.idx*64 + p
		}
		s.scanPos++
		s.cursor.offset = noBit
	}
	return noBit
}

func (s *Sparse) nextReverse() int {
	for s.scanPos >= 0 {
		r := s.records[s.scanPos]
		w := r.bits
		if s.cursor.offset < 64 {
			w = trimHigh(w, s.cursor.offset-1)
		}
		if w != 0 {
			p := msb(w)
			s.cursor.offset = p
			return r.idx*64 + p
		}
		s.scanPos--
		s.cursor.offset = maskLim
	}
	return noBit
}

func (s *Sparse) nextDestructive() int {
	for s.scanPos < len(s.records) {
		r := &s.records[s.scanPos]
		if r.bits != 0 {
			p := lsb(r.bits)
			r.bits &^= maskBit(p)
			idx := r.idx
			if r.bits == 0 {
				s.records = append(s.records[:s.scanPos], s.records[s.scanPos+1:]...)
			}
			return idx*64 + p
		}
		s.scanPos++
	}
	return noBit
}

func (s *Sparse) nextDestructiveReverse() int {
	for s.scanPos >= 0 {
		r := &s.records[s.scanPos]
		if r.bits != 0 {
			p := msb(r.bits)
			r.bits &^= maskBit(p)
			idx := r.idx
			if r.bits == 0 {
				s.records = append(s.records[:s.scanPos], s.records[s.scanPos+1:]...)
				s.scanPos--
			}
			return idx*64 + p
		}
		s.scanPos--
	}
	return noBit
}
