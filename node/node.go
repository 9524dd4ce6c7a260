// Package node implements the byte layout of a leaf node: pure offset
// arithmetic over a page buffer, returning mutable sub-slices rather than
// copies so that callers write directly into the page.
package node

import (
	"encoding/binary"
	"unsafe"

	"vqlite/pager"
	"vqlite/row"
)

// Page is the buffer type node accessors operate on: the same type the
// pager hands out from GetPage.
type Page = pager.Page

// Node types. Only TypeLeaf is ever written; TypeInternal is reserved for
// future node-splitting support.
const (
	TypeInternal byte = 0
	TypeLeaf     byte = 1
)

// Common node header layout.
const (
	TypeSize         = unsafe.Sizeof(byte(0))
	TypeOffset       = 0
	IsRootSize       = unsafe.Sizeof(byte(0))
	IsRootOffset     = TypeOffset + int(TypeSize)
	ParentSize       = unsafe.Sizeof(uint32(0))
	ParentOffset     = IsRootOffset + int(IsRootSize)
	CommonHeaderSize = int(TypeSize) + int(IsRootSize) + int(ParentSize)
)

// Leaf node header layout.
const (
	NumCellsSize   = unsafe.Sizeof(uint32(0))
	NumCellsOffset = CommonHeaderSize
	HeaderSize     = NumCellsOffset + int(NumCellsSize)
)

// Leaf node body layout.
const (
	KeySize     = 4
	KeyOffset   = 0
	ValueSize   = row.Size
	ValueOffset = KeyOffset + KeySize
	CellSize    = KeySize + ValueSize

	SpaceForCells = pager.PageSize - HeaderSize
	MaxCells      = uint32(SpaceForCells / CellSize)
)

// NodeType returns the type byte at the start of the page.
func NodeType(p *Page) byte {
	return p[TypeOffset]
}

// SetNodeType writes the type byte.
func SetNodeType(p *Page, t byte) {
	p[TypeOffset] = t
}

// IsRoot reports whether the root flag is set.
func IsRoot(p *Page) bool {
	return p[IsRootOffset] != 0
}

// SetIsRoot sets or clears the root flag.
func SetIsRoot(p *Page, isRoot bool) {
	if isRoot {
		p[IsRootOffset] = 1
	} else {
		p[IsRootOffset] = 0
	}
}

// Parent returns the parent page number.
func Parent(p *Page) uint32 {
	return binary.LittleEndian.Uint32(p[ParentOffset : ParentOffset+int(ParentSize)])
}

// SetParent writes the parent page number.
func SetParent(p *Page, parent uint32) {
	binary.LittleEndian.PutUint32(p[ParentOffset:ParentOffset+int(ParentSize)], parent)
}

// NumCells returns the leaf's cell count.
func NumCells(p *Page) uint32 {
	return binary.LittleEndian.Uint32(p[NumCellsOffset : NumCellsOffset+int(NumCellsSize)])
}

// SetNumCells writes the leaf's cell count.
func SetNumCells(p *Page, n uint32) {
	binary.LittleEndian.PutUint32(p[NumCellsOffset:NumCellsOffset+int(NumCellsSize)], n)
}

// Cell returns the full key+value span for cell i.
func Cell(p *Page, i uint32) []byte {
	off := HeaderSize + int(i)*CellSize
	return p[off : off+CellSize]
}

// Key returns the 4-byte key span for cell i.
func Key(p *Page, i uint32) []byte {
	return Cell(p, i)[KeyOffset : KeyOffset+KeySize]
}

// KeyAt returns cell i's key as a uint32.
func KeyAt(p *Page, i uint32) uint32 {
	return binary.LittleEndian.Uint32(Key(p, i))
}

// SetKeyAt writes cell i's key.
func SetKeyAt(p *Page, i uint32, key uint32) {
	binary.LittleEndian.PutUint32(Key(p, i), key)
}

// Value returns the row.Size-byte value span for cell i.
func Value(p *Page, i uint32) []byte {
	return Cell(p, i)[ValueOffset : ValueOffset+ValueSize]
}

// InitializeLeaf resets a page to an empty leaf node: zero cells, leaf
// type byte always set explicitly so a freshly-allocated page is
// distinguishable from an uninitialized/internal one.
func InitializeLeaf(p *Page) {
	SetNodeType(p, TypeLeaf)
	SetIsRoot(p, false)
	SetNumCells(p, 0)
}
