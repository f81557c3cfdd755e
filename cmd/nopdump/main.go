// Command nopdump prints the prefix/length structure of an encoded nop
// stream, recursing into every self-describing shape (array, map, binary,
// string, variant, table, record) without needing the original declared
// type. It is a debugging aid, not part of the wire format itself.
package main

import (
	"bufio"
	"encoding/binary"
	"encoding/hex"
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/arloliu/nop/ioadapter"
	"github.com/arloliu/nop/wire"
)

func main() {
	file := flag.String("file", "", "path to a file containing a single encoded nop value")
	maxDepth := flag.Int("max-depth", 32, "recursion guard for nested containers")
	maxBytes := flag.Int("max-inline-bytes", 32, "max raw bytes printed inline for a Binary/String value before truncation")

	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "Error: -file is required")
		os.Exit(1)
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", *file, err)
		os.Exit(1)
	}

	buf := ioadapter.NewBufferFromBytes(data)
	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	d := &dumper{r: buf.AsReader(), out: out, maxDepth: *maxDepth, maxInlineBytes: *maxBytes}
	if err := d.value(0); err != nil {
		out.Flush()
		fmt.Fprintf(os.Stderr, "Error at byte offset %d: %v\n", d.consumed, err)
		os.Exit(1)
	}
}

// reader is the minimal transport dumper needs; ioadapter.BufferReader and
// a bounded.Reader both satisfy it structurally.
type reader interface {
	ReadByte() (byte, error)
	Read(p []byte) error
	Ensure(n int) error
	Skip(n int) error
}

type dumper struct {
	r              reader
	out            *bufio.Writer
	maxDepth       int
	maxInlineBytes int
	consumed       int
}

func (d *dumper) readByte() (byte, error) {
	b, err := d.r.ReadByte()
	if err == nil {
		d.consumed++
	}

	return b, err
}

func (d *dumper) readN(n int) ([]byte, error) {
	if err := d.r.Ensure(n); err != nil {
		return nil, err
	}

	p := make([]byte, n)
	if err := d.r.Read(p); err != nil {
		return nil, err
	}

	d.consumed += n

	return p, nil
}

// varUint reads one smallest-prefix-encoded unsigned integer: an inline
// fixint byte, or a width prefix followed by that many little-endian bytes.
// Only a handle's type tag and reference are encoded this way; lengths,
// counts, ids, and hashes are raw fields read by rawUint64.
func (d *dumper) varUint() (uint64, error) {
	b, err := d.readByte()
	if err != nil {
		return 0, err
	}

	p := wire.Prefix(b)
	if p.IsPositiveFixInt() {
		return uint64(p.InlineValue()), nil
	}

	switch p {
	case wire.U8:
		raw, err := d.readN(1)
		if err != nil {
			return 0, err
		}

		return uint64(raw[0]), nil
	case wire.U16:
		raw, err := d.readN(2)
		if err != nil {
			return 0, err
		}

		return uint64(binary.LittleEndian.Uint16(raw)), nil
	case wire.U32:
		raw, err := d.readN(4)
		if err != nil {
			return 0, err
		}

		return uint64(binary.LittleEndian.Uint32(raw)), nil
	case wire.U64:
		raw, err := d.readN(8)
		if err != nil {
			return 0, err
		}

		return binary.LittleEndian.Uint64(raw), nil
	default:
		return 0, fmt.Errorf("expected a uint prefix, got %s (0x%02x)", p, b)
	}
}

// rawUint64 reads a bare 8-byte little-endian field with no prefix byte of
// its own: every length/count/id/hash framing field (container lengths,
// structure member counts, table hash/entry-count/id/payload-size) is
// written this fixed width, unlike an ordinary value, which goes through
// the smallest-prefix encoding varUint decodes.
func (d *dumper) rawUint64() (uint64, error) {
	raw, err := d.readN(8)
	if err != nil {
		return 0, err
	}

	return binary.LittleEndian.Uint64(raw), nil
}

// rawInt32 reads a bare 4-byte little-endian field with no prefix byte of
// its own, the shape a variant's index is written in.
func (d *dumper) rawInt32() (int32, error) {
	raw, err := d.readN(4)
	if err != nil {
		return 0, err
	}

	return int32(binary.LittleEndian.Uint32(raw)), nil
}

func indent(depth int) string {
	s := make([]byte, depth*2)
	for i := range s {
		s[i] = ' '
	}

	return string(s)
}

// value dumps one self-describing value at the current stream position,
// printed with the given indentation depth.
func (d *dumper) value(depth int) error {
	if depth > d.maxDepth {
		return fmt.Errorf("max recursion depth %d exceeded", d.maxDepth)
	}

	b, err := d.readByte()
	if err != nil {
		return err
	}

	p := wire.Prefix(b)
	ind := indent(depth)

	switch {
	case p.IsPositiveFixInt(), p.IsNegativeFixInt():
		fmt.Fprintf(d.out, "%sFixInt %d\n", ind, p.InlineValue())
		return nil
	case p.IsReserved():
		return fmt.Errorf("reserved prefix byte 0x%02x", b)
	}

	switch p {
	case wire.U8, wire.U16, wire.U32, wire.U64:
		return d.fixedUint(ind, p)
	case wire.I8, wire.I16, wire.I32, wire.I64:
		return d.fixedInt(ind, p)
	case wire.F32:
		raw, err := d.readN(4)
		if err != nil {
			return err
		}

		fmt.Fprintf(d.out, "%sF32 %g\n", ind, math.Float32frombits(binary.LittleEndian.Uint32(raw)))

		return nil
	case wire.F64:
		raw, err := d.readN(8)
		if err != nil {
			return err
		}

		fmt.Fprintf(d.out, "%sF64 %g\n", ind, math.Float64frombits(binary.LittleEndian.Uint64(raw)))

		return nil
	case wire.Nil:
		fmt.Fprintf(d.out, "%sNil\n", ind)
		return nil
	case wire.Binary:
		return d.binaryLike(ind, "Binary")
	case wire.String:
		return d.binaryLike(ind, "String")
	case wire.Array:
		return d.array(ind, depth)
	case wire.Map:
		return d.mapValue(ind, depth)
	case wire.Variant:
		return d.variant(ind, depth)
	case wire.ErrorKind:
		fmt.Fprintf(d.out, "%sError\n", ind)
		return d.value(depth + 1)
	case wire.Handle:
		return d.handle(ind)
	case wire.Structure:
		return d.structure(ind, depth)
	case wire.Table:
		return d.table(ind, depth)
	case wire.Extension:
		fmt.Fprintf(d.out, "%sExtension (opaque, no declared length to skip)\n", ind)
		return nil
	default:
		return fmt.Errorf("unhandled prefix %s (0x%02x)", p, b)
	}
}

func (d *dumper) fixedUint(ind string, p wire.Prefix) error {
	widths := map[wire.Prefix]int{wire.U8: 1, wire.U16: 2, wire.U32: 4, wire.U64: 8}
	raw, err := d.readN(widths[p])
	if err != nil {
		return err
	}

	var v uint64
	switch len(raw) {
	case 1:
		v = uint64(raw[0])
	case 2:
		v = uint64(binary.LittleEndian.Uint16(raw))
	case 4:
		v = uint64(binary.LittleEndian.Uint32(raw))
	case 8:
		v = binary.LittleEndian.Uint64(raw)
	}

	fmt.Fprintf(d.out, "%s%s %d\n", ind, p, v)

	return nil
}

func (d *dumper) fixedInt(ind string, p wire.Prefix) error {
	widths := map[wire.Prefix]int{wire.I8: 1, wire.I16: 2, wire.I32: 4, wire.I64: 8}
	raw, err := d.readN(widths[p])
	if err != nil {
		return err
	}

	var v int64
	switch len(raw) {
	case 1:
		v = int64(int8(raw[0]))
	case 2:
		v = int64(int16(binary.LittleEndian.Uint16(raw)))
	case 4:
		v = int64(int32(binary.LittleEndian.Uint32(raw)))
	case 8:
		v = int64(binary.LittleEndian.Uint64(raw))
	}

	fmt.Fprintf(d.out, "%s%s %d\n", ind, p, v)

	return nil
}

func (d *dumper) binaryLike(ind, label string) error {
	n, err := d.rawUint64()
	if err != nil {
		return err
	}

	raw, err := d.readN(int(n))
	if err != nil {
		return err
	}

	if label == "String" {
		s := string(raw)
		if len(s) > d.maxInlineBytes {
			s = s[:d.maxInlineBytes] + "..."
		}

		fmt.Fprintf(d.out, "%s%s len=%d %q\n", ind, label, n, s)

		return nil
	}

	shown := raw
	truncated := false
	if len(shown) > d.maxInlineBytes {
		shown = shown[:d.maxInlineBytes]
		truncated = true
	}

	suffix := ""
	if truncated {
		suffix = "..."
	}

	fmt.Fprintf(d.out, "%s%s len=%d %s%s\n", ind, label, n, hex.EncodeToString(shown), suffix)

	return nil
}

func (d *dumper) array(ind string, depth int) error {
	n, err := d.rawUint64()
	if err != nil {
		return err
	}

	fmt.Fprintf(d.out, "%sArray len=%d\n", ind, n)

	for i := uint64(0); i < n; i++ {
		if err := d.value(depth + 1); err != nil {
			return err
		}
	}

	return nil
}

func (d *dumper) mapValue(ind string, depth int) error {
	n, err := d.rawUint64()
	if err != nil {
		return err
	}

	fmt.Fprintf(d.out, "%sMap len=%d\n", ind, n)

	for i := uint64(0); i < n; i++ {
		fmt.Fprintf(d.out, "%s  [%d] key:\n", ind, i)
		if err := d.value(depth + 2); err != nil {
			return err
		}

		fmt.Fprintf(d.out, "%s  [%d] value:\n", ind, i)
		if err := d.value(depth + 2); err != nil {
			return err
		}
	}

	return nil
}

func (d *dumper) variant(ind string, depth int) error {
	index, err := d.rawInt32()
	if err != nil {
		return err
	}

	fmt.Fprintf(d.out, "%sVariant index=%d\n", ind, index)

	return d.value(depth + 1)
}

func (d *dumper) handle(ind string) error {
	typeTag, err := d.varUint()
	if err != nil {
		return err
	}

	ref, err := d.varUint()
	if err != nil {
		return err
	}

	fmt.Fprintf(d.out, "%sHandle type=%d ref=%d\n", ind, typeTag, ref)

	return nil
}

func (d *dumper) structure(ind string, depth int) error {
	n, err := d.rawUint64()
	if err != nil {
		return err
	}

	fmt.Fprintf(d.out, "%sStructure members=%d\n", ind, n)

	for i := uint64(0); i < n; i++ {
		if err := d.value(depth + 1); err != nil {
			return err
		}
	}

	return nil
}

func (d *dumper) table(ind string, depth int) error {
	hash, err := d.rawUint64()
	if err != nil {
		return err
	}

	count, err := d.rawUint64()
	if err != nil {
		return err
	}

	fmt.Fprintf(d.out, "%sTable hash=0x%016x entries=%d\n", ind, hash, count)

	for i := uint64(0); i < count; i++ {
		id, err := d.rawUint64()
		if err != nil {
			return err
		}

		size, err := d.rawUint64()
		if err != nil {
			return err
		}

		fmt.Fprintf(d.out, "%s  [id=%d size=%d]\n", ind, id, size)

		entryStart := d.consumed
		if err := d.value(depth + 2); err != nil {
			return err
		}

		consumedInEntry := d.consumed - entryStart
		if pad := int(size) - consumedInEntry; pad > 0 {
			if err := d.r.Skip(pad); err != nil {
				return err
			}

			d.consumed += pad
		}
	}

	return nil
}
