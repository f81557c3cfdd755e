// Package compress provides optional compression codecs for a table
// entry's or record member's already-encoded payload: a second-stage,
// general-purpose pass applied after the wire codec and before the bytes
// are framed by a bounded sub-writer.
//
// # Supported algorithms
//
//   - None: no compression, for payloads that are already incompressible
//     or where CPU matters more than size.
//   - Zstd: best compression ratio, moderate speed; good for payloads
//     written once and read rarely.
//   - S2: balanced speed and ratio; good for payloads on a hot write path.
//   - LZ4: fastest decompression; good for read-heavy payloads.
//
// Every Codec implements the same Compressor/Decompressor contract, so a
// caller can select an algorithm by Type at declaration time and treat it
// as an interchangeable decorator around a []byte payload. Callers needing
// a Reader/Writer-shaped adapter instead should wrap one of these codecs
// with their own io.Reader/io.Writer at the call site; this package only
// concerns itself with whole-payload compression, since table entries and
// record members are always framed as a single bounded byte range.
package compress
