package compress

// Type identifies a compression algorithm a Codec implements. It is stored
// alongside a compressed payload (for example as a table entry's leading
// byte) so a decoder knows which Codec to hand the remaining bytes to.
type Type uint8

const (
	None Type = 0x1
	Zstd Type = 0x2
	S2   Type = 0x3
	LZ4  Type = 0x4
)

func (t Type) String() string {
	switch t {
	case None:
		return "None"
	case Zstd:
		return "Zstd"
	case S2:
		return "S2"
	case LZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
