package format

type (
	CompressionType uint8
	Mode            uint8
)

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 frame compression.

	ModeArray   Mode = 0x1 // ModeArray emits each row as a list of values.
	ModeObject  Mode = 0x2 // ModeObject emits each row as a header-keyed mapping.
	ModeEntries Mode = 0x3 // ModeEntries emits each row as (key, value, index) entries.
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

func (m Mode) String() string {
	switch m {
	case ModeArray:
		return "Array"
	case ModeObject:
		return "Object"
	case ModeEntries:
		return "Entries"
	default:
		return "Unknown"
	}
}
