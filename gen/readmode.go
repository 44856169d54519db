package gen

import (
	"fmt"
	"strings"
)

// ReadMode selects how a TCP connection's byte stream is segmented into
// frames. The set of variants is closed; every consumption site switches
// exhaustively over it.
type ReadMode interface {
	// Name returns the variant name as it appears in configuration files.
	Name() string

	readMode()
}

// Lines frames the stream on newline terminators.
type Lines struct {
	// MaxLineLen, when set, makes any longer line a protocol violation
	// that terminates the connection. Nil means unbounded.
	MaxLineLen *int
}

// Name implements ReadMode.
func (Lines) Name() string { return "lines" }

func (Lines) readMode() {}

// FixedSize frames the stream into frames of exactly FrameSize bytes.
type FixedSize struct {
	FrameSize int
}

// Name implements ReadMode.
func (FixedSize) Name() string { return "fixed_size" }

func (FixedSize) readMode() {}

// Delimited frames the stream on a single delimiter byte. The delimiter is
// excluded from the returned frame.
type Delimited struct {
	Delim  byte
	MaxLen *int
}

// Name implements ReadMode.
func (Delimited) Name() string { return "delimited" }

func (Delimited) readMode() {}

// LengthPrefixed frames the stream as an unsigned length prefix of LenBytes
// bytes followed by that many payload bytes.
type LengthPrefixed struct {
	// LenBytes is the prefix width: 1, 2 or 4.
	LenBytes int
	// BigEndian selects network byte order for multi-byte prefixes;
	// false selects little-endian.
	BigEndian bool
	// MaxLen, when set, rejects any declared length above it before the
	// payload is read.
	MaxLen *int
}

// Name implements ReadMode.
func (LengthPrefixed) Name() string { return "length_prefixed" }

func (LengthPrefixed) readMode() {}

// MaxPrefixValue returns the largest length representable in the prefix.
func (m LengthPrefixed) MaxPrefixValue() uint64 {
	return 1<<(8*uint(m.LenBytes)) - 1
}

// SynthesizeReadFrame emits the source of a readFrame function realizing
// the framing semantics of the given read mode. Both TCP archetypes splice
// the returned text verbatim into their entry point, so an identical mode
// always produces an identical fragment.
//
// The emitted function has the signature
//
//	func readFrame(r *bufio.Reader) ([]byte, error)
//
// and reports a clean end of stream as io.EOF. Any other error is a
// protocol violation and the caller is expected to close the connection.
func SynthesizeReadFrame(mode ReadMode) (string, error) {
	switch m := mode.(type) {
	case Lines:
		return synthDelimited('\n', "newline-terminated", "line", m.MaxLineLen), nil
	case Delimited:
		return synthDelimited(m.Delim, fmt.Sprintf("%#02x-delimited", m.Delim), "frame", m.MaxLen), nil
	case FixedSize:
		return synthFixedSize(m.FrameSize), nil
	case LengthPrefixed:
		return synthLengthPrefixed(m)
	case nil:
		return "", &SynthesisError{Message: "no read mode set"}
	default:
		return "", &SynthesisError{Mode: mode.Name(), Message: "unknown read mode variant"}
	}
}

// synthDelimited covers both the lines and the delimited variants; a line
// is a frame delimited by '\n'. The bounded form scans byte-wise so the
// limit is enforced as soon as it is crossed, not once a terminator
// eventually arrives.
func synthDelimited(delim byte, framing, noun string, maxLen *int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "// readFrame reads one %s frame. The terminator is not\n", framing)
	b.WriteString("// part of the returned frame.\n")
	b.WriteString("func readFrame(r *bufio.Reader) ([]byte, error) {\n")
	if maxLen == nil {
		fmt.Fprintf(&b, "\tframe, err := r.ReadBytes(%#02x)\n", delim)
		b.WriteString("\tif err == io.EOF && len(frame) == 0 {\n")
		b.WriteString("\t\treturn nil, io.EOF\n")
		b.WriteString("\t}\n")
		b.WriteString("\tif err != nil {\n")
		b.WriteString("\t\treturn nil, err\n")
		b.WriteString("\t}\n")
		b.WriteString("\treturn frame[:len(frame)-1], nil\n")
		b.WriteString("}\n")
		return b.String()
	}
	fmt.Fprintf(&b, "\tframe := make([]byte, 0, %d)\n", *maxLen)
	b.WriteString("\tfor {\n")
	b.WriteString("\t\tc, err := r.ReadByte()\n")
	b.WriteString("\t\tif err == io.EOF && len(frame) == 0 {\n")
	b.WriteString("\t\t\treturn nil, io.EOF\n")
	b.WriteString("\t\t}\n")
	b.WriteString("\t\tif err != nil {\n")
	b.WriteString("\t\t\treturn nil, err\n")
	b.WriteString("\t\t}\n")
	fmt.Fprintf(&b, "\t\tif c == %#02x {\n", delim)
	b.WriteString("\t\t\treturn frame, nil\n")
	b.WriteString("\t\t}\n")
	fmt.Fprintf(&b, "\t\tif len(frame) == %d {\n", *maxLen)
	fmt.Fprintf(&b, "\t\t\treturn nil, fmt.Errorf(\"%s exceeds limit of %d bytes before the terminator\")\n", noun, *maxLen)
	b.WriteString("\t\t}\n")
	b.WriteString("\t\tframe = append(frame, c)\n")
	b.WriteString("\t}\n")
	b.WriteString("}\n")
	return b.String()
}

func synthFixedSize(size int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "// readFrame reads one frame of exactly %d bytes. A clean end of\n", size)
	b.WriteString("// stream between frames is not an error; a partial frame is.\n")
	b.WriteString("func readFrame(r *bufio.Reader) ([]byte, error) {\n")
	fmt.Fprintf(&b, "\tframe := make([]byte, %d)\n", size)
	b.WriteString("\tif _, err := io.ReadFull(r, frame); err != nil {\n")
	b.WriteString("\t\tif err == io.ErrUnexpectedEOF {\n")
	b.WriteString("\t\t\treturn nil, fmt.Errorf(\"stream ended mid-frame: %w\", err)\n")
	b.WriteString("\t\t}\n")
	b.WriteString("\t\treturn nil, err\n")
	b.WriteString("\t}\n")
	b.WriteString("\treturn frame, nil\n")
	b.WriteString("}\n")
	return b.String()
}

func synthLengthPrefixed(m LengthPrefixed) (string, error) {
	decode, err := lengthDecodeExpr(m.LenBytes, m.BigEndian)
	if err != nil {
		return "", err
	}
	order := "little-endian"
	if m.BigEndian {
		order = "big-endian"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "// readFrame reads a %d-byte %s length prefix followed by\n", m.LenBytes, order)
	b.WriteString("// that many payload bytes.\n")
	b.WriteString("func readFrame(r *bufio.Reader) ([]byte, error) {\n")
	fmt.Fprintf(&b, "\tvar lenBuf [%d]byte\n", m.LenBytes)
	b.WriteString("\tif _, err := io.ReadFull(r, lenBuf[:]); err != nil {\n")
	b.WriteString("\t\tif err == io.ErrUnexpectedEOF {\n")
	b.WriteString("\t\t\treturn nil, fmt.Errorf(\"stream ended mid-prefix: %w\", err)\n")
	b.WriteString("\t\t}\n")
	b.WriteString("\t\treturn nil, err\n")
	b.WriteString("\t}\n")
	fmt.Fprintf(&b, "\tframeLen := %s\n", decode)
	if m.MaxLen != nil {
		fmt.Fprintf(&b, "\tif frameLen > %d {\n", *m.MaxLen)
		fmt.Fprintf(&b, "\t\treturn nil, fmt.Errorf(\"declared frame length %%d exceeds limit of %d\", frameLen)\n", *m.MaxLen)
		b.WriteString("\t}\n")
	}
	b.WriteString("\tframe := make([]byte, frameLen)\n")
	b.WriteString("\tif _, err := io.ReadFull(r, frame); err != nil {\n")
	b.WriteString("\t\tif err == io.EOF {\n")
	b.WriteString("\t\t\terr = io.ErrUnexpectedEOF\n")
	b.WriteString("\t\t}\n")
	b.WriteString("\t\treturn nil, fmt.Errorf(\"stream ended mid-frame: %w\", err)\n")
	b.WriteString("\t}\n")
	b.WriteString("\treturn frame, nil\n")
	b.WriteString("}\n")
	return b.String(), nil
}

// lengthDecodeExpr returns the expression decoding the prefix buffer into an
// int. The byte order changes the decoded value for any multi-byte prefix,
// so it is honored exactly.
func lengthDecodeExpr(lenBytes int, bigEndian bool) (string, error) {
	order := "binary.LittleEndian"
	if bigEndian {
		order = "binary.BigEndian"
	}
	switch lenBytes {
	case 1:
		return "int(lenBuf[0])", nil
	case 2:
		return fmt.Sprintf("int(%s.Uint16(lenBuf[:]))", order), nil
	case 4:
		return fmt.Sprintf("int(%s.Uint32(lenBuf[:]))", order), nil
	default:
		return "", &SynthesisError{
			Mode:    "length_prefixed",
			Message: fmt.Sprintf("len_bytes must be 1, 2 or 4, got %d", lenBytes),
		}
	}
}

// readFrameImports returns the stdlib imports the synthesized fragment
// needs, beyond what the enclosing template imports on its own.
func readFrameImports(mode ReadMode) []string {
	imports := []string{"bufio", "io"}
	switch m := mode.(type) {
	case Lines:
		if m.MaxLineLen != nil {
			imports = append(imports, "fmt")
		}
	case Delimited:
		if m.MaxLen != nil {
			imports = append(imports, "fmt")
		}
	case FixedSize:
		imports = append(imports, "fmt")
	case LengthPrefixed:
		imports = append(imports, "fmt")
		if m.LenBytes > 1 {
			imports = append(imports, "encoding/binary")
		}
	}
	return imports
}
