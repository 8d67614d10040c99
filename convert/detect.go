package convert

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
	"golang.org/x/text/transform"
)

type srcEncoding int

const (
	encUnknown srcEncoding = iota
	encUTF8
	encUTF16BigEndian
	encUTF16LittleEndian
	encUTF32BigEndian
	encUTF32LittleEndian
)

func (e srcEncoding) String() string {
	switch e {
	case encUnknown:
		return "unknown"
	case encUTF8:
		return "utf-8"
	case encUTF16BigEndian:
		return "utf-16be"
	case encUTF16LittleEndian:
		return "utf-16le"
	case encUTF32BigEndian:
		return "utf-32be"
	case encUTF32LittleEndian:
		return "utf-32le"
	default:
		return "invalid"
	}
}

// headerSize is how much of the file is looked at to recognize document.
// Prolog (declaration, comments, doctype) must fit into it.
const headerSize = 4096

var docType = filetype.NewType("hdoc", "application/x-hammock+xml")

func init() {
	filetype.AddMatcher(docType, isDocHeader)
}

// isDocHeader matches UTF-8 text which starts with <doc> element, possibly
// after XML declaration, processing instructions, comments and doctype.
func isDocHeader(buf []byte) bool {
	buf = bytes.TrimPrefix(buf, []byte{0xEF, 0xBB, 0xBF})
	for {
		buf = bytes.TrimLeft(buf, " \t\r\n")
		var end []byte
		switch {
		case bytes.HasPrefix(buf, []byte("<?")):
			end = []byte("?>")
		case bytes.HasPrefix(buf, []byte("<!--")):
			end = []byte("-->")
		case bytes.HasPrefix(buf, []byte("<!DOCTYPE")):
			i := doctypeEnd(buf)
			if i < 0 {
				return false
			}
			buf = buf[i:]
			continue
		default:
			rest, ok := bytes.CutPrefix(buf, []byte("<doc"))
			if !ok {
				return false
			}
			return len(rest) == 0 || bytes.ContainsAny(rest[:1], " \t\r\n/>")
		}
		i := bytes.Index(buf, end)
		if i < 0 {
			return false
		}
		buf = buf[i+len(end):]
	}
}

// doctypeEnd returns offset right after doctype declaration. Internal subset
// in brackets and quoted literals may contain '>'.
func doctypeEnd(buf []byte) int {
	var (
		depth int
		quote byte
	)
	for i, c := range buf {
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '[':
			depth++
		case c == ']':
			depth--
		case c == '>' && depth <= 0:
			return i + 1
		}
	}
	return -1
}

func isUTF32BigEndianBOM4(buf []byte) bool {
	return buf[0] == 0x00 && buf[1] == 0x00 && buf[2] == 0xFE && buf[3] == 0xFF
}

func isUTF32LittleEndianBOM4(buf []byte) bool {
	return buf[0] == 0xFF && buf[1] == 0xFE && buf[2] == 0x00 && buf[3] == 0x00
}

func isUTF8BOM3(buf []byte) bool {
	return buf[0] == 0xEF && buf[1] == 0xBB && buf[2] == 0xBF
}

func isUTF16BigEndianBOM2(buf []byte) bool {
	return buf[0] == 0xFE && buf[1] == 0xFF
}

func isUTF16LittleEndianBOM2(buf []byte) bool {
	return buf[0] == 0xFF && buf[1] == 0xFE
}

// detectUTF looks for BOM. UTF-32 must be checked before UTF-16 since
// little endian marks share prefix.
func detectUTF(buf []byte) srcEncoding {
	if len(buf) >= 4 {
		if isUTF32BigEndianBOM4(buf) {
			return encUTF32BigEndian
		}
		if isUTF32LittleEndianBOM4(buf) {
			return encUTF32LittleEndian
		}
	}
	if len(buf) >= 3 && isUTF8BOM3(buf) {
		return encUTF8
	}
	if len(buf) >= 2 {
		if isUTF16BigEndianBOM2(buf) {
			return encUTF16BigEndian
		}
		if isUTF16LittleEndianBOM2(buf) {
			return encUTF16LittleEndian
		}
	}
	return encUnknown
}

// selectReader returns reader producing UTF-8 without BOM for detected
// encoding. Unknown encoding is left to XML declaration.
func selectReader(r io.Reader, enc srcEncoding) io.Reader {
	switch enc {
	case encUnknown:
		return r
	case encUTF8:
		return transform.NewReader(r, unicode.UTF8BOM.NewDecoder())
	case encUTF16BigEndian:
		return transform.NewReader(r, unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder())
	case encUTF16LittleEndian:
		return transform.NewReader(r, unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder())
	case encUTF32BigEndian:
		return transform.NewReader(r, utf32.UTF32(utf32.BigEndian, utf32.ExpectBOM).NewDecoder())
	case encUTF32LittleEndian:
		return transform.NewReader(r, utf32.UTF32(utf32.LittleEndian, utf32.ExpectBOM).NewDecoder())
	default:
		// this should never happen
		panic("unsupported source encoding")
	}
}

func readHeader(r io.Reader) ([]byte, error) {
	buf := make([]byte, headerSize)
	n, err := io.ReadFull(r, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return buf[:n], nil
}

// sniffDoc checks if content looks like hammock document and detects its
// encoding.
func sniffDoc(r io.Reader) (bool, srcEncoding, error) {
	header, err := readHeader(r)
	if err != nil {
		return false, encUnknown, err
	}
	enc := detectUTF(header)
	if enc != encUnknown && enc != encUTF8 {
		// header may be cut in the middle of a character, decoder replaces
		// incomplete tail which is fine for matching
		decoded, _ := io.ReadAll(selectReader(bytes.NewReader(header), enc))
		header = decoded
	}
	return filetype.Is(header, docType.Extension), enc, nil
}

func isDocFile(path string) (bool, srcEncoding, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, encUnknown, err
	}
	defer f.Close()
	return sniffDoc(f)
}

func isDocInArchive(f *zip.File) (bool, srcEncoding, error) {
	r, err := f.Open()
	if err != nil {
		return false, encUnknown, err
	}
	defer r.Close()
	return sniffDoc(r)
}

// isArchiveFile reports if path is zip archive, both name and content must
// agree.
func isArchiveFile(path string) (bool, error) {
	if !strings.EqualFold(filepath.Ext(path), ".zip") {
		return false, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	header, err := readHeader(io.LimitReader(f, 262))
	if err != nil {
		return false, err
	}
	return filetype.Is(header, "zip"), nil
}
