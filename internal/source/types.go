package source

// FileID is an index into the FileSet that loaded the file.
type FileID uint32

// FileFlags records how the content was obtained.
type FileFlags uint8

const (
	FileVirtual        FileFlags = 1 << iota // added from memory, not from disk
	FileHadBOM                               // leading UTF-8 BOM stripped
	FileNormalizedCRLF                       // \r\n rewritten to \n
)

// Has reports whether all bits of mask are set.
func (f FileFlags) Has(mask FileFlags) bool { return f&mask == mask }

// File is one loaded .gh source. Hash is the SHA-256 of Content after
// normalization; the module index stores it as the content hash.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // byte offset of every '\n'
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol is a 1-based position; Col counts bytes.
type LineCol struct {
	Line uint32
	Col  uint32
}
