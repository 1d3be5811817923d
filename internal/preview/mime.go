package preview

import (
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const (
	mimeDirectory = "inode/directory"
	mimeUnknown   = "application/octet-stream"
)

var mimeByExt = map[string]string{
	// text
	"txt": "text/plain", "md": "text/plain", "markdown": "text/plain",
	"rs": "text/x-rust", "py": "text/x-python",
	"js": "text/javascript", "mjs": "text/javascript", "ts": "text/typescript",
	"java": "text/x-java", "c": "text/x-c",
	"cpp": "text/x-c++", "cc": "text/x-c++", "cxx": "text/x-c++",
	"h": "text/x-c-header", "hpp": "text/x-c-header",
	"go": "text/x-go", "rb": "text/x-ruby", "php": "text/x-php",
	"sh": "text/x-shellscript", "bash": "text/x-shellscript",
	"html": "text/html", "htm": "text/html", "css": "text/css", "xml": "text/xml",
	"json": "application/json", "yaml": "text/x-yaml", "yml": "text/x-yaml",
	"toml": "text/x-toml", "ini": "text/x-ini", "cfg": "text/x-ini", "conf": "text/x-ini",
	"log": "text/x-log",

	// images
	"jpg": "image/jpeg", "jpeg": "image/jpeg", "png": "image/png", "gif": "image/gif",
	"bmp": "image/bmp", "svg": "image/svg+xml", "ico": "image/x-icon", "webp": "image/webp",

	// archives
	"zip": "application/zip", "tar": "application/x-tar",
	"gz": "application/gzip", "gzip": "application/gzip",
	"bz2": "application/x-bzip2", "xz": "application/x-xz",
	"7z": "application/x-7z-compressed", "rar": "application/x-rar",

	// documents
	"pdf": "application/pdf", "doc": "application/msword", "docx": "application/msword",
	"xls": "application/vnd.ms-excel", "xlsx": "application/vnd.ms-excel",
	"ppt": "application/vnd.ms-powerpoint", "pptx": "application/vnd.ms-powerpoint",

	// media
	"mp3": "audio/mpeg", "wav": "audio/wav", "ogg": "audio/ogg",
	"mp4": "video/mp4", "avi": "video/x-msvideo", "mkv": "video/x-matroska",
}

// MIMEByExtension guesses the type from the file extension alone
func MIMEByExtension(path string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if m, ok := mimeByExt[ext]; ok {
		return m
	}
	return mimeUnknown
}

// DetectMIME uses the extension table and falls back to sniffing the
// content of files it does not know.
func DetectMIME(path string, isDir bool) string {
	if isDir {
		return mimeDirectory
	}
	if m := MIMEByExtension(path); m != mimeUnknown {
		return m
	}
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return mimeUnknown
	}
	m, _, _ := strings.Cut(mt.String(), ";")
	return m
}

func isTextMIME(m string) bool {
	return strings.HasPrefix(m, "text/") || m == "application/json"
}
