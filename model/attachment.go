package model

import "path/filepath"

// Attachment references a local file the user dropped into the composer.
// The core reads its bytes; it never owns or mutates the file.
type Attachment struct {
	Path string
	Name string
}

// NewAttachment builds an Attachment with the name inferred from the path.
func NewAttachment(path string) Attachment {
	return Attachment{Path: path, Name: filepath.Base(path)}
}

// ImageAttachment is an image encoded for inline transport, derived per send
// call and discarded after use.
type ImageAttachment struct {
	MimeType string
	Base64   string
	DataURL  string // "data:<mime>;base64,<b64>"
}
