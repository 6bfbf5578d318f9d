// Package attachment converts local file references into the inline payloads
// the provider adapters send over the wire.
//
// Encoding is deliberately best-effort: files that are too large, have an
// unrecognized extension, or cannot be read are silently dropped rather than
// failing the send. The user still gets their message out; a missing
// attachment is recoverable, a failed send is not.
package attachment

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"traychat/model"
)

const (
	// MaxImageBytes is the ceiling above which image encoding is skipped.
	MaxImageBytes = 8_000_000

	// MaxTextBytes is the ceiling above which text extraction is skipped.
	MaxTextBytes = 200_000

	// MaxTextChars is the per-file character budget for extracted text.
	MaxTextChars = 4000
)

// imageMimeTypes maps lowercase file extensions to image mime types.
var imageMimeTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".webp": "image/webp",
	".gif":  "image/gif",
	".heic": "image/heic",
	".heif": "image/heif",
}

// ImageMimeType returns the mime type for a path with a known image
// extension, or "" if the extension is not recognized.
func ImageMimeType(path string) string {
	return imageMimeTypes[strings.ToLower(filepath.Ext(path))]
}

// EncodeImages base64-encodes every attachment with a known image extension
// and size at most MaxImageBytes. Attachments failing either condition, or
// whose bytes cannot be read, are dropped without error.
func EncodeImages(refs []model.Attachment) []model.ImageAttachment {
	var images []model.ImageAttachment

	for _, ref := range refs {
		mime := ImageMimeType(ref.Path)
		if mime == "" {
			continue
		}

		info, err := os.Stat(ref.Path)
		if err != nil || info.Size() > MaxImageBytes {
			continue
		}

		data, err := os.ReadFile(ref.Path)
		if err != nil {
			continue
		}

		b64 := base64.StdEncoding.EncodeToString(data)
		images = append(images, model.ImageAttachment{
			MimeType: mime,
			Base64:   b64,
			DataURL:  "data:" + mime + ";base64," + b64,
		})
	}

	return images
}

// ExtractText reads each non-image attachment as UTF-8 text and emits a
// "File: <name>" block with the first MaxTextChars characters of trimmed
// content. Oversized, binary, empty or unreadable files yield no block.
// Blocks are joined by blank lines.
func ExtractText(refs []model.Attachment) string {
	var blocks []string

	for _, ref := range refs {
		if ImageMimeType(ref.Path) != "" {
			continue
		}
		if block, ok := extractFile(ref); ok {
			blocks = append(blocks, block)
		}
	}

	return strings.Join(blocks, "\n\n")
}

func extractFile(ref model.Attachment) (string, bool) {
	info, err := os.Stat(ref.Path)
	if err != nil || info.Size() > MaxTextBytes {
		return "", false
	}

	data, err := os.ReadFile(ref.Path)
	if err != nil || !utf8.Valid(data) {
		return "", false
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", false
	}

	if runes := []rune(text); len(runes) > MaxTextChars {
		text = string(runes[:MaxTextChars])
	}

	return "File: " + ref.Name + "\n" + text, true
}

// Compose builds the outgoing message text: the user's draft, then a header
// naming every attachment, then an "Extracted text:" section with the
// concatenated text blocks. With no attachments the draft passes through
// unchanged.
func Compose(draft string, refs []model.Attachment) string {
	if len(refs) == 0 {
		return draft
	}

	names := make([]string, len(refs))
	for i, ref := range refs {
		names[i] = ref.Name
	}

	out := draft + "\n\nAttachments: " + strings.Join(names, ", ")

	if extracted := ExtractText(refs); extracted != "" {
		out += "\n\nExtracted text:\n" + extracted
	}

	return out
}
