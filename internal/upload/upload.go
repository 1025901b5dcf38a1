// Package upload detects local files among invocation parameters and encodes
// the outbound request body: plain JSON when every file reference points at
// the platform or a remote URL, multipart/form-data when at least one local
// file must be shipped.
package upload

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/nulpointcorp/bot-gateway/internal/schema"
)

// Prepared is the encoded request body for one invocation.
type Prepared struct {
	ContentType string
	Body        []byte
	// Params is the normalised parameter object: local file references are
	// replaced by attach:// sentinels, top-level file slots are lifted out
	// into multipart parts.
	Params   map[string]any
	HasFiles bool
}

// PathError reports a file reference that cannot be served. The pipeline
// maps it to a client-error envelope.
type PathError struct {
	Path   string
	Reason string
}

func (e *PathError) Error() string {
	return fmt.Sprintf("cannot read file %q: %s", e.Path, e.Reason)
}

// fileIDPattern matches platform-internal file identifiers: long opaque
// tokens with no path separators or scheme.
var fileIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{20,}$`)

// filePart is one local file queued for multipart assembly.
type filePart struct {
	field string
	path  string
}

// Prepare inspects the declared upload slots of d and encodes the request
// body. d may be nil for methods without a descriptor; those always encode
// as JSON.
func Prepare(d *schema.Descriptor, params map[string]any) (*Prepared, error) {
	var files []filePart

	// Copy so the caller's map survives rewriting.
	norm := make(map[string]any, len(params))
	for k, v := range params {
		norm[k] = v
	}

	if d != nil {
		for _, slot := range d.Uploads {
			val, present := norm[slot.Name]
			if !present || val == nil {
				continue
			}

			switch slot.Kind {
			case schema.SlotFile:
				path, local, err := classify(val)
				if err != nil {
					return nil, err
				}
				if local {
					files = append(files, filePart{field: slot.Name, path: path})
					delete(norm, slot.Name)
				}

			case schema.SlotObject:
				obj, ok := val.(map[string]any)
				if !ok {
					continue
				}
				rewritten, found, err := rewriteNested(obj, slot.NestedKeys, "", &files)
				if err != nil {
					return nil, err
				}
				if found {
					norm[slot.Name] = rewritten
				}

			case schema.SlotMediaArray:
				arr, ok := val.([]any)
				if !ok {
					continue
				}
				out := make([]any, len(arr))
				copy(out, arr)
				changed := false
				for i, item := range arr {
					obj, ok := item.(map[string]any)
					if !ok {
						continue
					}
					rewritten, found, err := rewriteNested(obj, slot.NestedKeys, fmt.Sprintf("_%d", i), &files)
					if err != nil {
						return nil, err
					}
					if found {
						out[i] = rewritten
						changed = true
					}
				}
				if changed {
					norm[slot.Name] = out
				}
			}
		}
	}

	if len(files) == 0 {
		body, err := json.Marshal(norm)
		if err != nil {
			return nil, fmt.Errorf("upload: encode params: %w", err)
		}
		return &Prepared{
			ContentType: "application/json",
			Body:        body,
			Params:      norm,
		}, nil
	}

	body, contentType, err := assembleMultipart(norm, files)
	if err != nil {
		return nil, err
	}
	return &Prepared{
		ContentType: contentType,
		Body:        body,
		Params:      norm,
		HasFiles:    true,
	}, nil
}

// classify decides what a file-slot string denotes. Returns the local path
// and true when the value is a file on this machine.
func classify(val any) (string, bool, error) {
	s, ok := val.(string)
	if !ok {
		return "", false, nil
	}

	if strings.HasPrefix(s, "file://") {
		path := strings.TrimPrefix(s, "file://")
		if err := checkRegular(path); err != nil {
			return "", false, err
		}
		return path, true, nil
	}

	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		return "", false, nil
	}

	if fileIDPattern.MatchString(s) {
		return "", false, nil
	}

	if filepath.IsAbs(s) {
		if checkRegular(s) == nil {
			return s, true, nil
		}
	}

	return "", false, nil
}

// rewriteNested applies the file rules one level down inside a descriptor
// object, replacing local paths with attach:// sentinels. suffix
// distinguishes array elements.
func rewriteNested(obj map[string]any, keys []string, suffix string, files *[]filePart) (map[string]any, bool, error) {
	var out map[string]any
	found := false

	for _, key := range keys {
		val, present := obj[key]
		if !present {
			continue
		}
		path, local, err := classify(val)
		if err != nil {
			return nil, false, err
		}
		if !local {
			continue
		}
		if out == nil {
			out = make(map[string]any, len(obj))
			for k, v := range obj {
				out[k] = v
			}
		}
		name := key + suffix
		out[key] = "attach://" + name
		*files = append(*files, filePart{field: name, path: path})
		found = true
	}

	if !found {
		return obj, false, nil
	}
	return out, true, nil
}

func checkRegular(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return &PathError{Path: path, Reason: "no such file"}
	}
	if !info.Mode().IsRegular() {
		return &PathError{Path: path, Reason: "not a regular file"}
	}
	return nil
}

// assembleMultipart serialises non-file params as text parts (objects and
// arrays JSON-stringified) and streams each file under its field name.
func assembleMultipart(params map[string]any, files []filePart) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for key, val := range params {
		text, err := fieldText(val)
		if err != nil {
			return nil, "", fmt.Errorf("upload: encode field %s: %w", key, err)
		}
		if err := w.WriteField(key, text); err != nil {
			return nil, "", fmt.Errorf("upload: write field %s: %w", key, err)
		}
	}

	for _, f := range files {
		data, err := os.ReadFile(f.path)
		if err != nil {
			return nil, "", &PathError{Path: f.path, Reason: err.Error()}
		}

		h := make(map[string][]string)
		h["Content-Disposition"] = []string{fmt.Sprintf(`form-data; name=%q; filename=%q`,
			f.field, filepath.Base(f.path))}
		h["Content-Type"] = []string{MIMEByExtension(f.path)}

		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("upload: create part %s: %w", f.field, err)
		}
		if _, err := part.Write(data); err != nil {
			return nil, "", fmt.Errorf("upload: write part %s: %w", f.field, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("upload: finalize multipart: %w", err)
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

func fieldText(val any) (string, error) {
	switch t := val.(type) {
	case string:
		return t, nil
	case bool:
		if t {
			return "true", nil
		}
		return "false", nil
	case nil:
		return "", nil
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
}

// mimeByExt maps common media extensions; anything unlisted falls back to
// application/octet-stream.
var mimeByExt = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".bmp":  "image/bmp",
	".svg":  "image/svg+xml",
	".mp4":  "video/mp4",
	".mov":  "video/quicktime",
	".avi":  "video/x-msvideo",
	".webm": "video/webm",
	".mkv":  "video/x-matroska",
	".mp3":  "audio/mpeg",
	".m4a":  "audio/mp4",
	".ogg":  "audio/ogg",
	".oga":  "audio/ogg",
	".opus": "audio/opus",
	".wav":  "audio/wav",
	".flac": "audio/flac",
	".pdf":  "application/pdf",
	".zip":  "application/zip",
	".txt":  "text/plain",
	".json": "application/json",
	".tgs":  "application/x-tgsticker",
}

// MIMEByExtension returns the content type for a file path by extension.
func MIMEByExtension(path string) string {
	if m, ok := mimeByExt[strings.ToLower(filepath.Ext(path))]; ok {
		return m
	}
	return "application/octet-stream"
}
