package upload

import (
	"bytes"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nulpointcorp/bot-gateway/internal/schema"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func mustDescriptor(t *testing.T, method string) *schema.Descriptor {
	t.Helper()
	d, ok := schema.Get(method)
	if !ok {
		t.Fatalf("%s not registered", method)
	}
	return d
}

// parseParts returns field → content for a multipart body.
func parseParts(t *testing.T, p *Prepared) map[string]string {
	t.Helper()
	_, mp, err := mime.ParseMediaType(p.ContentType)
	if err != nil {
		t.Fatalf("parse content type: %v", err)
	}
	r := multipart.NewReader(bytes.NewReader(p.Body), mp["boundary"])
	out := make(map[string]string)
	for {
		part, err := r.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("next part: %v", err)
		}
		data, _ := io.ReadAll(part)
		out[part.FormName()] = string(data)
	}
	return out
}

func TestJSONWhenNoFiles(t *testing.T) {
	d := mustDescriptor(t, "sendMessage")
	p, err := Prepare(d, map[string]any{"chat_id": float64(1), "text": "hi"})
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if p.ContentType != "application/json" || p.HasFiles {
		t.Errorf("ContentType = %q, HasFiles = %v", p.ContentType, p.HasFiles)
	}
	if !strings.Contains(string(p.Body), `"text":"hi"`) {
		t.Errorf("body = %s", p.Body)
	}
}

func TestRemoteURLPassthrough(t *testing.T) {
	d := mustDescriptor(t, "sendPhoto")
	p, err := Prepare(d, map[string]any{
		"chat_id": float64(1),
		"photo":   "https://example.com/cat.jpg",
	})
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if p.HasFiles {
		t.Error("remote URL treated as local file")
	}
	if p.Params["photo"] != "https://example.com/cat.jpg" {
		t.Errorf("photo rewritten: %v", p.Params["photo"])
	}
}

func TestFileIDPassthrough(t *testing.T) {
	d := mustDescriptor(t, "sendDocument")
	id := "BQACAgIAAxkBAAIBq2Yq3J9vJ8XkQ2FhYmNkZWY"
	p, err := Prepare(d, map[string]any{"chat_id": float64(1), "document": id})
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if p.HasFiles {
		t.Error("file id treated as local file")
	}
}

func TestLocalFileBecomesMultipart(t *testing.T) {
	path := writeTemp(t, "report.pdf", "%PDF-1.4 fake")
	d := mustDescriptor(t, "sendDocument")

	p, err := Prepare(d, map[string]any{
		"chat_id":  float64(42),
		"document": path,
		"caption":  "quarterly",
	})
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if !p.HasFiles {
		t.Fatal("local path not detected")
	}
	if !strings.HasPrefix(p.ContentType, "multipart/form-data; boundary=") {
		t.Errorf("ContentType = %q", p.ContentType)
	}
	if _, still := p.Params["document"]; still {
		t.Error("file slot should be lifted out of params")
	}

	parts := parseParts(t, p)
	if parts["document"] != "%PDF-1.4 fake" {
		t.Errorf("document part = %q", parts["document"])
	}
	if parts["caption"] != "quarterly" {
		t.Errorf("caption part = %q", parts["caption"])
	}
	if parts["chat_id"] != "42" {
		t.Errorf("chat_id part = %q", parts["chat_id"])
	}
}

func TestFileSchemePrefixStripped(t *testing.T) {
	path := writeTemp(t, "pic.png", "png-bytes")
	d := mustDescriptor(t, "sendPhoto")

	p, err := Prepare(d, map[string]any{"chat_id": float64(1), "photo": "file://" + path})
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if !p.HasFiles {
		t.Fatal("file:// path not detected")
	}
	parts := parseParts(t, p)
	if parts["photo"] != "png-bytes" {
		t.Errorf("photo part = %q", parts["photo"])
	}
}

func TestMissingFileScheme(t *testing.T) {
	d := mustDescriptor(t, "sendPhoto")
	_, err := Prepare(d, map[string]any{"chat_id": float64(1), "photo": "file:///does/not/exist.png"})
	var pe *PathError
	if !errors.As(err, &pe) {
		t.Fatalf("err = %v, want *PathError", err)
	}
	if !strings.Contains(pe.Error(), "/does/not/exist.png") {
		t.Errorf("error should name the path: %v", pe)
	}
}

func TestMissingBarePathPassesThrough(t *testing.T) {
	// A bare absolute path that does not exist is passed upstream untouched;
	// only the explicit file:// scheme promises a local file.
	d := mustDescriptor(t, "sendPhoto")
	p, err := Prepare(d, map[string]any{"chat_id": float64(1), "photo": "/no/such/file.png"})
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if p.HasFiles {
		t.Error("nonexistent bare path treated as local file")
	}
}

func TestMediaGroupAttachRewriting(t *testing.T) {
	p1 := writeTemp(t, "a.jpg", "jpeg-a")
	p2 := writeTemp(t, "b.jpg", "jpeg-b")
	d := mustDescriptor(t, "sendMediaGroup")

	p, err := Prepare(d, map[string]any{
		"chat_id": float64(1),
		"media": []any{
			map[string]any{"type": "photo", "media": p1},
			map[string]any{"type": "photo", "media": "https://example.com/c.jpg"},
			map[string]any{"type": "photo", "media": p2},
		},
	})
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if !p.HasFiles {
		t.Fatal("local media not detected")
	}

	media := p.Params["media"].([]any)
	if got := media[0].(map[string]any)["media"]; got != "attach://media_0" {
		t.Errorf("element 0 = %v, want attach://media_0", got)
	}
	if got := media[1].(map[string]any)["media"]; got != "https://example.com/c.jpg" {
		t.Errorf("element 1 rewritten: %v", got)
	}
	if got := media[2].(map[string]any)["media"]; got != "attach://media_2" {
		t.Errorf("element 2 = %v, want attach://media_2", got)
	}

	parts := parseParts(t, p)
	if parts["media_0"] != "jpeg-a" || parts["media_2"] != "jpeg-b" {
		t.Errorf("file parts = %v", parts)
	}
	// The media field itself travels as JSON text.
	if !strings.Contains(parts["media"], "attach://media_0") {
		t.Errorf("media field = %q", parts["media"])
	}
}

func TestStickerObjectRewriting(t *testing.T) {
	path := writeTemp(t, "s.webp", "webp-bytes")
	d := mustDescriptor(t, "addStickerToSet")

	p, err := Prepare(d, map[string]any{
		"user_id": float64(7),
		"name":    "my_set",
		"sticker": map[string]any{"sticker": path, "format": "static", "emoji_list": []any{"😀"}},
	})
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	st := p.Params["sticker"].(map[string]any)
	if st["sticker"] != "attach://sticker" {
		t.Errorf("sticker = %v", st["sticker"])
	}
	parts := parseParts(t, p)
	if parts["sticker"] == "" {
		t.Error("no sticker file part")
	}
}

func TestInputMapNotMutated(t *testing.T) {
	path := writeTemp(t, "a.jpg", "x")
	d := mustDescriptor(t, "sendMediaGroup")
	in := map[string]any{
		"chat_id": float64(1),
		"media":   []any{map[string]any{"type": "photo", "media": path}},
	}
	if _, err := Prepare(d, in); err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if got := in["media"].([]any)[0].(map[string]any)["media"]; got != path {
		t.Errorf("caller's map mutated: %v", got)
	}
}

func TestMIMETable(t *testing.T) {
	cases := map[string]string{
		"photo.JPG":    "image/jpeg",
		"anim.tgs":     "application/x-tgsticker",
		"voice.ogg":    "audio/ogg",
		"clip.mp4":     "video/mp4",
		"data.unknown": "application/octet-stream",
	}
	for path, want := range cases {
		if got := MIMEByExtension(path); got != want {
			t.Errorf("MIMEByExtension(%q) = %q, want %q", path, got, want)
		}
	}
}
