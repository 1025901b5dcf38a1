package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"

	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttputil"
)

func serveReceiver(t *testing.T, r *Receiver) *http.Client {
	t.Helper()
	ln := fasthttputil.NewInmemoryListener()
	t.Cleanup(func() { _ = ln.Close() })

	go func() {
		_ = fasthttp.Serve(ln, r.Handler())
	}()

	return &http.Client{
		Transport: &http.Transport{
			DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
				return ln.Dial()
			},
		},
	}
}

func postUpdate(t *testing.T, client *http.Client, path, secret, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, "http://gateway"+path, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if secret != "" {
		req.Header.Set("X-Telegram-Bot-Api-Secret-Token", secret)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestAcceptsUpdateOnBothPaths(t *testing.T) {
	r := New("", nil)
	client := serveReceiver(t, r)

	for _, path := range []string{"/", "/webhook"} {
		resp := postUpdate(t, client, path, "", `{"update_id":1}`)
		if resp.StatusCode != http.StatusOK {
			t.Errorf("POST %s = %d", path, resp.StatusCode)
		}
	}
	if r.Pending() != 2 {
		t.Errorf("Pending = %d, want 2", r.Pending())
	}
}

func TestSecretTokenEnforced(t *testing.T) {
	r := New("s3cret", nil)
	client := serveReceiver(t, r)

	resp := postUpdate(t, client, "/webhook", "wrong", `{"update_id":1}`)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("wrong secret = %d, want 401", resp.StatusCode)
	}

	resp = postUpdate(t, client, "/webhook", "", `{"update_id":1}`)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("missing secret = %d, want 401", resp.StatusCode)
	}

	resp = postUpdate(t, client, "/webhook", "s3cret", `{"update_id":1}`)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("correct secret = %d, want 200", resp.StatusCode)
	}
	if r.Pending() != 1 {
		t.Errorf("Pending = %d, want 1 (only the authenticated update)", r.Pending())
	}
}

func TestInvalidPayloadRejected(t *testing.T) {
	r := New("", nil)
	client := serveReceiver(t, r)

	resp := postUpdate(t, client, "/webhook", "", `{not-json`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("invalid body = %d, want 400", resp.StatusCode)
	}
	if r.Pending() != 0 {
		t.Error("invalid update queued")
	}
}

func TestMethodNotAllowed(t *testing.T) {
	r := New("", nil)
	client := serveReceiver(t, r)

	resp, err := client.Get("http://gateway/webhook")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("GET /webhook = %d, want 405", resp.StatusCode)
	}
}

func TestUnknownPathNotFound(t *testing.T) {
	r := New("", nil)
	client := serveReceiver(t, r)

	resp := postUpdate(t, client, "/other", "", `{"update_id":1}`)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("POST /other = %d, want 404", resp.StatusCode)
	}
}

func TestHealthReportsPending(t *testing.T) {
	r := New("", nil)
	client := serveReceiver(t, r)

	postUpdate(t, client, "/webhook", "", `{"update_id":1}`)
	postUpdate(t, client, "/webhook", "", `{"update_id":2}`)

	resp, err := client.Get("http://gateway/health")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)

	var body struct {
		OK      bool `json:"ok"`
		Pending int  `json:"pending"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.OK || body.Pending != 2 {
		t.Errorf("health = %+v", body)
	}
}

func TestOverflowDropsOldest(t *testing.T) {
	r := New("", nil)
	r.queueCap = 3
	client := serveReceiver(t, r)

	for i := 1; i <= 5; i++ {
		postUpdate(t, client, "/webhook", "", fmt.Sprintf(`{"update_id":%d}`, i))
	}

	if r.Pending() != 3 {
		t.Fatalf("Pending = %d, want 3", r.Pending())
	}
	u, ok := r.Dequeue()
	if !ok {
		t.Fatal("Dequeue empty")
	}
	if !strings.Contains(string(u), `"update_id":3`) {
		t.Errorf("oldest surviving update = %s, want update_id 3", u)
	}
}

func TestDequeueOrder(t *testing.T) {
	r := New("", nil)
	client := serveReceiver(t, r)

	postUpdate(t, client, "/webhook", "", `{"update_id":1}`)
	postUpdate(t, client, "/webhook", "", `{"update_id":2}`)

	u1, _ := r.Dequeue()
	u2, _ := r.Dequeue()
	if !strings.Contains(string(u1), `"update_id":1`) || !strings.Contains(string(u2), `"update_id":2`) {
		t.Errorf("order = %s, %s", u1, u2)
	}
	if _, ok := r.Dequeue(); ok {
		t.Error("Dequeue on empty queue returned an update")
	}
}
