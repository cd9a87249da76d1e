package petapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/five82/petdesk/internal/petapi/petapitest"
	"github.com/five82/petdesk/internal/pets"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.String() != defaultBackendURL {
		t.Fatalf("url = %q, want %q", u.String(), defaultBackendURL)
	}

	u, err = parseBaseURL("example.com:1234/api/?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" || u.Host != "example.com:1234" {
		t.Fatalf("url = %q, want http://example.com:1234", u.String())
	}
	if u.Path != "/api" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}

	if _, err := parseBaseURL("http://"); err == nil {
		t.Fatalf("parseBaseURL(http://) returned nil error, want missing host")
	}
}

func TestClient_ListCreateRemoveRoundTrip(t *testing.T) {
	t.Parallel()

	server := petapitest.NewServer(pets.Samples()[:3]...)
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	list, err := c.List(ctx)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(list) != 3 || list[0].Name != "Buddy" {
		t.Fatalf("List = %#v, want the three seeded pets", list)
	}

	created, err := c.Create(ctx, pets.Input{
		Name:        "Rex",
		Type:        "Dog",
		Price:       "100",
		Description: "Good boy",
		Image:       &pets.Upload{Filename: "/tmp/rex.png", Content: []byte("png")},
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.ID != 4 || created.Type != pets.TypeDog || !created.Price.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("Create = %#v, want id=4 dog price=100", created)
	}
	if !strings.HasPrefix(created.ImageURL, "/uploads/") || !strings.HasSuffix(created.ImageURL, "_rex.png") {
		t.Fatalf("ImageURL = %q, want uploaded path", created.ImageURL)
	}
	uploads := server.Uploads()
	if len(uploads) != 1 || string(uploads[0].Content) != "png" {
		t.Fatalf("Uploads = %#v, want one png upload", uploads)
	}

	if err := c.Remove(ctx, 1); err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	remaining := server.Pets()
	if len(remaining) != 3 || remaining[0].ID != 2 {
		t.Fatalf("Pets after remove = %#v, want ids 2,3,4", remaining)
	}
	calls := server.Calls()
	if calls.List != 1 || calls.Create != 1 || calls.Remove != 1 {
		t.Fatalf("Calls = %+v, want one of each", calls)
	}
}

func TestClient_CreateWithoutImageUsesBackendDefault(t *testing.T) {
	t.Parallel()

	server := petapitest.NewServer()
	t.Cleanup(server.Close)
	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	created, err := c.Create(context.Background(), pets.Input{Name: "Tom", Type: "cat", Price: "5"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.ImageURL != "/assets/default-pet.jpg" {
		t.Fatalf("ImageURL = %q, want backend default", created.ImageURL)
	}
	if len(server.Uploads()) != 0 {
		t.Fatalf("Uploads = %d, want none", len(server.Uploads()))
	}
}

func TestClient_SendsIdentifyingHeaders(t *testing.T) {
	t.Parallel()

	server := petapitest.NewServer()
	t.Cleanup(server.Close)
	c, err := NewClient(server.URL, WithUserAgent("petdesk-test"))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c.List(context.Background()); err != nil {
		t.Fatalf("List returned error: %v", err)
	}

	headers := server.LastHeaders()
	if got := headers.Get("User-Agent"); got != "petdesk-test" {
		t.Fatalf("User-Agent = %q, want petdesk-test", got)
	}
	if _, err := uuid.Parse(headers.Get("X-Request-ID")); err != nil {
		t.Fatalf("X-Request-ID = %q, want a uuid: %v", headers.Get("X-Request-ID"), err)
	}
}

func TestClient_NonSuccessStatusIsUnavailable(t *testing.T) {
	t.Parallel()

	server := petapitest.NewServer(pets.Samples()...)
	t.Cleanup(server.Close)
	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	err = c.Remove(context.Background(), 99)
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("Remove(99) error = %v, want ErrUnavailable", err)
	}
	var unavailable *UnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("Remove(99) error = %T, want *UnavailableError", err)
	}
	if unavailable.StatusCode != http.StatusNotFound || unavailable.Op != OpRemove {
		t.Fatalf("UnavailableError = %+v, want remove/404", unavailable)
	}
	if got := Reason(err); got != "Pet not found" {
		t.Fatalf("Reason = %q, want Pet not found", got)
	}

	server.SetFailure(http.StatusInternalServerError)
	if _, err := c.List(context.Background()); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("List error = %v, want ErrUnavailable", err)
	}
}

func TestClient_CreateRejectsFractionalPrice(t *testing.T) {
	t.Parallel()

	server := petapitest.NewServer()
	t.Cleanup(server.Close)
	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.Create(context.Background(), pets.Input{Name: "Tom", Type: "cat", Price: "2.5"})
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("Create error = %v, want ErrUnavailable", err)
	}
	if !strings.Contains(Reason(err), "2.5") {
		t.Fatalf("Reason = %q, want backend message", Reason(err))
	}
}

func TestClient_MalformedPayloadIsUnavailable(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"not":"a list"`))
	}))
	t.Cleanup(server.Close)
	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.List(context.Background())
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("List error = %v, want ErrUnavailable", err)
	}
	if !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("error = %q, want decode failure", err)
	}
}

func TestClient_NullListIsEmpty(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`null`))
	}))
	t.Cleanup(server.Close)
	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	list, err := c.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if list == nil || len(list) != 0 {
		t.Fatalf("List = %#v, want empty non-nil slice", list)
	}
}

func TestClient_RejectsUnusableBodies(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		op   func(*Client) error
		body string
		want string
	}{
		{"trailing garbage", listOp, `[] trailing garbage`, "decode response"},
		{"trailing bracket", listOp, `[{"id":1,"name":"Buddy","type":"dog","price":250}]}`, "decode response"},
		{"null element", listOp, `[null]`, "has no id"},
		{"zero id", listOp, `[{"id":0,"name":"Ghost","type":"dog","price":1}]`, "has no id"},
		{"duplicate id", listOp, `[{"id":2,"name":"A"},{"id":2,"name":"B"}]`, "duplicate pet id 2"},
		{"created without id", createOp, `{"name":"Rex","type":"dog","price":100}`, "has no id"},
		{"created null", createOp, `null`, "has no id"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tt.body))
			}))
			t.Cleanup(server.Close)
			c, err := NewClient(server.URL)
			if err != nil {
				t.Fatalf("NewClient returned error: %v", err)
			}

			err = tt.op(c)
			if !errors.Is(err, ErrUnavailable) {
				t.Fatalf("error = %v, want ErrUnavailable", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error = %q, want %q", err, tt.want)
			}
		})
	}
}

func listOp(c *Client) error {
	_, err := c.List(context.Background())
	return err
}

func createOp(c *Client) error {
	_, err := c.Create(context.Background(), pets.Input{Name: "Rex", Type: "dog", Price: "100"})
	return err
}

func TestClient_TimeoutIsUnavailable(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		server.Close()
	})
	c, err := NewClient(server.URL, WithTimeout(50*time.Millisecond))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	started := time.Now()
	_, err = c.List(context.Background())
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("List error = %v, want ErrUnavailable", err)
	}
	if elapsed := time.Since(started); elapsed > 2*time.Second {
		t.Fatalf("List took %s, want bounded by timeout", elapsed)
	}
}

func TestBasePathPrefixIsKept(t *testing.T) {
	t.Parallel()

	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)
	c, err := NewClient(server.URL + "/api/")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if err := c.Remove(context.Background(), 7); err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	if gotPath != "/api/pets/7" {
		t.Fatalf("path = %q, want /api/pets/7", gotPath)
	}
}

func TestReason(t *testing.T) {
	if got := Reason(nil); got != "" {
		t.Fatalf("Reason(nil) = %q, want empty", got)
	}
	err := &UnavailableError{Op: OpList, Err: errors.New("boom")}
	if got := Reason(err); got != "boom" {
		t.Fatalf("Reason = %q, want boom", got)
	}
	if got := err.Error(); got != "list pets: boom" {
		t.Fatalf("Error = %q, want list pets: boom", got)
	}
}
