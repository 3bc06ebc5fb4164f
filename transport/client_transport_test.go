package transport

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

type addArgs struct {
	Tenant string
	Value  float64
}

func TestHTTPTransportPost(t *testing.T) {
	var gotBody []byte
	var gotHeader http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expect POST, got %s", r.Method)
		}
		gotHeader = r.Header.Clone()
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte(`"short and stout"`))
	}))
	defer srv.Close()

	tr := NewHTTPTransport(nil)
	resp, err := tr.Post(context.Background(), srv.URL, &addArgs{Tenant: "t", Value: 2})
	if err != nil {
		t.Fatal(err)
	}

	if resp.StatusCode != http.StatusTeapot {
		t.Fatalf("expect 418, got %d", resp.StatusCode)
	}
	if string(resp.Body) != `"short and stout"` {
		t.Fatalf("unexpected body %s", resp.Body)
	}
	if string(gotBody) != `{"Tenant":"t","Value":2}` {
		t.Fatalf("unexpected request body %s", gotBody)
	}
	if ct := gotHeader.Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Fatalf("unexpected content type %q", ct)
	}
	if accept := gotHeader.Get("Accept"); accept != "application/json" {
		t.Fatalf("unexpected accept %q", accept)
	}
}

func TestHTTPTransportConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewHTTPTransport(nil).Post(context.Background(), url, map[string]string{})
	if err == nil {
		t.Fatal("expect error after server closed")
	}
}

func TestHTTPTransportTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	tr := NewHTTPTransport(&HTTPConfig{Timeout: 50 * time.Millisecond})
	_, err := tr.Post(context.Background(), srv.URL, map[string]string{})
	if err == nil {
		t.Fatal("expect timeout error")
	}
}

func TestHTTPTransportEncodeError(t *testing.T) {
	_, err := NewHTTPTransport(nil).Post(context.Background(), "http://127.0.0.1:1", make(chan int))
	if err == nil {
		t.Fatal("expect encode error for channel payload")
	}
}

// Concurrent posts on one transport must not interfere with each other.
func TestHTTPTransportConcurrent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var args addArgs
		json.NewDecoder(r.Body).Decode(&args)
		json.NewEncoder(w).Encode(map[string]any{"result": args.Value * 2})
	}))
	defer srv.Close()

	tr := NewHTTPTransport(&HTTPConfig{MaxConnsPerHost: 4, MaxIdleConns: 4})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()

			resp, err := tr.Post(context.Background(), srv.URL, &addArgs{Tenant: "t", Value: float64(n)})
			if err != nil {
				t.Errorf("post failed: %v", err)
				return
			}

			var reply struct{ Result float64 }
			if err := json.Unmarshal(resp.Body, &reply); err != nil {
				t.Errorf("unmarshal failed: %v", err)
				return
			}
			if reply.Result != float64(n*2) {
				t.Errorf("expect %d, got %v", n*2, reply.Result)
			}
		}(i)
	}

	wg.Wait()
}

func TestTransportFunc(t *testing.T) {
	var tr Transport = TransportFunc(func(ctx context.Context, url string, payload any) (*Response, error) {
		return &Response{StatusCode: 200, Body: []byte(url)}, nil
	})
	resp, err := tr.Post(context.Background(), "http://engine", nil)
	if err != nil {
		t.Fatal(err)
	}
	if string(resp.Body) != "http://engine" {
		t.Fatalf("unexpected body %s", resp.Body)
	}
}
