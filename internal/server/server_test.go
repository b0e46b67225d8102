package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/ironsheep/image-annotate-mcp/internal/config"
)

func testConfig() config.Config {
	return config.Config{
		LogLevel:    "info",
		UndoLimit:   100,
		LineWidth:   5,
		FontSize:    24,
		PaletteSize: 6,
		Color:       "#FF3B30",
		OCRLanguage: "eng",
	}
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	s, err := New(testConfig())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return s
}

func isUnknownTool(err error) bool {
	return errors.Is(err, ErrUnknownTool)
}

func TestNew(t *testing.T) {
	s := newTestServer(t)
	if s.cache == nil {
		t.Fatal("New() did not initialize cache")
	}
	if s.manager == nil || s.handler == nil {
		t.Fatal("New() did not start a session")
	}

	st := s.manager.Settings()
	if st.LineWidth != 5 || st.TextStyle.FontSize != 24 {
		t.Errorf("settings: got width %v font %v, want 5 and 24", st.LineWidth, st.TextStyle.FontSize)
	}
}

func TestMCPRequest_Unmarshal(t *testing.T) {
	tests := []struct {
		name       string
		json       string
		wantID     interface{}
		wantMethod string
	}{
		{
			"string id",
			`{"jsonrpc":"2.0","id":"test-1","method":"tools/list"}`,
			"test-1",
			"tools/list",
		},
		{
			"number id",
			`{"jsonrpc":"2.0","id":42,"method":"ping"}`,
			float64(42), // JSON numbers decode as float64
			"ping",
		},
		{
			"null id",
			`{"jsonrpc":"2.0","id":null,"method":"initialize"}`,
			nil,
			"initialize",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req MCPRequest
			if err := json.Unmarshal([]byte(tt.json), &req); err != nil {
				t.Fatalf("Failed to unmarshal: %v", err)
			}
			if req.ID != tt.wantID {
				t.Errorf("ID: got %v (%T), want %v (%T)", req.ID, req.ID, tt.wantID, tt.wantID)
			}
			if req.Method != tt.wantMethod {
				t.Errorf("Method: got %s, want %s", req.Method, tt.wantMethod)
			}
		})
	}
}

func TestHandleRequest_Methods(t *testing.T) {
	s := newTestServer(t)

	t.Run("initialize", func(t *testing.T) {
		resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: 1, Method: "initialize"})
		result := resp.Result.(map[string]interface{})
		info := result["serverInfo"].(map[string]interface{})
		if info["name"] != "image-annotate-mcp" {
			t.Errorf("serverInfo name: got %v", info["name"])
		}
	})

	t.Run("initialized notification", func(t *testing.T) {
		if resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", Method: "notifications/initialized"}); resp != nil {
			t.Errorf("got %+v, want no response", resp)
		}
	})

	t.Run("tools/list", func(t *testing.T) {
		resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: 2, Method: "tools/list"})
		tools := resp.Result.(map[string]interface{})["tools"].([]Tool)
		if len(tools) != len(GetToolDefinitions()) {
			t.Errorf("got %d tools, want %d", len(tools), len(GetToolDefinitions()))
		}
	})

	t.Run("ping", func(t *testing.T) {
		resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: 3, Method: "ping"})
		if resp.Error != nil {
			t.Errorf("unexpected error: %+v", resp.Error)
		}
	})

	t.Run("unknown method", func(t *testing.T) {
		resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: 4, Method: "resources/list"})
		if resp.Error == nil || resp.Error.Code != -32601 {
			t.Errorf("got %+v, want code -32601", resp.Error)
		}
	})
}

func TestServe(t *testing.T) {
	s := newTestServer(t)
	input := strings.Join([]string{
		`{"jsonrpc":"2.0","id":1,"method":"initialize"}`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		``,
		`not json`,
		`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"annotate_settings","arguments":{"creation_type":"rect"}}}`,
		`{"jsonrpc":"2.0","id":3,"method":"ping"}`,
	}, "\n")

	var out bytes.Buffer
	if err := s.Serve(strings.NewReader(input), &out); err != nil {
		t.Fatalf("Serve failed: %v", err)
	}

	dec := json.NewDecoder(&out)
	var ids []float64
	for {
		var resp struct {
			ID    float64   `json:"id"`
			Error *MCPError `json:"error"`
		}
		if err := dec.Decode(&resp); err == io.EOF {
			break
		} else if err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp.Error != nil {
			t.Errorf("response %v: unexpected error %+v", resp.ID, resp.Error)
		}
		ids = append(ids, resp.ID)
	}

	want := []float64{1, 2, 3}
	if len(ids) != len(want) {
		t.Fatalf("got responses %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("response %d: got id %v, want %v", i, ids[i], want[i])
		}
	}
	if got := s.manager.Settings().CreationType; got != "rect" {
		t.Errorf("creation type: got %q, want rect", got)
	}
}

func TestServe_RunsQueuedTasks(t *testing.T) {
	s := newTestServer(t)
	ran := make(chan struct{})

	r, w := io.Pipe()
	served := make(chan error, 1)
	go func() { served <- s.Serve(r, io.Discard) }()

	go s.dispatch(func() { close(ran) })
	<-ran

	w.Close()
	if err := <-served; err != nil {
		t.Errorf("Serve failed: %v", err)
	}
}
