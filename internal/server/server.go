package server

import (
	"bufio"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"io"
	"log"
	"os"

	"github.com/ironsheep/image-annotate-mcp/internal/config"
	"github.com/ironsheep/image-annotate-mcp/internal/history"
	"github.com/ironsheep/image-annotate-mcp/internal/imaging"
	"github.com/ironsheep/image-annotate-mcp/internal/interaction"
	"github.com/ironsheep/image-annotate-mcp/internal/manager"
	"github.com/ironsheep/image-annotate-mcp/internal/ocr"
	"github.com/ironsheep/image-annotate-mcp/internal/textfit"
)

// Version is reported in the initialize handshake.
var Version = "0.1.0"

// taskQueueSize bounds pending background deliveries.
const taskQueueSize = 16

// Server handles MCP protocol communication for one annotation session.
type Server struct {
	cfg      config.Config
	logger   *log.Logger
	cache    *imaging.ImageCache
	measurer *textfit.Measurer
	renderer *eventRenderer
	words    WordFinder

	manager *manager.Manager
	handler *interaction.Handler
	unbind  func()

	background     *imaging.Background
	palettePending bool

	tasks chan func()
	done  chan struct{}
}

// MCPRequest represents an incoming JSON-RPC request
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse represents an outgoing JSON-RPC response
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError represents a JSON-RPC error
type MCPError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// WordFinder recognizes words in an image, with bounds in its pixel space.
// *ocr.Recognizer is the production implementation.
type WordFinder interface {
	FindWords(img image.Image, minConfidence float64) ([]ocr.Word, error)
}

// engineInfo is implemented by word finders that can describe their engine.
type engineInfo interface {
	Language() string
	Version() string
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the debug logger shared by the server, manager and handler.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithWordFinder replaces the Tesseract recognizer used by annotate_redact_text.
func WithWordFinder(f WordFinder) Option {
	return func(s *Server) { s.words = f }
}

// New creates a server with an empty session configured by cfg.
func New(cfg config.Config, opts ...Option) (*Server, error) {
	measurer, err := textfit.New()
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	s := &Server{
		cfg:      cfg,
		cache:    imaging.NewImageCache(),
		measurer: measurer,
		renderer: &eventRenderer{},
		tasks:    make(chan func(), taskQueueSize),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard, "", 0)
	}
	if s.words == nil {
		s.words = ocr.New(cfg.OCRLanguage)
	}
	s.newSession()
	return s, nil
}

// newSession replaces the document, history and gesture state.
func (s *Server) newSession() {
	if s.unbind != nil {
		s.unbind()
	}

	settings := manager.DefaultSettings()
	settings.Color = s.cfg.DrawColor()
	settings.LineWidth = s.cfg.LineWidth
	settings.TextStyle.FontSize = s.cfg.FontSize
	settings.TextStyle.TextColor = settings.Color

	s.manager = manager.New(
		manager.WithHistory(history.New(s.cfg.UndoLimit)),
		manager.WithSettings(settings),
		manager.WithDispatcher(s.dispatch),
		manager.WithPaletteSize(s.cfg.PaletteSize),
		manager.WithLogger(s.logger),
	)
	s.handler = interaction.New(s.manager, s.renderer,
		interaction.WithMeasurer(s.measurer),
		interaction.WithLogger(s.logger),
	)
	unbindRenderer := interaction.Bind(s.manager, s.renderer)
	unbindPalette := s.manager.Subscribe(manager.ObserverFuncs{
		OnPaletteChanged: func([]color.RGBA) { s.palettePending = false },
	})
	s.unbind = func() {
		unbindRenderer()
		unbindPalette()
	}
	s.background = nil
	s.palettePending = false
}

// dispatch queues fn for the request loop. It is the manager's Dispatcher.
func (s *Server) dispatch(fn func()) {
	select {
	case s.tasks <- fn:
	case <-s.done:
	}
}

// Run serves stdin and stdout until stdin closes.
func (s *Server) Run() error {
	return s.Serve(os.Stdin, os.Stdout)
}

// Serve reads one JSON-RPC request per line from r and writes responses to w.
// Requests and background deliveries are handled on the calling goroutine.
func (s *Server) Serve(r io.Reader, w io.Writer) error {
	defer close(s.done)

	lines := make(chan []byte)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		// Increase buffer size for large requests
		buf := make([]byte, 0, 64*1024)
		scanner.Buffer(buf, 1024*1024)
		for scanner.Scan() {
			line := append([]byte(nil), scanner.Bytes()...)
			select {
			case lines <- line:
			case <-s.done:
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	encoder := json.NewEncoder(w)
	for {
		select {
		case fn := <-s.tasks:
			fn()
		case line, ok := <-lines:
			if !ok {
				if err := <-scanErr; err != nil {
					return fmt.Errorf("scanner error: %w", err)
				}
				return nil
			}
			if len(line) == 0 {
				continue
			}

			var req MCPRequest
			if err := json.Unmarshal(line, &req); err != nil {
				s.logger.Printf("[server] failed to parse request: %v", err)
				continue
			}

			resp := s.handleRequest(&req)
			if resp != nil {
				if err := encoder.Encode(resp); err != nil {
					s.logger.Printf("[server] failed to encode response: %v", err)
				}
			}
		}
	}
}

// handleRequest routes requests to appropriate handlers
func (s *Server) handleRequest(req *MCPRequest) *MCPResponse {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "notifications/initialized":
		// Client acknowledgment, no response needed
		return nil
	case "tools/list":
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  map[string]interface{}{"tools": GetToolDefinitions()},
		}
	case "tools/call":
		return s.handleToolsCall(req)
	case "ping":
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  map[string]interface{}{},
		}
	default:
		return s.errorResponse(req.ID, -32601, fmt.Sprintf("Method not found: %s", req.Method), "")
	}
}

// handleInitialize responds to the initialize request
func (s *Server) handleInitialize(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"protocolVersion": "2024-11-05",
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    "image-annotate-mcp",
				"version": Version,
			},
		},
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	e := &MCPError{Code: code, Message: message}
	if data != "" {
		e.Data = data
	}
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error:   e,
	}
}
