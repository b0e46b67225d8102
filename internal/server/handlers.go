package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/color"

	"github.com/ironsheep/image-annotate-mcp/internal/annotation"
	"github.com/ironsheep/image-annotate-mcp/internal/geometry"
	"github.com/ironsheep/image-annotate-mcp/internal/imaging"
	"github.com/ironsheep/image-annotate-mcp/internal/interaction"
	"github.com/ironsheep/image-annotate-mcp/internal/manager"
	"github.com/ironsheep/image-annotate-mcp/internal/ocr"
)

var (
	// ErrUnknownTool is returned for a tools/call naming no tool.
	ErrUnknownTool = errors.New("unknown tool")
	// ErrInvalidArgs marks arguments that are malformed or out of range.
	ErrInvalidArgs = errors.New("invalid arguments")

	errNotEditing = errors.New("no label is being edited")
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "annotate_pointer_down").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Invalid arguments return code -32602; any other tool failure returns -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.logger.Printf("[server] %s failed: %v", params.Name, err)
		if errors.Is(err, ErrInvalidArgs) {
			return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
		}
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Session
	case "annotate_load_background":
		return s.handleLoadBackground(args)
	case "annotate_settings":
		return s.handleSettings(args)
	case "annotate_reset":
		return s.handleReset()

	// Pointer input
	case "annotate_pointer_down":
		return s.handlePointer(args, s.handler.PointerDown)
	case "annotate_pointer_dragged":
		return s.handlePointer(args, s.handler.PointerDragged)
	case "annotate_pointer_up":
		return s.handlePointer(args, s.handler.PointerUp)
	case "annotate_pointer_moved":
		return s.handlePointerMoved(args)

	// Text editing
	case "annotate_text_input":
		return s.handleTextInput(args)
	case "annotate_edit_text":
		return s.handleEditText(args)
	case "annotate_end_editing":
		return s.handleEndEditing()

	// Document
	case "annotate_undo":
		return s.handleHistory(s.manager.Undo)
	case "annotate_redo":
		return s.handleHistory(s.manager.Redo)
	case "annotate_delete_selected":
		return s.handleDeleteSelected()
	case "annotate_list":
		return s.handleList(), nil
	case "annotate_stats":
		return s.handleStats(), nil
	case "annotate_palette":
		return s.handlePalette(args)
	case "annotate_redact_text":
		return s.handleRedactText(args)

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// decodeArgs unmarshals tool arguments. Absent arguments leave v untouched.
func decodeArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 || string(args) == "null" {
		return nil
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArgs, err)
	}
	return nil
}

// === Views ===

// ModelView describes one annotation to the client.
type ModelView struct {
	ID        annotation.ID    `json:"id"`
	Type      annotation.Type  `json:"type"`
	Color     string           `json:"color"`
	ZPosition float64          `json:"z_position"`
	Bounds    geometry.Rect    `json:"bounds"`
	Model     annotation.Model `json:"model"`
}

func newModelView(m annotation.Model) ModelView {
	h := m.Meta()
	return ModelView{
		ID:        h.ID,
		Type:      m.Type(),
		Color:     imaging.Hex(h.Color),
		ZPosition: h.ZPosition,
		Bounds:    annotation.SelectionPath(m).Bounds(),
		Model:     m,
	}
}

// SessionView is returned by every tool that can change the session.
type SessionView struct {
	State    string     `json:"state"`
	Selected *ModelView `json:"selected,omitempty"`
	Editing  *ModelView `json:"editing,omitempty"`
	CanUndo  bool       `json:"can_undo"`
	CanRedo  bool       `json:"can_redo"`
	Events   []Event    `json:"events"`
}

func (s *Server) sessionView() SessionView {
	h := s.manager.History().State()
	v := SessionView{
		State:   s.handler.State().String(),
		CanUndo: h.CanUndo,
		CanRedo: h.CanRedo,
		Events:  s.renderer.take(),
	}
	if sel, ok := s.manager.Selected(); ok {
		mv := newModelView(sel)
		v.Selected = &mv
	}
	if t, ok := s.handler.Editing(); ok {
		mv := newModelView(t)
		v.Editing = &mv
	}
	return v
}

// SettingsView is the client form of manager.Settings.
type SettingsView struct {
	CreationType           string  `json:"creation_type"`
	Color                  string  `json:"color"`
	LineWidth              float64 `json:"line_width"`
	UserInteractionEnabled bool    `json:"user_interaction_enabled"`
	ObfuscatePattern       string  `json:"obfuscate_pattern"`
	KeepSquare             bool    `json:"keep_square"`
	FontSize               float64 `json:"font_size"`
}

func newSettingsView(st manager.Settings) SettingsView {
	creation := string(st.CreationType)
	if st.CreationType == annotation.TypeNone {
		creation = "none"
	}
	return SettingsView{
		CreationType:           creation,
		Color:                  imaging.Hex(st.Color),
		LineWidth:              st.LineWidth,
		UserInteractionEnabled: st.UserInteractionEnabled,
		ObfuscatePattern:       string(st.ObfuscatePattern),
		KeepSquare:             st.KeepSquare,
		FontSize:               st.TextStyle.FontSize,
	}
}

func hexColors(colors []color.RGBA) []string {
	out := make([]string, len(colors))
	for i, c := range colors {
		out[i] = imaging.Hex(c)
	}
	return out
}

// === Session Handlers ===

type loadBackgroundArgs struct {
	Path string `json:"path"`
}

type loadBackgroundResult struct {
	*imaging.Background
	PalettePending bool `json:"palette_pending"`
}

func (s *Server) handleLoadBackground(args json.RawMessage) (interface{}, error) {
	var a loadBackgroundArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("%w: path is required", ErrInvalidArgs)
	}
	bg, err := imaging.LoadBackground(s.cache, a.Path)
	if err != nil {
		return nil, err
	}
	s.background = bg
	s.palettePending = true
	s.manager.SampleBackground(bg.Image)
	return loadBackgroundResult{Background: bg, PalettePending: s.palettePending}, nil
}

type settingsArgs struct {
	CreationType           *string  `json:"creation_type"`
	Color                  *string  `json:"color"`
	LineWidth              *float64 `json:"line_width"`
	UserInteractionEnabled *bool    `json:"user_interaction_enabled"`
	ObfuscatePattern       *string  `json:"obfuscate_pattern"`
	KeepSquare             *bool    `json:"keep_square"`
	FontSize               *float64 `json:"font_size"`
}

// parseCreationType maps a client name to a creation type. "none" disables creation.
func parseCreationType(name string) (annotation.Type, error) {
	if name == "none" {
		return annotation.TypeNone, nil
	}
	t := annotation.Type(name)
	if t == annotation.TypeNone || !t.Valid() {
		return annotation.TypeNone, fmt.Errorf("%w: unknown creation type %q", ErrInvalidArgs, name)
	}
	return t, nil
}

func (s *Server) handleSettings(args json.RawMessage) (interface{}, error) {
	var a settingsArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	st := s.manager.Settings()
	if a.CreationType != nil {
		t, err := parseCreationType(*a.CreationType)
		if err != nil {
			return nil, err
		}
		st.CreationType = t
	}
	if a.Color != nil {
		c, err := imaging.ParseHex(*a.Color)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidArgs, err)
		}
		st.Color = c
		st.TextStyle.TextColor = c
	}
	if a.LineWidth != nil {
		if *a.LineWidth <= 0 {
			return nil, fmt.Errorf("%w: line width must be positive", ErrInvalidArgs)
		}
		st.LineWidth = *a.LineWidth
	}
	if a.UserInteractionEnabled != nil {
		st.UserInteractionEnabled = *a.UserInteractionEnabled
	}
	if a.ObfuscatePattern != nil {
		p := manager.ObfuscatePattern(*a.ObfuscatePattern)
		if !p.Valid() {
			return nil, fmt.Errorf("%w: unknown obfuscate pattern %q", ErrInvalidArgs, *a.ObfuscatePattern)
		}
		st.ObfuscatePattern = p
	}
	if a.KeepSquare != nil {
		st.KeepSquare = *a.KeepSquare
	}
	if a.FontSize != nil {
		if *a.FontSize < annotation.MinFontSize {
			return nil, fmt.Errorf("%w: font size must be at least %v", ErrInvalidArgs, annotation.MinFontSize)
		}
		st.TextStyle.FontSize = *a.FontSize
	}

	s.manager.SetSettings(st)
	return struct {
		Settings SettingsView `json:"settings"`
		SessionView
	}{newSettingsView(s.manager.Settings()), s.sessionView()}, nil
}

func (s *Server) handleReset() (interface{}, error) {
	s.handler.EndEditing()
	s.manager.ClearBackground()
	s.newSession()
	s.renderer.take()
	s.logger.Printf("[server] session reset")
	return s.sessionView(), nil
}

// === Pointer Handlers ===

type pointerArgs struct {
	X          *float64 `json:"x"`
	Y          *float64 `json:"y"`
	KeepSquare bool     `json:"keep_square"`
}

func (a pointerArgs) point() (geometry.Point, error) {
	if a.X == nil || a.Y == nil {
		return geometry.Point{}, fmt.Errorf("%w: x and y are required", ErrInvalidArgs)
	}
	return geometry.Pt(*a.X, *a.Y), nil
}

func (s *Server) decodePointer(args json.RawMessage) (geometry.Point, error) {
	var a pointerArgs
	if err := decodeArgs(args, &a); err != nil {
		return geometry.Point{}, err
	}
	p, err := a.point()
	if err != nil {
		return geometry.Point{}, err
	}
	s.handler.SetKeepSquare(a.KeepSquare)
	return p, nil
}

func (s *Server) handlePointer(args json.RawMessage, event func(geometry.Point)) (interface{}, error) {
	p, err := s.decodePointer(args)
	if err != nil {
		return nil, err
	}
	event(p)
	return s.sessionView(), nil
}

func (s *Server) handlePointerMoved(args json.RawMessage) (interface{}, error) {
	p, err := s.decodePointer(args)
	if err != nil {
		return nil, err
	}
	hint := s.handler.PointerMoved(p)
	return struct {
		Cursor interaction.CursorHint `json:"cursor"`
		SessionView
	}{hint, s.sessionView()}, nil
}

// === Text Handlers ===

type textInputArgs struct {
	Text string `json:"text"`
}

func (s *Server) handleTextInput(args json.RawMessage) (interface{}, error) {
	var a textInputArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if s.renderer.onChange == nil {
		return nil, errNotEditing
	}
	s.renderer.onChange(a.Text)
	return s.sessionView(), nil
}

type editTextArgs struct {
	ID annotation.ID `json:"id"`
}

func (s *Server) handleEditText(args json.RawMessage) (interface{}, error) {
	var a editTextArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if !s.handler.EditExisting(a.ID) {
		return nil, fmt.Errorf("no label with id %q", a.ID)
	}
	return s.sessionView(), nil
}

func (s *Server) handleEndEditing() (interface{}, error) {
	if !s.handler.EndEditing() {
		return nil, errNotEditing
	}
	return s.sessionView(), nil
}

// === Document Handlers ===

func (s *Server) handleHistory(perform func() bool) (interface{}, error) {
	performed := perform()
	return struct {
		Performed bool `json:"performed"`
		SessionView
	}{performed, s.sessionView()}, nil
}

func (s *Server) handleDeleteSelected() (interface{}, error) {
	sel, ok := s.manager.Selected()
	if !ok || !s.manager.Contains(sel.Meta().ID) {
		return nil, errors.New("nothing selected")
	}
	s.manager.DeleteSelected()
	return struct {
		Deleted annotation.ID `json:"deleted"`
		SessionView
	}{sel.Meta().ID, s.sessionView()}, nil
}

func (s *Server) handleList() interface{} {
	models := s.manager.Models()
	views := make([]ModelView, len(models))
	for i, m := range models {
		views[i] = newModelView(m)
	}
	var selected annotation.ID
	if sel, ok := s.manager.Selected(); ok {
		selected = sel.Meta().ID
	}
	return struct {
		Models   []ModelView   `json:"models"`
		Selected annotation.ID `json:"selected,omitempty"`
	}{views, selected}
}

type statsResult struct {
	Count      int                 `json:"count"`
	ShapeTypes []string            `json:"shape_types"`
	CanUndo    bool                `json:"can_undo"`
	CanRedo    bool                `json:"can_redo"`
	UndoName   string              `json:"undo_name,omitempty"`
	RedoName   string              `json:"redo_name,omitempty"`
	Background *imaging.Background `json:"background,omitempty"`
	Settings   SettingsView        `json:"settings"`
	OCR        *ocrInfo            `json:"ocr,omitempty"`
}

type ocrInfo struct {
	Language string `json:"language"`
	Version  string `json:"version"`
}

func (s *Server) handleStats() interface{} {
	h := s.manager.History()
	var info *ocrInfo
	if e, ok := s.words.(engineInfo); ok {
		info = &ocrInfo{Language: e.Language(), Version: e.Version()}
	}
	return statsResult{
		Count:      s.manager.Count(),
		ShapeTypes: s.manager.ShapeTypes(),
		CanUndo:    h.CanUndo(),
		CanRedo:    h.CanRedo(),
		UndoName:   h.UndoName(),
		RedoName:   h.RedoName(),
		Background: s.background,
		Settings:   newSettingsView(s.manager.Settings()),
		OCR:        info,
	}
}

type paletteArgs struct {
	Region         *geometry.Rect `json:"region"`
	UnderSelection bool           `json:"under_selection"`
}

type paletteResult struct {
	Source  string   `json:"source"`
	Colors  []string `json:"colors"`
	InUse   []string `json:"in_use"`
	Pending bool     `json:"pending"`
}

func (s *Server) handlePalette(args json.RawMessage) (interface{}, error) {
	var a paletteArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	region := a.Region
	if a.UnderSelection {
		sel, ok := s.manager.Selected()
		if !ok {
			return nil, errors.New("nothing selected")
		}
		bounds := annotation.SelectionPath(sel).Bounds()
		region = &bounds
	}

	if region == nil {
		palette := s.manager.BackgroundPalette()
		return paletteResult{
			Source:  "background",
			Colors:  hexColors(palette),
			InUse:   hexColors(s.manager.ColorsInUse(palette)),
			Pending: s.palettePending,
		}, nil
	}

	if s.background == nil {
		return nil, imaging.ErrNoBackground
	}
	img := s.background.Image
	palette, err := imaging.RegionPalette(img, imaging.PixelRect(*region, img.Bounds()), s.cfg.PaletteSize)
	if err != nil {
		return nil, err
	}
	return paletteResult{
		Source: "region",
		Colors: hexColors(palette),
		InUse:  hexColors(s.manager.ColorsInUse(palette)),
	}, nil
}

// Redaction defaults.
const (
	defaultMinConfidence = 0.6
	defaultRedactPadding = 2.0
)

type redactArgs struct {
	Match         string   `json:"match"`
	MinConfidence *float64 `json:"min_confidence"`
	Padding       *float64 `json:"padding"`
}

type redactResult struct {
	Count  int             `json:"count"`
	IDs    []annotation.ID `json:"ids"`
	Words  []ocr.Word      `json:"words"`
	Bounds *geometry.Rect  `json:"bounds,omitempty"`
	SessionView
}

// handleRedactText covers every recognized word matching the query with an
// obfuscate rect. All rects are added as one undoable change.
func (s *Server) handleRedactText(args json.RawMessage) (interface{}, error) {
	var a redactArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	minConfidence := defaultMinConfidence
	if a.MinConfidence != nil {
		minConfidence = *a.MinConfidence
	}
	if minConfidence < 0 || minConfidence > 1 {
		return nil, fmt.Errorf("%w: min_confidence must be between 0 and 1", ErrInvalidArgs)
	}
	padding := defaultRedactPadding
	if a.Padding != nil {
		padding = *a.Padding
	}
	if padding < 0 {
		return nil, fmt.Errorf("%w: padding must not be negative", ErrInvalidArgs)
	}
	if s.background == nil {
		return nil, imaging.ErrNoBackground
	}

	img := s.background.Image
	words, err := s.words.FindWords(img, minConfidence)
	if err != nil {
		return nil, fmt.Errorf("recognize text: %w", err)
	}
	words = ocr.Filter(words, a.Match)

	var rects []annotation.Model
	var ids []annotation.ID
	d := s.manager.Defaults()
	for _, w := range words {
		box := imaging.CanvasRect(w.Bounds, img.Bounds()).Inset(-padding, -padding)
		r, ok := annotation.NewRect(box.Corner(geometry.BottomLeft), box.Corner(geometry.TopRight), annotation.RectObfuscate, d)
		if !ok {
			continue
		}
		d.ZPosition++
		rects = append(rects, r)
		ids = append(ids, r.ID)
	}
	if len(rects) > 0 {
		s.manager.Update(rects...)
		s.logger.Printf("[server] redacted %d words", len(rects))
	}

	result := redactResult{Count: len(rects), IDs: ids, Words: words}
	if len(words) > 0 {
		bounds := imaging.CanvasRect(ocr.Union(words), img.Bounds())
		result.Bounds = &bounds
	}
	if result.IDs == nil {
		result.IDs = []annotation.ID{}
	}
	if result.Words == nil {
		result.Words = []ocr.Word{}
	}
	result.SessionView = s.sessionView()
	return result, nil
}
