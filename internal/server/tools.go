package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func objectSchema(properties map[string]interface{}, required ...string) map[string]interface{} {
	schema := map[string]interface{}{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func pointerSchema() map[string]interface{} {
	return objectSchema(map[string]interface{}{
		"x": map[string]interface{}{
			"type":        "number",
			"description": "X coordinate in canvas points, from the left edge",
		},
		"y": map[string]interface{}{
			"type":        "number",
			"description": "Y coordinate in canvas points, from the bottom edge (y grows upward)",
		},
		"keep_square": map[string]interface{}{
			"type":        "boolean",
			"description": "Hold the square modifier: rect and marker resizes keep equal sides",
		},
	}, "x", "y")
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Session
		{
			Name:        "annotate_load_background",
			Description: "Load the image to annotate. Returns its dimensions and starts sampling its dominant colors for the palette obfuscate pattern.",
			InputSchema: objectSchema(map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Absolute path to the image file",
				},
			}, "path"),
		},
		{
			Name:        "annotate_settings",
			Description: "Read or change drawing settings. Omitted fields are left unchanged. Changing color or line width also applies it to the selected annotation.",
			InputSchema: objectSchema(map[string]interface{}{
				"creation_type": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"none", "arrow", "rect", "obfuscate", "highlight", "pen", "number", "text"},
					"description": "What a gesture on empty canvas creates",
				},
				"color": map[string]interface{}{
					"type":        "string",
					"description": "Draw color as #RRGGBB",
				},
				"line_width": map[string]interface{}{
					"type":        "number",
					"description": "Stroke width of new arrows, rects and pen paths",
				},
				"user_interaction_enabled": map[string]interface{}{
					"type":        "boolean",
					"description": "When false, pointer events are ignored",
				},
				"obfuscate_pattern": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"solid", "palette"},
					"description": "Fill used for obfuscate rects",
				},
				"keep_square": map[string]interface{}{
					"type":        "boolean",
					"description": "Always keep rect and marker resizes square",
				},
				"font_size": map[string]interface{}{
					"type":        "number",
					"description": "Font size of new labels",
				},
			}),
		},
		{
			Name:        "annotate_reset",
			Description: "Discard every annotation, the background and all undo history.",
			InputSchema: objectSchema(map[string]interface{}{}),
		},

		// Pointer input
		{
			Name:        "annotate_pointer_down",
			Description: "Press at a point: grabs a resize knob of the selection, selects the annotation under the point, or starts creating one.",
			InputSchema: pointerSchema(),
		},
		{
			Name:        "annotate_pointer_dragged",
			Description: "Drag to a point: previews the move, resize or new shape of the current gesture.",
			InputSchema: pointerSchema(),
		},
		{
			Name:        "annotate_pointer_up",
			Description: "Release at a point: commits the gesture as one undoable change.",
			InputSchema: pointerSchema(),
		},
		{
			Name:        "annotate_pointer_moved",
			Description: "Hover at a point without pressing. Returns the cursor hint; never changes the document.",
			InputSchema: pointerSchema(),
		},

		// Text editing
		{
			Name:        "annotate_text_input",
			Description: "Replace the text of the label being edited. The label grows to fit.",
			InputSchema: objectSchema(map[string]interface{}{
				"text": map[string]interface{}{
					"type":        "string",
					"description": "Full new contents of the label",
				},
			}, "text"),
		},
		{
			Name:        "annotate_edit_text",
			Description: "Open the label with the given id for editing, as a second click on it would.",
			InputSchema: objectSchema(map[string]interface{}{
				"id": map[string]interface{}{
					"type":        "string",
					"description": "Annotation id from annotate_list",
				},
			}, "id"),
		},
		{
			Name:        "annotate_end_editing",
			Description: "Finish the label being edited. A blank new label is discarded; a cleared existing label is deleted.",
			InputSchema: objectSchema(map[string]interface{}{}),
		},

		// Document
		{
			Name:        "annotate_undo",
			Description: "Undo the most recent change.",
			InputSchema: objectSchema(map[string]interface{}{}),
		},
		{
			Name:        "annotate_redo",
			Description: "Redo the most recently undone change.",
			InputSchema: objectSchema(map[string]interface{}{}),
		},
		{
			Name:        "annotate_delete_selected",
			Description: "Delete the selected annotation.",
			InputSchema: objectSchema(map[string]interface{}{}),
		},
		{
			Name:        "annotate_list",
			Description: "List every annotation in draw order, bottom first, with its bounds.",
			InputSchema: objectSchema(map[string]interface{}{}),
		},
		{
			Name:        "annotate_stats",
			Description: "Summarize the document: annotation count, shape types and undo state.",
			InputSchema: objectSchema(map[string]interface{}{}),
		},
		{
			Name:        "annotate_palette",
			Description: "Return the background palette and which entries annotations use. With a region, or with under_selection, samples only the pixels under it.",
			InputSchema: objectSchema(map[string]interface{}{
				"region": map[string]interface{}{
					"type":        "object",
					"description": "Canvas rectangle {x, y, width, height}, bottom-left origin",
					"properties": map[string]interface{}{
						"x":      map[string]interface{}{"type": "number"},
						"y":      map[string]interface{}{"type": "number"},
						"width":  map[string]interface{}{"type": "number"},
						"height": map[string]interface{}{"type": "number"},
					},
				},
				"under_selection": map[string]interface{}{
					"type":        "boolean",
					"description": "Sample under the selected annotation's bounds",
				},
			}),
		},
		{
			Name:        "annotate_redact_text",
			Description: "Recognize text in the background (Tesseract OCR) and cover each matching word with an obfuscate rect. All rects are one undoable change.",
			InputSchema: objectSchema(map[string]interface{}{
				"match": map[string]interface{}{
					"type":        "string",
					"description": "Only words containing this text, ignoring case. Omit to cover every word.",
				},
				"min_confidence": map[string]interface{}{
					"type":        "number",
					"description": "Minimum OCR confidence 0.0-1.0. Default 0.6",
					"default":     0.6,
				},
				"padding": map[string]interface{}{
					"type":        "number",
					"description": "Points added around each word. Default 2",
					"default":     2,
				},
			}),
		},
	}
}
