// Package config reads the annotation server's settings from the environment.
//
// Every field has a default, so an empty environment yields a working
// configuration:
//
//	ANNOTATE_MCP_LOG_LEVEL   info      "debug" enables the debug logger
//	ANNOTATE_UNDO_LIMIT      100       0 keeps unlimited history
//	ANNOTATE_LINE_WIDTH      5         stroke width of new shapes
//	ANNOTATE_FONT_SIZE       24        font size of new labels
//	ANNOTATE_PALETTE_SIZE    6         colors sampled from a background
//	ANNOTATE_COLOR           #FF3B30   draw color of new annotations
//	ANNOTATE_OCR_LANGUAGE    eng       Tesseract language for text redaction
package config
