// Package server exposes one interactive annotation session over MCP
// (Model Context Protocol).
//
// The server speaks JSON-RPC 2.0 over stdio, one request per line:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Session:
//   - annotate_load_background: Load the image to draw over
//   - annotate_settings: Read or change creation type, color, line width and the rest
//   - annotate_reset: Start over with an empty document
//
// Pointer input (canvas points, y up):
//   - annotate_pointer_down, annotate_pointer_dragged, annotate_pointer_up
//   - annotate_pointer_moved: Hover feedback only
//
// Text editing:
//   - annotate_text_input, annotate_edit_text, annotate_end_editing
//
// Document:
//   - annotate_undo, annotate_redo, annotate_delete_selected
//   - annotate_list, annotate_stats, annotate_palette
//   - annotate_redact_text: Cover recognized words with obfuscate rects
//
// Tools that can change the session return its state, the selection and the
// renderer events (render, remove, select, deselect, start_editing,
// stop_editing, cursor) raised since the previous call.
//
// # Threading
//
// Every request runs on the goroutine that called Serve. Background palette
// sampling runs on its own goroutine and its result is queued back onto the
// request loop, so the document is only ever touched from one goroutine.
//
// # Error Handling
//
// Tool failures are returned as JSON-RPC errors:
//   - -32602: malformed or out-of-range arguments (ErrInvalidArgs)
//   - -32000: any other tool failure, including ErrUnknownTool
//   - -32601: unknown method
package server
