// Package mcp serves the engine bridge as a Model Context Protocol tool.
//
// The server registers a single tool, best_move, that takes a FEN position
// and answers with either a move token or a sentinel result code. Sentinel
// answers are flagged as tool errors so MCP clients can tell them apart.
package mcp
