/******************************************************************************
 * Copyright (c) 2025-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package server

import (
	"context"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/PivotLLM/Preceptor/global"
)

// Storage tool handlers

func (s *Server) handleBackupExport(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.logToolCall(global.ToolBackupExport, nil)

	snapshot, err := s.store.ExportAll()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return createJSONResult(snapshot)
}

func (s *Server) handleBackupRestore(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	data := mcp.ParseString(request, "data", "")

	s.logToolCall(global.ToolBackupRestore, nil)

	if data == "" {
		return mcp.NewToolResultError("data parameter is required"), nil
	}

	personas, presets, err := s.store.RestoreAll([]byte(data))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := map[string]interface{}{
		"personas_restored": personas,
		"presets_restored":  presets,
	}

	return createJSONResult(result)
}

func (s *Server) handleStorageStats(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.logToolCall(global.ToolStorageStats, nil)

	stats, err := s.store.Stats()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return createJSONResult(stats)
}

func (s *Server) handleStorageCleanup(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	days := int(mcp.ParseFloat64(request, "days", 0))

	s.logToolCall(global.ToolStorageCleanup, map[string]string{"days": strconv.Itoa(days)})

	removed, err := s.store.CleanOldPersonas(days)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := map[string]interface{}{
		"removed": removed,
	}

	return createJSONResult(result)
}
