/******************************************************************************
 * Copyright (c) 2025-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package server

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/PivotLLM/Preceptor/global"
)

// Reference document tool handlers

func (s *Server) handleDocumentImport(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	personaName := mcp.ParseString(request, "persona", "")
	source := mcp.ParseString(request, "source", "")

	s.logToolCall(global.ToolDocumentImport, map[string]string{"persona": personaName, "source": source})

	if personaName == "" {
		return mcp.NewToolResultError("persona parameter is required"), nil
	}
	if source == "" {
		return mcp.NewToolResultError("source parameter is required"), nil
	}

	ref, err := s.documents.Import(personaName, source)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return createJSONResult(ref)
}

func (s *Server) handleDocumentList(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	personaName := mcp.ParseString(request, "persona", "")

	s.logToolCall(global.ToolDocumentList, map[string]string{"persona": personaName})

	if personaName == "" {
		return mcp.NewToolResultError("persona parameter is required"), nil
	}

	refs, err := s.documents.List(personaName)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := map[string]interface{}{
		"documents": refs,
		"count":     len(refs),
	}

	return createJSONResult(result)
}

func (s *Server) handleDocumentRemove(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	personaName := mcp.ParseString(request, "persona", "")
	name := mcp.ParseString(request, "name", "")

	s.logToolCall(global.ToolDocumentRemove, map[string]string{"persona": personaName, "name": name})

	if personaName == "" {
		return mcp.NewToolResultError("persona parameter is required"), nil
	}
	if name == "" {
		return mcp.NewToolResultError("name parameter is required"), nil
	}

	if err := s.documents.Remove(personaName, name); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := map[string]interface{}{
		"name":    name,
		"removed": true,
	}

	return createJSONResult(result)
}
