/******************************************************************************
 * Copyright (c) 2025-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/PivotLLM/Preceptor/global"
	"github.com/PivotLLM/Preceptor/persona"
)

// Preset tool handlers

func (s *Server) handlePresetList(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.logToolCall(global.ToolPresetList, nil)

	names, err := s.catalog.Names()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	categories, err := s.catalog.Categories()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return createJSONResult(global.PresetListResponse{
		Names:         names,
		BuiltinCount:  len(categories["기본 프리셋"]),
		UserCount:     len(categories["사용자 프리셋"]),
		ReturnedCount: len(names),
	})
}

func (s *Server) handlePresetGet(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := mcp.ParseString(request, "name", "")

	s.logToolCall(global.ToolPresetGet, map[string]string{"name": name})

	if name == "" {
		return mcp.NewToolResultError("name parameter is required"), nil
	}

	preset, ok := s.catalog.Get(name)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("preset not found: %s", name)), nil
	}

	return createJSONResult(preset)
}

func (s *Server) handlePresetSave(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := mcp.ParseString(request, "name", "")

	s.logToolCall(global.ToolPresetSave, map[string]string{"name": name})

	if name == "" {
		return mcp.NewToolResultError("name parameter is required"), nil
	}

	args := request.GetArguments()
	val, ok := args["preset"]
	if !ok {
		return mcp.NewToolResultError("preset parameter is required"), nil
	}

	var p global.Preset
	data, err := json.Marshal(val)
	if err != nil {
		return mcp.NewToolResultError("preset parameter must be an object"), nil
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return mcp.NewToolResultError("preset parameter must be an object"), nil
	}

	if err := s.catalog.SaveUserPreset(name, p); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	// Return the stored record so the caller sees the stamps
	saved, ok := s.catalog.Get(name)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("preset not found after save: %s", name)), nil
	}

	return createJSONResult(saved)
}

func (s *Server) handlePresetDelete(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := mcp.ParseString(request, "name", "")

	s.logToolCall(global.ToolPresetDelete, map[string]string{"name": name})

	if name == "" {
		return mcp.NewToolResultError("name parameter is required"), nil
	}

	if err := s.catalog.DeleteUserPreset(name); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := map[string]interface{}{
		"name":    name,
		"deleted": true,
	}

	return createJSONResult(result)
}

func (s *Server) handlePresetSuggest(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	subject := mcp.ParseString(request, "subject", "")
	level := mcp.ParseString(request, "level", "")

	s.logToolCall(global.ToolPresetSuggest, map[string]string{"subject": subject, "level": level})

	return createJSONResult(s.catalog.Suggest(subject, level))
}

func (s *Server) handlePresetApply(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := mcp.ParseString(request, "name", "")

	s.logToolCall(global.ToolPresetApply, map[string]string{"name": name})

	if name == "" {
		return mcp.NewToolResultError("name parameter is required"), nil
	}
	if _, ok := s.catalog.Get(name); !ok {
		return mcp.NewToolResultError(fmt.Sprintf("preset not found: %s", name)), nil
	}

	base, err := s.resolvePersona(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if base == nil {
		defaults := persona.Defaults()
		base = &defaults
	}

	return createJSONResult(s.catalog.Apply(name, *base))
}

func (s *Server) handlePresetProfile(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := mcp.ParseString(request, "name", "")

	s.logToolCall(global.ToolPresetProfile, map[string]string{"name": name})

	if name == "" {
		return mcp.NewToolResultError("name parameter is required"), nil
	}
	if _, ok := s.catalog.Get(name); !ok {
		return mcp.NewToolResultError(fmt.Sprintf("preset not found: %s", name)), nil
	}

	return createJSONResult(s.catalog.Profile(name))
}

func (s *Server) handlePresetExport(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := mcp.ParseString(request, "name", "")

	s.logToolCall(global.ToolPresetExport, map[string]string{"name": name})

	if name == "" {
		return mcp.NewToolResultError("name parameter is required"), nil
	}

	export, err := s.catalog.ExportPreset(name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return createJSONResult(export)
}

func (s *Server) handlePresetImport(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	data := mcp.ParseString(request, "data", "")

	s.logToolCall(global.ToolPresetImport, nil)

	if data == "" {
		return mcp.NewToolResultError("data parameter is required"), nil
	}

	name, err := s.catalog.ImportPreset([]byte(data))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := map[string]interface{}{
		"name":     name,
		"imported": true,
	}

	return createJSONResult(result)
}
