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
	"github.com/PivotLLM/Preceptor/speech"
)

// Helper function to create JSON tool results safely
func createJSONResult(data interface{}) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(data)
	if err != nil {
		return mcp.NewToolResultError("Failed to create JSON result"), nil
	}
	return result, nil
}

// logToolCall logs an MCP tool invocation at INFO level
func (s *Server) logToolCall(toolName string, params map[string]string) {
	if len(params) == 0 {
		s.logger.Infof("Tool %s called", toolName)
		return
	}
	// Build params string
	var parts []string
	for k, v := range params {
		if v != "" {
			parts = append(parts, fmt.Sprintf("%s=%s", k, v))
		}
	}
	if len(parts) == 0 {
		s.logger.Infof("Tool %s called", toolName)
	} else {
		s.logger.Infof("Tool %s called: %s", toolName, joinStrings(parts, ", "))
	}
}

// joinStrings joins string slice with separator (avoiding strings import)
func joinStrings(parts []string, sep string) string {
	if len(parts) == 0 {
		return ""
	}
	result := parts[0]
	for i := 1; i < len(parts); i++ {
		result += sep + parts[i]
	}
	return result
}

// resolvePersona picks the persona a tool call refers to: a 'persona_id'
// parameter names a saved record, an inline 'persona' object is used as-is.
// Returns nil when the request carries neither.
func (s *Server) resolvePersona(request mcp.CallToolRequest) (*global.Persona, error) {
	personaID := mcp.ParseString(request, "persona_id", "")
	if personaID != "" {
		p, found, err := s.store.GetPersona(personaID)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, fmt.Errorf("persona not found: %s", personaID)
		}
		return p, nil
	}

	args := request.GetArguments()
	if val, ok := args["persona"]; ok {
		data, err := json.Marshal(val)
		if err != nil {
			return nil, fmt.Errorf("persona parameter must be an object")
		}
		var p global.Persona
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("persona parameter must be an object")
		}
		return &p, nil
	}

	return nil, nil
}

// Health tool handler

func (s *Server) handleHealth(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.logToolCall(global.ToolHealth, nil)
	var issues []string

	// Check if data directory exists
	dataDir := s.config.DataDir()
	if !global.DirExists(dataDir) {
		issues = append(issues, fmt.Sprintf("data directory does not exist: %s", dataDir))
	}

	// Check if first run
	if s.config.IsFirstRun() {
		issues = append(issues, "this is a first run - configuration was just created, please review and configure")
	}

	// Check storage
	stats, err := s.store.Stats()
	if err != nil {
		issues = append(issues, fmt.Sprintf("storage is not readable: %v", err))
	}

	// Build result
	healthy := len(issues) == 0
	status := "healthy"
	if !healthy {
		status = "unhealthy"
	}

	result := map[string]interface{}{
		"status":           status,
		"healthy":          healthy,
		"program_name":     global.ProgramName,
		"version":          global.Version,
		"data_dir":         dataDir,
		"config_path":      s.config.ConfigPath(),
		"first_run":        s.config.IsFirstRun(),
		"chat_configured":  s.chat != nil,
		"speech_delegated": s.speechDelegated(),
	}

	if stats != nil {
		result["storage_backend"] = stats.Backend
		result["persona_count"] = stats.PersonaCount
		result["preset_count"] = stats.PresetCount
	}

	if len(issues) > 0 {
		result["issues"] = issues
	}

	return createJSONResult(result)
}

// speechDelegated reports whether synthesis falls back to the caller
func (s *Server) speechDelegated() bool {
	_, delegated := s.speech.(speech.FallbackSynthesizer)
	return delegated
}
