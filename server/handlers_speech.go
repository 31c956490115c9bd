/******************************************************************************
 * Copyright (c) 2025-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package server

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/PivotLLM/Preceptor/global"
	"github.com/PivotLLM/Preceptor/speech"
)

// Speech tool handlers

func (s *Server) handleSpeechPrepare(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text := mcp.ParseString(request, "text", "")

	s.logToolCall(global.ToolSpeechPrepare, nil)

	if text == "" {
		return mcp.NewToolResultError("text parameter is required"), nil
	}

	result := map[string]string{
		"text": speech.PrepareText(text),
	}

	return createJSONResult(result)
}

func (s *Server) handleSpeechSynthesize(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text := mcp.ParseString(request, "text", "")
	personaID := mcp.ParseString(request, "persona_id", "")
	speed := mcp.ParseFloat64(request, "speed", 0)
	pitch := mcp.ParseFloat64(request, "pitch", 0)

	s.logToolCall(global.ToolSpeechSynthesize, map[string]string{"persona_id": personaID})

	if text == "" {
		return mcp.NewToolResultError("text parameter is required"), nil
	}

	settings := global.DefaultVoiceSettings()
	p, err := s.resolvePersona(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if p != nil {
		settings = p.VoiceSettings
	}
	if speed > 0 {
		settings.Speed = speed
	}
	if pitch > 0 {
		settings.Pitch = pitch
	}

	prepared := speech.PrepareText(text)
	if prepared == "" {
		return mcp.NewToolResultError("text contains nothing to speak"), nil
	}

	synthesized, err := s.speech.Synthesize(ctx, prepared, settings)
	if err != nil {
		s.logger.Warnf("Speech synthesis failed: %v", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	// []byte marshals as base64
	result := map[string]interface{}{
		"client_side": synthesized.ClientSide,
		"text":        prepared,
	}
	if len(synthesized.Audio) > 0 {
		result["audio"] = synthesized.Audio
	}

	return createJSONResult(result)
}

func (s *Server) handleSpeechVoices(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.logToolCall(global.ToolSpeechVoices, nil)

	return createJSONResult(speech.Voices())
}
