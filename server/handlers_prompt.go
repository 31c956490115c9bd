/******************************************************************************
 * Copyright (c) 2025-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package server

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/PivotLLM/Preceptor/chat"
	"github.com/PivotLLM/Preceptor/global"
	"github.com/PivotLLM/Preceptor/persona"
	"github.com/PivotLLM/Preceptor/prompt"
)

// Prompt composition tool handlers

func (s *Server) handlePromptCompose(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	personaID := mcp.ParseString(request, "persona_id", "")

	s.logToolCall(global.ToolPromptCompose, map[string]string{"persona_id": personaID})

	p, err := s.resolvePersona(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if p == nil {
		return mcp.NewToolResultError("persona_id or persona parameter is required"), nil
	}

	result := map[string]string{
		"prompt": prompt.Compose(*p),
	}

	return createJSONResult(result)
}

func (s *Server) handleLessonCompose(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	topic := mcp.ParseString(request, "topic", "")
	personaID := mcp.ParseString(request, "persona_id", "")
	composeOnly := mcp.ParseBoolean(request, "compose_only", false)

	s.logToolCall(global.ToolLessonCompose, map[string]string{"topic": topic, "persona_id": personaID})

	if topic == "" {
		return mcp.NewToolResultError("topic parameter is required"), nil
	}

	p, err := s.resolvePersona(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if p == nil {
		defaults := persona.Defaults()
		p = &defaults
	}

	lessonRequest := prompt.ComposeLessonRequest(topic)

	result := map[string]interface{}{
		"topic":      topic,
		"request":    lessonRequest,
		"dispatched": false,
	}

	if composeOnly {
		return createJSONResult(result)
	}
	if s.chat == nil {
		result["detail"] = chatUnavailableReply
		return createJSONResult(result)
	}

	// The lesson request is a fresh exchange: no history travels with it
	lesson, err := s.chat.Send(ctx, chat.Request{
		System:      prompt.Compose(*p),
		UserMessage: lessonRequest,
	})
	if err != nil {
		s.logger.Warnf("Lesson dispatch failed: %v", err)
		fallback := fallbackResponse(err)
		result["detail"] = fallback.Reply
		return createJSONResult(result)
	}

	result["dispatched"] = true
	result["lesson"] = lesson

	return createJSONResult(result)
}
