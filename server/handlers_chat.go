/******************************************************************************
 * Copyright (c) 2025-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package server

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/PivotLLM/Preceptor/chat"
	"github.com/PivotLLM/Preceptor/global"
	"github.com/PivotLLM/Preceptor/persona"
	"github.com/PivotLLM/Preceptor/prompt"
)

// Student-facing fallback replies. Collaborator failures never surface as
// tool errors: the student always gets an apology in the tutor's language.
const (
	chatUnavailableReply = "죄송합니다. AI 서비스에 연결할 수 없습니다."
	chatAuthReply        = "API 키가 유효하지 않습니다. 설정을 확인해주세요."
	chatQuotaReply       = "API 사용량 한도에 도달했습니다. 잠시 후 다시 시도해주세요."
	chatErrorReply       = "죄송합니다. 응답을 생성하는 중 오류가 발생했습니다. 잠시 후 다시 시도해주세요."
)

// chatResponse is the reply envelope for the chat tools
type chatResponse struct {
	Reply    string `json:"reply"`
	Fallback bool   `json:"fallback"`
	Detail   string `json:"detail,omitempty"`
}

// fallbackResponse maps a collaborator failure to a student-facing reply
func fallbackResponse(err error) chatResponse {
	reply := chatErrorReply
	var svcErr *global.ServiceError
	if errors.As(err, &svcErr) {
		switch svcErr.Kind {
		case global.ServiceErrorAuth:
			reply = chatAuthReply
		case global.ServiceErrorQuota:
			reply = chatQuotaReply
		}
	}
	return chatResponse{Reply: reply, Fallback: true, Detail: err.Error()}
}

// Chat tool handlers

func (s *Server) handleChatSend(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	message := mcp.ParseString(request, "message", "")
	personaID := mcp.ParseString(request, "persona_id", "")

	s.logToolCall(global.ToolChatSend, map[string]string{"persona_id": personaID})

	if message == "" {
		return mcp.NewToolResultError("message parameter is required"), nil
	}

	p, err := s.resolvePersona(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if p == nil {
		defaults := persona.Defaults()
		p = &defaults
	}

	// Prior turns arrive as a history array of {role, content}
	var history []global.ChatTurn
	args := request.GetArguments()
	if val, ok := args["history"]; ok {
		if data, err := json.Marshal(val); err == nil {
			_ = json.Unmarshal(data, &history)
		}
	}

	if s.chat == nil {
		return createJSONResult(chatResponse{Reply: chatUnavailableReply, Fallback: true})
	}

	reply, err := s.chat.Send(ctx, chat.Request{
		System:      prompt.Compose(*p),
		UserMessage: message,
		History:     history,
	})
	if err != nil {
		s.logger.Warnf("Chat send failed: %v", err)
		return createJSONResult(fallbackResponse(err))
	}

	return createJSONResult(chatResponse{Reply: reply})
}

func (s *Server) handleChatPing(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.logToolCall(global.ToolChatPing, nil)

	result := map[string]interface{}{
		"configured": s.chat != nil,
		"responding": false,
	}
	if s.chat != nil {
		result["responding"] = s.chat.Ping(ctx)
	}

	return createJSONResult(result)
}
