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

// Persona tool handlers

func (s *Server) handlePersonaCreate(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := mcp.ParseString(request, "name", "")
	title := mcp.ParseString(request, "title", "")
	background := mcp.ParseString(request, "background", "")
	subject := mcp.ParseString(request, "subject", "")
	customSubject := mcp.ParseString(request, "custom_subject", "")
	level := mcp.ParseString(request, "level", "")
	useGeneralKnowledge := mcp.ParseBoolean(request, "use_general_knowledge", true)

	s.logToolCall(global.ToolPersonaCreate, map[string]string{"name": name, "level": level})

	if name == "" {
		return mcp.NewToolResultError("name parameter is required"), nil
	}
	if level == "" {
		return mcp.NewToolResultError("level parameter is required"), nil
	}
	if subject == "" && customSubject == "" {
		return mcp.NewToolResultError("subject or custom_subject parameter is required"), nil
	}

	// Trait scores arrive as a flat personality object; omitted traits keep
	// their defaults through the builder's zero-score fallback
	personality := map[string]float64{}
	args := request.GetArguments()
	if val, ok := args["personality"]; ok {
		if data, err := json.Marshal(val); err == nil {
			_ = json.Unmarshal(data, &personality)
		}
	}

	voice := global.DefaultVoiceSettings()
	if val, ok := args["voice_settings"]; ok {
		if data, err := json.Marshal(val); err == nil {
			_ = json.Unmarshal(data, &voice)
		}
	}

	core := persona.CoreSettings{
		ExplanationDetail:   personality[global.TraitExplanationDetail],
		QuestionSensitivity: personality[global.TraitQuestionSensitivity],
		SafetyEmphasis:      personality[global.TraitSafetyEmphasis],
		TheoryVsPractice:    personality[global.TraitTheoryVsPractice],
	}
	style := persona.StyleSettings{
		NaturalSpeech: personality[global.TraitNaturalSpeech],
		Adaptability:  personality[global.TraitAdaptability],
		Encouragement: personality[global.TraitEncouragement],
	}
	tuning := persona.PersonalityTuning{
		Friendliness:         personality[global.TraitFriendliness],
		HumorLevel:           personality[global.TraitHumorLevel],
		InteractionFrequency: personality[global.TraitInteractionFrequency],
		ResponseSpeed:        personality[global.TraitResponseSpeed],
		VocabularyLevel:      personality[global.TraitVocabularyLevel],
	}

	record := persona.Assemble(core, style, tuning,
		persona.SpecialtySettings{Subject: subject, CustomSubject: customSubject, Level: level},
		persona.DocumentSettings{UseGeneralKnowledge: useGeneralKnowledge},
		persona.IdentitySettings{Name: name, Title: title, Background: background},
		voice,
	)

	if valid, problems := persona.Validate(record); !valid {
		return mcp.NewToolResultError(joinStrings(problems, "; ")), nil
	}

	if err := s.store.SavePersona(record); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return createJSONResult(record)
}

func (s *Server) handlePersonaGet(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := mcp.ParseString(request, "id", "")

	s.logToolCall(global.ToolPersonaGet, map[string]string{"id": id})

	if id == "" {
		return mcp.NewToolResultError("id parameter is required"), nil
	}

	p, found, err := s.store.GetPersona(id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if !found {
		return mcp.NewToolResultError(fmt.Sprintf("persona not found: %s", id)), nil
	}

	return createJSONResult(p)
}

func (s *Server) handlePersonaList(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.logToolCall(global.ToolPersonaList, nil)

	personas, err := s.store.ListPersonas()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return createJSONResult(global.PersonaListResponse{
		Personas:      personas,
		TotalCount:    len(personas),
		ReturnedCount: len(personas),
	})
}

func (s *Server) handlePersonaRecent(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := int(mcp.ParseFloat64(request, "limit", 0))

	s.logToolCall(global.ToolPersonaRecent, nil)

	all, err := s.store.ListPersonas()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	recent, err := s.store.ListRecentPersonas(limit)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return createJSONResult(global.PersonaListResponse{
		Personas:      recent,
		TotalCount:    len(all),
		ReturnedCount: len(recent),
	})
}

func (s *Server) handlePersonaDelete(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := mcp.ParseString(request, "id", "")

	s.logToolCall(global.ToolPersonaDelete, map[string]string{"id": id})

	if id == "" {
		return mcp.NewToolResultError("id parameter is required"), nil
	}

	if err := s.store.DeletePersona(id); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := map[string]interface{}{
		"id":      id,
		"deleted": true,
	}

	return createJSONResult(result)
}

func (s *Server) handlePersonaValidate(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.logToolCall(global.ToolPersonaValidate, nil)

	args := request.GetArguments()
	val, ok := args["document"]
	if !ok {
		return mcp.NewToolResultError("document parameter is required"), nil
	}
	doc, ok := val.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("document parameter must be an object"), nil
	}

	valid, problems := persona.ValidateDocument(doc)

	result := map[string]interface{}{
		"valid": valid,
	}
	if len(problems) > 0 {
		result["problems"] = problems
	}

	return createJSONResult(result)
}

func (s *Server) handlePersonaExport(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := mcp.ParseString(request, "id", "")

	s.logToolCall(global.ToolPersonaExport, map[string]string{"id": id})

	if id == "" {
		return mcp.NewToolResultError("id parameter is required"), nil
	}

	export, err := s.store.ExportPersona(id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return createJSONResult(export)
}

func (s *Server) handlePersonaImport(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	data := mcp.ParseString(request, "data", "")

	s.logToolCall(global.ToolPersonaImport, nil)

	if data == "" {
		return mcp.NewToolResultError("data parameter is required"), nil
	}

	p, err := s.store.ImportPersona([]byte(data))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return createJSONResult(p)
}

func (s *Server) handlePersonaSanitizeName(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := mcp.ParseString(request, "name", "")

	s.logToolCall(global.ToolPersonaSanitizeName, map[string]string{"name": name})

	if name == "" {
		return mcp.NewToolResultError("name parameter is required"), nil
	}

	result := map[string]string{
		"name":      name,
		"sanitized": persona.SanitizeName(name),
	}

	return createJSONResult(result)
}
