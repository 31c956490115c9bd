/******************************************************************************
 * Copyright (c) 2025-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

// Package server exposes the persona, preset, prompt, chat, speech, document,
// and storage operations as MCP tools over stdio.
package server

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/PivotLLM/Preceptor/chat"
	"github.com/PivotLLM/Preceptor/config"
	"github.com/PivotLLM/Preceptor/documents"
	"github.com/PivotLLM/Preceptor/global"
	"github.com/PivotLLM/Preceptor/logging"
	"github.com/PivotLLM/Preceptor/preset"
	"github.com/PivotLLM/Preceptor/speech"
	"github.com/PivotLLM/Preceptor/store"
)

// Server wraps the MCP server with our services
type Server struct {
	config             *config.Config
	logger             *logging.Logger
	store              *store.Service
	catalog            *preset.Catalog
	documents          *documents.Service
	chat               chat.Client
	speech             speech.Synthesizer
	mcpServer          *server.MCPServer
	markNonDestructive bool
}

// New creates a new server instance. Collaborator clients are selected once
// by credential presence: without a chat key the chat tools answer with a
// fallback message, without a speech key synthesis is delegated to the caller.
func New(cfg *config.Config, logger *logging.Logger) (*Server, error) {
	creds, err := cfg.Credentials()
	if err != nil {
		return nil, err
	}

	// Create services
	storeService := store.NewService(
		store.WithDataDir(cfg.DataDir()),
		store.WithRetention(cfg.MaxPersonas()),
		store.WithFileLock(cfg.FileLocking()),
		store.WithLogger(logger),
	)

	catalog, err := preset.New(
		preset.WithStore(storeService),
		preset.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load preset catalog: %w", err)
	}

	docCfg := cfg.Documents()
	documentsService := documents.NewService(
		documents.WithDataDir(cfg.DataDir()),
		documents.WithMaxFileMB(docCfg.MaxFileMB),
		documents.WithMaxPerPersona(docCfg.MaxPerPersona),
		documents.WithLogger(logger),
	)

	var chatClient chat.Client
	if creds.AnthropicAPIKey != "" {
		chatCfg := cfg.Chat()
		chatClient, err = chat.NewHTTPClient(
			chat.WithEndpoint(chatCfg.BaseURL),
			chat.WithAPIKey(creds.AnthropicAPIKey),
			chat.WithModel(chatCfg.Model),
			chat.WithMaxTokens(chatCfg.MaxTokens),
			chat.WithTemperature(chatCfg.Temperature),
			chat.WithHistoryWindow(chatCfg.HistoryWindow),
			chat.WithLogger(logger),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create chat client: %w", err)
		}
	} else {
		logger.Warn("ANTHROPIC_API_KEY is not set - chat tools will answer with a fallback message")
	}

	var synthesizer speech.Synthesizer
	if creds.GoogleTTSAPIKey != "" {
		speechCfg := cfg.Speech()
		synthesizer, err = speech.NewHTTPSynthesizer(
			speech.WithEndpoint(speechCfg.BaseURL),
			speech.WithAPIKey(creds.GoogleTTSAPIKey),
			speech.WithLanguage(speechCfg.Language),
			speech.WithVoice(speechCfg.Voice),
			speech.WithLogger(logger),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create speech synthesizer: %w", err)
		}
	} else {
		logger.Warn("GOOGLE_TTS_API_KEY is not set - synthesis is delegated to the caller")
		synthesizer = speech.FallbackSynthesizer{}
	}

	// Create MCP server
	mcpServer := server.NewMCPServer(
		global.ProgramName,
		global.Version,
		server.WithToolCapabilities(true),
		server.WithLogging(),
	)

	srv := &Server{
		config:             cfg,
		logger:             logger,
		store:              storeService,
		catalog:            catalog,
		documents:          documentsService,
		chat:               chatClient,
		speech:             synthesizer,
		mcpServer:          mcpServer,
		markNonDestructive: cfg.MarkNonDestructive(),
	}

	// Register tools
	if err := srv.registerTools(); err != nil {
		return nil, fmt.Errorf("failed to register tools: %w", err)
	}

	return srv, nil
}

// readOnlyTool creates a tool with read-only annotations
// ReadOnly: true, Destructive: false, OpenWorld: false
func (s *Server) readOnlyTool(name string, opts ...mcp.ToolOption) mcp.Tool {
	opts = append(opts, mcp.WithToolAnnotation(mcp.ToolAnnotation{
		ReadOnlyHint:    mcp.ToBoolPtr(true),
		DestructiveHint: mcp.ToBoolPtr(false),
		OpenWorldHint:   mcp.ToBoolPtr(false),
	}))
	return mcp.NewTool(name, opts...)
}

// defaultTool creates a tool with default annotations (non-destructive)
// ReadOnly: false, Destructive: false, OpenWorld: false
func (s *Server) defaultTool(name string, opts ...mcp.ToolOption) mcp.Tool {
	opts = append(opts, mcp.WithToolAnnotation(mcp.ToolAnnotation{
		ReadOnlyHint:    mcp.ToBoolPtr(false),
		DestructiveHint: mcp.ToBoolPtr(false),
		OpenWorldHint:   mcp.ToBoolPtr(false),
	}))
	return mcp.NewTool(name, opts...)
}

// destructiveTool creates a tool with destructive annotations
// ReadOnly: false, Destructive: true (unless markNonDestructive config is set), OpenWorld: false
func (s *Server) destructiveTool(name string, opts ...mcp.ToolOption) mcp.Tool {
	destructive := true
	if s.markNonDestructive {
		destructive = false
	}
	opts = append(opts, mcp.WithToolAnnotation(mcp.ToolAnnotation{
		ReadOnlyHint:    mcp.ToBoolPtr(false),
		DestructiveHint: mcp.ToBoolPtr(destructive),
		OpenWorldHint:   mcp.ToBoolPtr(false),
	}))
	return mcp.NewTool(name, opts...)
}

// registerTools registers all MCP tools
func (s *Server) registerTools() error {
	// Persona tools
	s.mcpServer.AddTool(
		s.defaultTool(global.ToolPersonaCreate,
			mcp.WithDescription("Create a tutor persona and save it. Saves always append: editing means creating a new record. Pass trait scores in a 'personality' object ({trait_name: 0-100}) and synthesis parameters in a 'voice_settings' object ({speed, pitch, volume, auto_play}); omitted traits use their defaults."),
			mcp.WithString("name",
				mcp.Description("Display name of the tutor, e.g. 김교수님"),
				mcp.Required(),
			),
			mcp.WithString("title",
				mcp.Description("Optional title, e.g. 교수 or 박사"),
			),
			mcp.WithString("background",
				mcp.Description("Optional background description shown to students"),
			),
			mcp.WithString("subject",
				mcp.Description("Subject taught, e.g. 물리학, 화학, 생물학, 수학, 공학"),
			),
			mcp.WithString("custom_subject",
				mcp.Description("Free-form subject; takes precedence over subject when set"),
			),
			mcp.WithString("level",
				mcp.Description("Student level: 초등학교, 중학교, 고등학교, 대학교, or 대학원"),
				mcp.Required(),
			),
			mcp.WithBoolean("use_general_knowledge",
				mcp.Description("Whether the tutor may answer beyond imported documents (default: true)"),
			),
		), s.handlePersonaCreate)

	s.mcpServer.AddTool(
		s.readOnlyTool(global.ToolPersonaGet,
			mcp.WithDescription("Fetch one saved persona by id."),
			mcp.WithString("id",
				mcp.Description("Persona id as returned by persona_create or persona_list"),
				mcp.Required(),
			),
		), s.handlePersonaGet)

	s.mcpServer.AddTool(
		s.readOnlyTool(global.ToolPersonaList,
			mcp.WithDescription("List all saved personas in storage order."),
		), s.handlePersonaList)

	s.mcpServer.AddTool(
		s.readOnlyTool(global.ToolPersonaRecent,
			mcp.WithDescription("List the most recently created personas, newest first."),
			mcp.WithNumber("limit",
				mcp.Description("Maximum number of personas to return (default: 10)"),
			),
		), s.handlePersonaRecent)

	s.mcpServer.AddTool(
		s.destructiveTool(global.ToolPersonaDelete,
			mcp.WithDescription("Delete a saved persona. Deleting an id that does not exist is not an error."),
			mcp.WithString("id",
				mcp.Description("Persona id"),
				mcp.Required(),
			),
		), s.handlePersonaDelete)

	s.mcpServer.AddTool(
		s.readOnlyTool(global.ToolPersonaValidate,
			mcp.WithDescription("Validate a persona document without saving it. Pass the record as a 'document' object. Returns every problem found, not just the first."),
		), s.handlePersonaValidate)

	s.mcpServer.AddTool(
		s.readOnlyTool(global.ToolPersonaExport,
			mcp.WithDescription("Export one persona as a shareable envelope."),
			mcp.WithString("id",
				mcp.Description("Persona id"),
				mcp.Required(),
			),
		), s.handlePersonaExport)

	s.mcpServer.AddTool(
		s.defaultTool(global.ToolPersonaImport,
			mcp.WithDescription("Import a persona export envelope. The imported record gets a fresh id and timestamp."),
			mcp.WithString("data",
				mcp.Description("JSON export envelope produced by persona_export"),
				mcp.Required(),
			),
		), s.handlePersonaImport)

	s.mcpServer.AddTool(
		s.readOnlyTool(global.ToolPersonaSanitizeName,
			mcp.WithDescription("Turn a display name into an identifier safe for file and directory names."),
			mcp.WithString("name",
				mcp.Description("Display name to sanitize"),
				mcp.Required(),
			),
		), s.handlePersonaSanitizeName)

	// Preset tools
	s.mcpServer.AddTool(
		s.readOnlyTool(global.ToolPresetList,
			mcp.WithDescription("List all preset names, built-in and user-saved."),
		), s.handlePresetList)

	s.mcpServer.AddTool(
		s.readOnlyTool(global.ToolPresetGet,
			mcp.WithDescription("Fetch one preset by name. Built-ins are checked first."),
			mcp.WithString("name",
				mcp.Description("Preset name, e.g. 물리 교수님"),
				mcp.Required(),
			),
		), s.handlePresetGet)

	s.mcpServer.AddTool(
		s.defaultTool(global.ToolPresetSave,
			mcp.WithDescription("Save a user preset under a name. Pass the preset as a 'preset' object ({subject, level, personality, voice_settings, description}). Built-in names are reserved. Saving an existing name overwrites it and keeps its creation stamp."),
			mcp.WithString("name",
				mcp.Description("Preset name"),
				mcp.Required(),
			),
		), s.handlePresetSave)

	s.mcpServer.AddTool(
		s.destructiveTool(global.ToolPresetDelete,
			mcp.WithDescription("Delete a user preset. Built-ins cannot be deleted. Deleting a name that does not exist is not an error."),
			mcp.WithString("name",
				mcp.Description("Preset name"),
				mcp.Required(),
			),
		), s.handlePresetDelete)

	s.mcpServer.AddTool(
		s.readOnlyTool(global.ToolPresetSuggest,
			mcp.WithDescription("Suggest presets matching a subject and level, best match first."),
			mcp.WithString("subject",
				mcp.Description("Subject to match, e.g. 화학"),
			),
			mcp.WithString("level",
				mcp.Description("Student level to match, e.g. 고등학교"),
			),
		), s.handlePresetSuggest)

	s.mcpServer.AddTool(
		s.readOnlyTool(global.ToolPresetApply,
			mcp.WithDescription("Overlay a preset onto a persona and return the merged record without saving. Only subject, level, personality, and voice settings come from the preset. Pass the base persona as a 'persona' object or a 'persona_id'; without either the defaults are used."),
			mcp.WithString("name",
				mcp.Description("Preset name"),
				mcp.Required(),
			),
			mcp.WithString("persona_id",
				mcp.Description("Id of a saved persona to use as the base"),
			),
		), s.handlePresetApply)

	s.mcpServer.AddTool(
		s.readOnlyTool(global.ToolPresetProfile,
			mcp.WithDescription("Summarize a preset's personality as Korean teaching-style labels."),
			mcp.WithString("name",
				mcp.Description("Preset name"),
				mcp.Required(),
			),
		), s.handlePresetProfile)

	s.mcpServer.AddTool(
		s.readOnlyTool(global.ToolPresetExport,
			mcp.WithDescription("Export one preset as a shareable envelope. Built-ins can be exported too."),
			mcp.WithString("name",
				mcp.Description("Preset name"),
				mcp.Required(),
			),
		), s.handlePresetExport)

	s.mcpServer.AddTool(
		s.defaultTool(global.ToolPresetImport,
			mcp.WithDescription("Import a preset export envelope as a user preset."),
			mcp.WithString("data",
				mcp.Description("JSON export envelope produced by preset_export"),
				mcp.Required(),
			),
		), s.handlePresetImport)

	// Prompt composition tools
	s.mcpServer.AddTool(
		s.readOnlyTool(global.ToolPromptCompose,
			mcp.WithDescription("Compose the deterministic system prompt for a persona. Pass a saved 'persona_id' or an inline 'persona' object."),
			mcp.WithString("persona_id",
				mcp.Description("Id of a saved persona"),
			),
		), s.handlePromptCompose)

	s.mcpServer.AddTool(
		s.defaultTool(global.ToolLessonCompose,
			mcp.WithDescription("Compose a structured lesson request for a topic and, when the chat collaborator is configured, dispatch it with the persona's system prompt and return the lesson."),
			mcp.WithString("topic",
				mcp.Description("Lesson topic, e.g. 뉴턴의 운동 법칙"),
				mcp.Required(),
			),
			mcp.WithString("persona_id",
				mcp.Description("Id of a saved persona"),
			),
			mcp.WithBoolean("compose_only",
				mcp.Description("Return the lesson request text without dispatching it (default: false)"),
			),
		), s.handleLessonCompose)

	// Chat collaborator tools
	s.mcpServer.AddTool(
		s.defaultTool(global.ToolChatSend,
			mcp.WithDescription("Send a student message to the chat collaborator as the given persona. Pass prior turns as a 'history' array of {role, content}; only the most recent turns are forwarded. Failures return a fallback reply rather than an error."),
			mcp.WithString("message",
				mcp.Description("Student message"),
				mcp.Required(),
			),
			mcp.WithString("persona_id",
				mcp.Description("Id of a saved persona"),
			),
		), s.handleChatSend)

	s.mcpServer.AddTool(
		s.readOnlyTool(global.ToolChatPing,
			mcp.WithDescription("Check whether the chat collaborator is configured and responding."),
		), s.handleChatPing)

	// Speech collaborator tools
	s.mcpServer.AddTool(
		s.readOnlyTool(global.ToolSpeechPrepare,
			mcp.WithDescription("Strip display formatting (blackboard tags, markdown, math delimiters, emoji) from reply text so it reads naturally as speech."),
			mcp.WithString("text",
				mcp.Description("Reply text to prepare"),
				mcp.Required(),
			),
		), s.handleSpeechPrepare)

	s.mcpServer.AddTool(
		s.defaultTool(global.ToolSpeechSynthesize,
			mcp.WithDescription("Prepare text and synthesize it to MP3 audio. Speed and pitch come from the persona's voice settings when a 'persona_id' is given; 'speed' and 'pitch' parameters override them. Without a speech credential the result asks the caller to synthesize locally."),
			mcp.WithString("text",
				mcp.Description("Text to synthesize"),
				mcp.Required(),
			),
			mcp.WithString("persona_id",
				mcp.Description("Id of a saved persona whose voice settings apply"),
			),
			mcp.WithNumber("speed",
				mcp.Description("Speaking rate override"),
			),
			mcp.WithNumber("pitch",
				mcp.Description("Pitch override"),
			),
		), s.handleSpeechSynthesize)

	s.mcpServer.AddTool(
		s.readOnlyTool(global.ToolSpeechVoices,
			mcp.WithDescription("List the available Korean synthesis voices."),
		), s.handleSpeechVoices)

	// Reference document tools
	s.mcpServer.AddTool(
		s.defaultTool(global.ToolDocumentImport,
			mcp.WithDescription("Import a reference document for a persona. Allowed types: pdf, doc, docx, txt, md. Non-text formats are converted to markdown."),
			mcp.WithString("persona",
				mcp.Description("Persona display name the document belongs to"),
				mcp.Required(),
			),
			mcp.WithString("source",
				mcp.Description("Path to the document on disk"),
				mcp.Required(),
			),
		), s.handleDocumentImport)

	s.mcpServer.AddTool(
		s.readOnlyTool(global.ToolDocumentList,
			mcp.WithDescription("List a persona's imported reference documents."),
			mcp.WithString("persona",
				mcp.Description("Persona display name"),
				mcp.Required(),
			),
		), s.handleDocumentList)

	s.mcpServer.AddTool(
		s.destructiveTool(global.ToolDocumentRemove,
			mcp.WithDescription("Remove one imported reference document."),
			mcp.WithString("persona",
				mcp.Description("Persona display name"),
				mcp.Required(),
			),
			mcp.WithString("name",
				mcp.Description("Document name as returned by document_list"),
				mcp.Required(),
			),
		), s.handleDocumentRemove)

	// Storage tools
	s.mcpServer.AddTool(
		s.readOnlyTool(global.ToolBackupExport,
			mcp.WithDescription("Export every persona and user preset as one backup snapshot."),
		), s.handleBackupExport)

	s.mcpServer.AddTool(
		s.destructiveTool(global.ToolBackupRestore,
			mcp.WithDescription("Replace all personas and user presets with a backup snapshot. The snapshot must carry both collections; restore is all-or-nothing."),
			mcp.WithString("data",
				mcp.Description("JSON snapshot produced by backup_export"),
				mcp.Required(),
			),
		), s.handleBackupRestore)

	s.mcpServer.AddTool(
		s.readOnlyTool(global.ToolStorageStats,
			mcp.WithDescription("Report persona and preset counts, file sizes, and the active storage backend."),
		), s.handleStorageStats)

	s.mcpServer.AddTool(
		s.destructiveTool(global.ToolStorageCleanup,
			mcp.WithDescription("Remove personas older than a cutoff. Records without a creation time are kept."),
			mcp.WithNumber("days",
				mcp.Description("Age cutoff in days (default: 30)"),
			),
		), s.handleStorageCleanup)

	// System tools
	s.mcpServer.AddTool(
		s.readOnlyTool(global.ToolHealth,
			mcp.WithDescription("Check Preceptor health status. Reports storage backend, collaborator availability, and any issues that need attention."),
		), s.handleHealth)

	return nil
}

// Run starts the MCP server with graceful shutdown
func (s *Server) Run() error {
	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	// Start server in goroutine
	errChan := make(chan error, 1)
	go func() {
		err := server.ServeStdio(s.mcpServer)
		// ServeStdio returns when stdin is closed (EOF) or on error
		errChan <- err
	}()

	s.logger.Infof("MCP server started successfully")

	// Wait for shutdown signal, stdin close, or error
	select {
	case <-sigChan:
		s.logger.Info("Shutdown signal received")
		s.logger.Info("Server stopped")
		// Flush logs before exiting
		if err := s.logger.Sync(); err != nil {
			s.logger.Warnf("Failed to flush logs on shutdown: %v", err)
		}
		return nil

	case err := <-errChan:
		if err != nil {
			s.logger.Errorf("Server error: %v", err)
			return fmt.Errorf("server error: %w", err)
		}
		// nil error means stdin was closed (EOF) - normal exit
		s.logger.Info("Connection closed")
		s.logger.Info("Server exiting")
		return nil
	}
}
