/******************************************************************************
 * Copyright (c) 2025-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package speech

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PivotLLM/Preceptor/global"
	"github.com/PivotLLM/Preceptor/logging"
)

const (
	synthesizePath = "/v1/text:synthesize"
	audioEncoding  = "MP3"
	requestTimeout = 60 * time.Second
)

// Result is the outcome of one synthesis request. ClientSide true is the
// sentinel for "no audio produced here, synthesize on the caller's side".
type Result struct {
	Audio      []byte `json:"audio,omitempty"`
	ClientSide bool   `json:"client_side"`
}

// Synthesizer converts prepared text to audio. Implementations must honor
// the speed and pitch carried in the voice settings.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string, settings global.VoiceSettings) (Result, error)
}

// Voices returns the default Korean voice list offered when the vendor
// listing is unavailable.
func Voices() []global.Voice {
	return []global.Voice{
		{Name: "ko-KR-Standard-A", Gender: "FEMALE"},
		{Name: "ko-KR-Standard-B", Gender: "FEMALE"},
		{Name: "ko-KR-Standard-C", Gender: "MALE"},
		{Name: "ko-KR-Standard-D", Gender: "MALE"},
	}
}

// HTTPSynthesizer calls a Google-style text-to-speech REST endpoint.
type HTTPSynthesizer struct {
	endpoint   string
	apiKey     string
	language   string
	voice      string
	httpClient *http.Client
	logger     *logging.Logger
}

// Option is a functional option for configuring the synthesizer
type Option func(*HTTPSynthesizer) error

// WithEndpoint sets the speech API endpoint
func WithEndpoint(endpoint string) Option {
	return func(s *HTTPSynthesizer) error {
		s.endpoint = strings.TrimSuffix(endpoint, "/")
		return nil
	}
}

// WithAPIKey sets the speech API key
func WithAPIKey(key string) Option {
	return func(s *HTTPSynthesizer) error {
		s.apiKey = key
		return nil
	}
}

// WithLanguage sets the synthesis language code
func WithLanguage(language string) Option {
	return func(s *HTTPSynthesizer) error {
		if language != "" {
			s.language = language
		}
		return nil
	}
}

// WithVoice sets the synthesis voice name
func WithVoice(voice string) Option {
	return func(s *HTTPSynthesizer) error {
		if voice != "" {
			s.voice = voice
		}
		return nil
	}
}

// WithHTTPClient sets the HTTP client used for API calls
func WithHTTPClient(client *http.Client) Option {
	return func(s *HTTPSynthesizer) error {
		if client != nil {
			s.httpClient = client
		}
		return nil
	}
}

// WithLogger sets the logger for the synthesizer
func WithLogger(logger *logging.Logger) Option {
	return func(s *HTTPSynthesizer) error {
		s.logger = logger
		return nil
	}
}

// NewHTTPSynthesizer creates a synthesizer with the supplied options. The
// API key is required; callers without one should use FallbackSynthesizer.
func NewHTTPSynthesizer(opts ...Option) (*HTTPSynthesizer, error) {
	s := &HTTPSynthesizer{
		endpoint:   global.DefaultSpeechEndpoint,
		language:   global.DefaultSpeechLanguage,
		voice:      global.DefaultSpeechVoice,
		httpClient: &http.Client{Timeout: requestTimeout},
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	if s.apiKey == "" {
		return nil, &global.ConfigError{Key: "GOOGLE_TTS_API_KEY", Err: fmt.Errorf("speech API key is not set")}
	}

	return s, nil
}

// Wire types for the synthesis REST call.
type synthesizeRequest struct {
	Input       synthesisInput `json:"input"`
	Voice       voiceSelection `json:"voice"`
	AudioConfig audioConfig    `json:"audioConfig"`
}

type synthesisInput struct {
	Text string `json:"text"`
}

type voiceSelection struct {
	LanguageCode string `json:"languageCode"`
	Name         string `json:"name"`
}

type audioConfig struct {
	AudioEncoding string  `json:"audioEncoding"`
	SpeakingRate  float64 `json:"speakingRate"`
	Pitch         float64 `json:"pitch"`
}

type synthesizeResponse struct {
	AudioContent string    `json:"audioContent"`
	Error        *apiError `json:"error,omitempty"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// Synthesize converts text to MP3 audio. Speed and pitch pass straight
// through from the voice settings.
func (s *HTTPSynthesizer) Synthesize(ctx context.Context, text string, settings global.VoiceSettings) (Result, error) {
	if text == "" {
		return Result{}, s.serviceErr(global.ServiceErrorTransient, fmt.Errorf("nothing to synthesize"))
	}

	body := synthesizeRequest{
		Input: synthesisInput{Text: text},
		Voice: voiceSelection{LanguageCode: s.language, Name: s.voice},
		AudioConfig: audioConfig{
			AudioEncoding: audioEncoding,
			SpeakingRate:  settings.Speed,
			Pitch:         settings.Pitch,
		},
	}

	if s.logger != nil {
		s.logger.Debugf("Synthesizing %d characters with voice %s", len(text), s.voice)
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return Result{}, s.serviceErr(global.ServiceErrorTransient, fmt.Errorf("failed to encode request: %w", err))
	}

	endpoint := s.endpoint + synthesizePath + "?key=" + url.QueryEscape(s.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return Result{}, s.serviceErr(global.ServiceErrorTransient, fmt.Errorf("failed to build request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return Result{}, s.serviceErr(global.ServiceErrorTransient, fmt.Errorf("request failed: %w", err))
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, s.serviceErr(global.ServiceErrorTransient, fmt.Errorf("failed to read response: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		return Result{}, s.serviceErr(classifyStatus(resp.StatusCode),
			fmt.Errorf("speech API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw))))
	}

	var parsed synthesizeResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return Result{}, s.serviceErr(global.ServiceErrorTransient, fmt.Errorf("failed to decode response: %w", err))
	}
	if parsed.Error != nil {
		return Result{}, s.serviceErr(classifyStatus(parsed.Error.Code),
			fmt.Errorf("speech API error %s: %s", parsed.Error.Status, parsed.Error.Message))
	}
	if parsed.AudioContent == "" {
		return Result{}, s.serviceErr(global.ServiceErrorTransient, fmt.Errorf("speech API returned no audio"))
	}

	audio, err := base64.StdEncoding.DecodeString(parsed.AudioContent)
	if err != nil {
		return Result{}, s.serviceErr(global.ServiceErrorTransient, fmt.Errorf("failed to decode audio content: %w", err))
	}

	return Result{Audio: audio}, nil
}

func (s *HTTPSynthesizer) serviceErr(kind global.ServiceErrorKind, err error) error {
	return &global.ServiceError{Service: "speech", Kind: kind, Err: err}
}

func classifyStatus(status int) global.ServiceErrorKind {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return global.ServiceErrorAuth
	case http.StatusTooManyRequests:
		return global.ServiceErrorQuota
	default:
		return global.ServiceErrorTransient
	}
}

// FallbackSynthesizer stands in when no speech credential is configured.
// Every request reports that synthesis belongs on the client.
type FallbackSynthesizer struct{}

func (FallbackSynthesizer) Synthesize(_ context.Context, _ string, _ global.VoiceSettings) (Result, error) {
	return Result{ClientSide: true}, nil
}
