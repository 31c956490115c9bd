/******************************************************************************
 * Copyright (c) 2025-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

// Package prompt renders the Korean system prompt and lesson request that the
// chat layer sends to the model. Rendering is pure and deterministic: the
// same persona always produces the same prompt.
package prompt

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PivotLLM/Preceptor/global"
)

// promptTrait pairs a trait key with its prompt label and the hint shown
// after the score.
type promptTrait struct {
	name  string
	label string
	hint  string
}

// promptTraits drives the personality block, in canonical trait order.
var promptTraits = []promptTrait{
	{global.TraitFriendliness, "친근함 수준", "0: 매우 엄격 ↔ 100: 매우 친근"},
	{global.TraitHumorLevel, "유머 수준", "0: 진지함 ↔ 100: 유머러스"},
	{global.TraitEncouragement, "격려 수준", "0: 객관적 ↔ 100: 매우 격려적"},
	{global.TraitInteractionFrequency, "상호작용 빈도", "0: 일방적 설명 ↔ 100: 활발한 상호작용"},
	{global.TraitExplanationDetail, "설명 상세도", "0: 간단명료 ↔ 100: 매우 상세"},
	{global.TraitTheoryVsPractice, "이론-실습 균형", "0: 이론 중심 ↔ 100: 실습 중심"},
	{global.TraitSafetyEmphasis, "안전 강조", "실험/실습 시 안전 주의사항 강조"},
	{global.TraitAdaptability, "적응성", "학생 반응에 따른 설명 조절"},
	{global.TraitNaturalSpeech, "자연스러운 말투", "끊어지는 말, 되묻기 등"},
	{global.TraitQuestionSensitivity, "질문 민감도", "학생의 질문을 감지하는 민감도"},
	{global.TraitResponseSpeed, "응답 속도", "0: 차분한 전개 ↔ 100: 빠른 전개"},
	{global.TraitVocabularyLevel, "어휘 수준", "0: 쉬운 어휘 ↔ 100: 전문 용어"},
}

// promptRules is the fixed instruction block. The blackboard formatting tags
// are a contract with the rendering client and must not be reworded.
const promptRules = `중요한 규칙:
1. 학생과의 대화에서는 항상 교육적이고 도움이 되도록 답변하세요.
2. 칠판에 쓸 내용이 있다면 다음 형식을 사용하세요:
   - 제목: ## 제목
   - 중요한 내용: **내용** 또는 [RED]내용[/RED]
   - 수식: $수식$ 또는 [BLUE]$수식$[/BLUE]
   - 강조할 부분: [CIRCLE]내용[/CIRCLE]
   - 색상 구분: [RED], [BLUE], [GREEN] 태그 사용

3. 음성으로 읽힐 내용이므로 자연스럽고 말하기 쉬운 문장으로 구성하세요.
4. 학생의 수준에 맞는 어휘와 설명을 사용하세요.
5. 안전과 관련된 내용은 반드시 강조해서 설명하세요.
`

// Compose renders the system prompt for a persona: identity header, every
// personality trait as an X/100 score, the fixed rule block, and directives
// derived from trait thresholds. Traits absent from the persona render their
// default scores.
func Compose(p global.Persona) string {
	var sb strings.Builder

	// Identity
	sb.WriteString(fmt.Sprintf("당신은 %s이라는 이름의 AI 튜터입니다.\n", p.Name))
	sb.WriteString(fmt.Sprintf("%s 분야의 전문가이며, %s 수준의 학생들을 가르칩니다.\n\n", p.Subject, p.Level))

	// Personality block
	sb.WriteString("당신의 성격과 특성:\n")
	for _, t := range promptTraits {
		sb.WriteString(fmt.Sprintf("- %s: %s/100 (%s)\n", t.label, formatScore(score(p.Personality, t.name)), t.hint))
	}
	sb.WriteString("\n")

	sb.WriteString(promptRules)

	// Threshold directives. The friendliness pair is mutually exclusive and
	// the mid band (30-70) adds neither; the balance directive always picks
	// one side.
	friendliness := score(p.Personality, global.TraitFriendliness)
	switch {
	case friendliness > 70:
		sb.WriteString("\n- 친근하고 따뜻한 말투로 대화하세요. 학생을 격려하고 응원해주세요.")
	case friendliness < 30:
		sb.WriteString("\n- 전문적이고 엄격한 태도를 유지하세요. 정확한 정보 전달에 집중하세요.")
	}

	if score(p.Personality, global.TraitHumorLevel) > 60 {
		sb.WriteString("\n- 적절한 유머와 재미있는 예시를 사용해서 학습을 즐겁게 만드세요.")
	}

	if score(p.Personality, global.TraitNaturalSpeech) > 60 {
		sb.WriteString("\n- 실제 선생님처럼 자연스럽게 말하세요. 가끔 '음...', '그러니까', '잠깐만요' 같은 자연스러운 표현을 사용하세요.")
	}

	if score(p.Personality, global.TraitTheoryVsPractice) > 60 {
		sb.WriteString("\n- 실험이나 실습 위주로 설명하고, 직접 해볼 수 있는 활동을 제안하세요.")
	} else {
		sb.WriteString("\n- 이론적 배경과 원리를 중심으로 체계적으로 설명하세요.")
	}

	return sb.String()
}

// ComposeLessonRequest renders the fixed five-part lesson request for a
// topic. Callers pair it with Compose output as the system prompt.
func ComposeLessonRequest(topic string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("'%s'에 대한 수업을 진행해주세요. 다음과 같이 구성해주세요:\n\n", topic))
	sb.WriteString("1. 주제 소개와 학습 목표\n")
	sb.WriteString("2. 주요 개념 설명 (칠판에 정리할 내용 포함)\n")
	sb.WriteString("3. 실제 예시나 실험 (가능한 경우)\n")
	sb.WriteString("4. 중요 포인트 정리\n")
	sb.WriteString("5. 학생들에게 질문 던지기\n\n")
	sb.WriteString("칠판에 쓸 내용은 반드시 포맷팅 태그를 사용해주세요.")
	return sb.String()
}

// score reads a trait, falling back to the default table when absent.
func score(personality map[string]float64, name string) float64 {
	if v, ok := personality[name]; ok {
		return v
	}
	return global.TraitDefaults[name]
}

// formatScore renders whole scores without a decimal point (70, not 70.0).
func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
