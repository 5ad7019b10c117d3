package llm

import (
	"fmt"
	"strings"

	"github.com/joseph-ayodele/resumes-tracker/constants"
)

// ExtractionInstruction is sent verbatim with every document.
var ExtractionInstruction = buildInstruction()

var fieldHints = map[string]string{
	constants.FieldAge:        `(예: "1990년" 또는 "32세")`,
	constants.FieldExperience: `(예: "5년", "3년 6개월")`,
	constants.FieldEducation:  `(예: "서울대학교 컴퓨터공학과")`,
	constants.FieldSkills:     "(기술스택, 핵심 능력을 쉼표로 구분)",
	constants.FieldPosition:   "(지원 직무나 희망 포지션, 쉼표로 구분 가능)",
}

func buildInstruction() string {
	var b strings.Builder
	b.WriteString("당신은 전문적인 이력서 정보 추출 전문가입니다. ")
	b.WriteString("첨부된 이력서 문서에서 다음 정보를 정확하게 추출하여 지정된 JSON 스키마 형식으로 반환하세요.\n\n")
	for i, f := range constants.ResumeFields {
		fmt.Fprintf(&b, "%d. %s", i+1, f)
		if h, ok := fieldHints[f]; ok {
			b.WriteString(" ")
			b.WriteString(h)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n만약 특정 정보를 찾을 수 없거나 관련이 없으면 해당 필드의 값은 null로 처리하세요.\n")
	b.WriteString("정확한 JSON 형식으로만 응답하세요.")
	return b.String()
}

// BuildUserPrompt adds the filename hint next to the attached document.
func BuildUserPrompt(doc Document) string {
	name := strings.TrimSpace(doc.Filename)
	if name == "" {
		return ExtractionInstruction
	}
	return ExtractionInstruction + "\n\n파일명: " + name
}
