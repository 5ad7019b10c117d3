package llm

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/resumes-tracker/constants"
	"github.com/joseph-ayodele/resumes-tracker/internal/common"
)

func TestInstructionListsEveryField(t *testing.T) {
	for i, f := range constants.ResumeFields {
		assert.Contains(t, ExtractionInstruction, f, "field %d", i)
	}
	assert.True(t, strings.HasSuffix(ExtractionInstruction, "정확한 JSON 형식으로만 응답하세요."))
	assert.Contains(t, BuildUserPrompt(Document{Filename: "cv.pdf"}), "파일명: cv.pdf")
}

func TestResumeJSONSchema(t *testing.T) {
	schema := ResumeJSONSchema()
	props := schema["properties"].(map[string]any)
	assert.Len(t, props, len(constants.ResumeFields))
	assert.Equal(t, []string{constants.FieldName}, schema["required"])

	assert.NoError(t, ValidateJSONAgainstSchema(schema, []byte(`{"이름":"홍길동","성별":"여"}`)))
	assert.Error(t, ValidateJSONAgainstSchema(schema, []byte(`{"성별":"여"}`)))
	assert.Error(t, ValidateJSONAgainstSchema(schema, []byte(`{"이름":"홍길동","취미":"독서"}`)))
	assert.Error(t, ValidateJSONAgainstSchema(schema, []byte(`{"이름":1}`)))
}

func TestNormalizeAndSanitizeJSON(t *testing.T) {
	in := []byte(`{
		"이름": "  홍길동 ",
		"나이(탄생연도)": 1990,
		"최종학력(학교-전공)": "서울대 컴퓨터공학",
		"최종학력(전공)": "KAIST 전산학",
		"성별": "null",
		"이메일": "",
		"핵심역량": ["Go", " ", "Kubernetes"],
		"메모": "x",
		"전화번호": true
	}`)
	out, dropped, err := NormalizeAndSanitizeJSON(in, nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"이름": "홍길동",
		"나이/탄생연도": "1990",
		"최종학력(전공)": "KAIST 전산학",
		"핵심역량": "Go, Kubernetes",
		"전화번호": "true"
	}`, string(out))
	assert.Contains(t, dropped, "메모(unknown)")
	assert.Contains(t, dropped, "성별(empty)")

	_, _, err = NormalizeAndSanitizeJSON([]byte(`[1,2]`), nil)
	assert.Error(t, err)
}

func TestParseExtraction(t *testing.T) {
	rec, _, err := ParseExtraction([]byte(`{"이름":"홍길동","총경력":"5년"}`), nil)
	require.NoError(t, err)
	assert.Equal(t, "5년", rec["총경력"])

	_, _, err = ParseExtraction([]byte(`{"이름":null}`), nil)
	assert.True(t, errors.Is(err, common.ErrExtraction))
}

func TestNewDocument(t *testing.T) {
	doc, err := NewDocument("Resume.JPG", []byte{1, 2, 3}, 1)
	require.NoError(t, err)
	assert.Equal(t, constants.IMAGE, doc.Format)
	assert.Equal(t, "image/jpeg", doc.MIMEType)
	assert.Equal(t, "data:image/jpeg;base64,AQID", doc.DataURL())

	_, err = NewDocument("resume.docx", []byte{1}, 1)
	assert.True(t, errors.Is(err, common.ErrInvalidInput))

	_, err = NewDocument("resume.png", nil, 1)
	assert.True(t, errors.Is(err, common.ErrInvalidInput))

	_, err = NewDocument("big.png", make([]byte, 1024*1024+1), 1)
	assert.True(t, errors.Is(err, common.ErrInvalidInput))
}

func TestLoadDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cv.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.7"), 0o600))

	doc, err := LoadDocument(path, 0)
	require.NoError(t, err)
	assert.Equal(t, "cv.pdf", doc.Filename)
	assert.Equal(t, constants.PDF, doc.Format)

	_, err = LoadDocument(dir, 0)
	assert.Error(t, err)
	_, err = LoadDocument(filepath.Join(dir, "missing.pdf"), 0)
	assert.Error(t, err)
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"nested message", `{"error":{"message":"quota exceeded","code":429}}`, "quota exceeded"},
		{"string error", `{"error":"bad key"}`, "bad key"},
		{"plain body", "  upstream timeout \n", "upstream timeout"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errorMessage([]byte(tt.body)))
		})
	}

	long := strings.Repeat("가", maxErrorBody+50)
	got := errorMessage([]byte(long))
	assert.Equal(t, maxErrorBody+1, len([]rune(got)))
	assert.True(t, strings.HasSuffix(got, "…"))

	err := &StatusError{Status: 503}
	assert.Equal(t, "provider returned status 503", err.Error())
}
