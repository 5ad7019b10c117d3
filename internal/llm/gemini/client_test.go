package gemini

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"

	"github.com/joseph-ayodele/resumes-tracker/internal/common"
	"github.com/joseph-ayodele/resumes-tracker/internal/llm"
)

type fakeGenerator struct {
	content string
	err     error
	got     []llms.MessageContent
}

func (f *fakeGenerator) GenerateContent(_ context.Context, msgs []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	f.got = msgs
	if f.err != nil {
		return nil, f.err
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: f.content}}}, nil
}

func TestExtract(t *testing.T) {
	gen := &fakeGenerator{content: "```json\n{\"이름\": \"홍길동\", \"포지션\": [\"백엔드\", \"데브옵스\"], \"전화번호\": null}\n```"}
	c := newWithGenerator(Config{Model: "gemini-test"}, gen, nil)

	doc, err := llm.NewDocument("홍길동.pdf", []byte("%PDF-1.4"), 0)
	require.NoError(t, err)

	rec, raw, err := c.Extract(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, "홍길동", rec["이름"])
	assert.Equal(t, "백엔드, 데브옵스", rec["포지션"])
	assert.NotContains(t, rec, "전화번호")
	assert.JSONEq(t, `{"이름":"홍길동","포지션":"백엔드, 데브옵스"}`, string(raw))

	require.Len(t, gen.got, 1)
	assert.Equal(t, llms.ChatMessageTypeHuman, gen.got[0].Role)
	require.Len(t, gen.got[0].Parts, 3)
	schema, ok := gen.got[0].Parts[1].(llms.TextContent)
	require.True(t, ok)
	assert.Equal(t, llm.SchemaPrompt(), schema.Text)
	assert.Contains(t, schema.Text, `"required"`)
	assert.Contains(t, schema.Text, `"additionalProperties": false`)
	bin, ok := gen.got[0].Parts[2].(llms.BinaryContent)
	require.True(t, ok)
	assert.Equal(t, "application/pdf", bin.MIMEType)
}

func TestExtractErrors(t *testing.T) {
	doc, err := llm.NewDocument("a.webp", []byte("RIFF"), 0)
	require.NoError(t, err)

	c := newWithGenerator(Config{}, &fakeGenerator{err: errors.New("quota exceeded")}, nil)
	_, _, err = c.Extract(context.Background(), doc)
	assert.True(t, errors.Is(err, common.ErrExtraction))
	assert.Contains(t, err.Error(), "quota exceeded")

	c = newWithGenerator(Config{}, &fakeGenerator{content: `{"이름": ""}`}, nil)
	_, _, err = c.Extract(context.Background(), doc)
	assert.True(t, errors.Is(err, common.ErrExtraction))
}
