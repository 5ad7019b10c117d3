package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawRecord_Value(t *testing.T) {
	rec := RawRecord{
		"a":     "x",
		"blank": "  ",
		"nil":   nil,
		"num":   json.Number("1990"),
		"float": 32.0,
		"bool":  true,
		"list":  []any{"a", "b"},
	}

	tests := []struct {
		keys   []string
		want   string
		wantOK bool
	}{
		{[]string{"a"}, "x", true},
		{[]string{"blank"}, "", false},
		{[]string{"nil"}, "", false},
		{[]string{"missing"}, "", false},
		{[]string{"nil", "blank", "a"}, "x", true},
		{[]string{"num"}, "1990", true},
		{[]string{"float"}, "32", true},
		{[]string{"bool"}, "true", true},
		{[]string{"list"}, `["a","b"]`, true},
	}
	for _, tt := range tests {
		got, ok := rec.Value(tt.keys...)
		assert.Equal(t, tt.wantOK, ok, "keys %v", tt.keys)
		assert.Equal(t, tt.want, got, "keys %v", tt.keys)
	}
}

func TestDestinationSchema_Immutable(t *testing.T) {
	src := map[string]PropertyKind{"이름": KindTitle}
	s := NewDestinationSchema(src)
	src["이름"] = KindRichText
	src["성별"] = KindSelect

	k, ok := s.Kind("이름")
	require.True(t, ok)
	assert.Equal(t, KindTitle, k)
	assert.Equal(t, 1, s.Len())

	kinds := s.Kinds()
	kinds["x"] = KindEmail
	assert.Equal(t, 1, s.Len())
	assert.True(t, s.Declares("이름", KindTitle))
	assert.False(t, s.Declares("이름", KindRichText))
}

func TestProperty_MarshalJSON(t *testing.T) {
	ps := PropertySet{
		"이름":   TitleProperty("홍길동"),
		"전화번호": PhoneProperty("010-1234-5678"),
		"성별":   SelectProperty("남"),
		"포지션":  MultiSelectProperty("백엔드", "프론트엔드"),
		"총경력":  RichTextProperty("5년"),
		"이메일":  EmailProperty("hong@example.com"),
	}
	b, err := json.Marshal(ps)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"이름": {"title": [{"text": {"content": "홍길동"}}]},
		"전화번호": {"phone_number": "010-1234-5678"},
		"성별": {"select": {"name": "남"}},
		"포지션": {"multi_select": [{"name": "백엔드"}, {"name": "프론트엔드"}]},
		"총경력": {"rich_text": [{"text": {"content": "5년"}}]},
		"이메일": {"email": "hong@example.com"}
	}`, string(b))

	_, err = json.Marshal(Property{Kind: "formula"})
	assert.Error(t, err)
}

func TestBatchResult_Counts(t *testing.T) {
	b := BatchResult{Results: []RecordResult{{Success: true}, {Success: false}, {Success: true}}}
	assert.Equal(t, 3, b.Total())
	assert.Equal(t, 2, b.Succeeded())
	assert.False(t, b.AllSucceeded())
	assert.True(t, BatchResult{}.AllSucceeded())
}
