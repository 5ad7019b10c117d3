package mapper

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/resumes-tracker/internal/common"
	"github.com/joseph-ayodele/resumes-tracker/internal/entity"
)

func fullSchema() entity.DestinationSchema {
	return entity.NewDestinationSchema(map[string]entity.PropertyKind{
		"이름":       entity.KindTitle,
		"나이/탄생연도":  entity.KindSelect,
		"성별":       entity.KindSelect,
		"총경력":      entity.KindRichText,
		"최종직장":     entity.KindRichText,
		"최종학력(전공)": entity.KindRichText,
		"직급/주요업무":  entity.KindRichText,
		"전화번호":     entity.KindPhone,
		"이메일":      entity.KindEmail,
		"핵심역량":     entity.KindRichText,
		"포지션":      entity.KindMultiSelect,
	})
}

func TestMapper_MissingName(t *testing.T) {
	m := New(nil)
	for _, rec := range []entity.RawRecord{
		{},
		{"이름": nil, "이메일": "a@b.c"},
		{"이름": "   ", "성별": "남"},
		{"name": "Alice", "총경력": "3년"},
	} {
		props, err := m.Build(rec, fullSchema())
		require.Error(t, err)
		assert.Nil(t, props)
		assert.True(t, errors.Is(err, common.ErrValidation))
		assert.Contains(t, err.Error(), "missing name")
	}
}

func TestMapper_TitleOnlyWhenSchemaEmpty(t *testing.T) {
	props, err := New(nil).Build(entity.RawRecord{"이름": "A"}, entity.NewDestinationSchema(nil))
	require.NoError(t, err)
	assert.Equal(t, entity.PropertySet{"이름": entity.TitleProperty("A")}, props)
}

func TestMapper_NameCoercedToString(t *testing.T) {
	props, err := New(nil).Build(entity.RawRecord{"이름": json.Number("1004")}, entity.NewDestinationSchema(nil))
	require.NoError(t, err)
	assert.Equal(t, "1004", props["이름"].Text)
}

func TestMapper_EndToEndScenario(t *testing.T) {
	rec := entity.RawRecord{"이름": "홍길동", "전화번호": "01012345678", "포지션": "백엔드, 프론트엔드"}
	schema := entity.NewDestinationSchema(map[string]entity.PropertyKind{
		"이름":   entity.KindTitle,
		"전화번호": entity.KindPhone,
		"포지션":  entity.KindMultiSelect,
	})

	props, err := New(nil).Build(rec, schema)
	require.NoError(t, err)
	assert.Equal(t, entity.PropertySet{
		"이름":   entity.TitleProperty("홍길동"),
		"전화번호": entity.PhoneProperty("010-1234-5678"),
		"포지션":  entity.MultiSelectProperty("백엔드", "프론트엔드"),
	}, props)
}

func TestMapper_SchemaKindGating(t *testing.T) {
	rec := entity.RawRecord{
		"이름":      "김철수",
		"나이/탄생연도": "1995년",
		"성별":      "남",
		"총경력":     "3년 6개월",
		"핵심역량":    "Go, Kubernetes",
	}

	tests := []struct {
		name    string
		schema  map[string]entity.PropertyKind
		present []string
		absent  []string
	}{
		{
			name:    "select declared as rich_text is omitted",
			schema:  map[string]entity.PropertyKind{"나이/탄생연도": entity.KindRichText, "성별": entity.KindSelect},
			present: []string{"이름", "성별"},
			absent:  []string{"나이/탄생연도"},
		},
		{
			name:    "rich_text declared as select is omitted",
			schema:  map[string]entity.PropertyKind{"총경력": entity.KindSelect, "핵심역량": entity.KindRichText},
			present: []string{"이름", "핵심역량"},
			absent:  []string{"총경력"},
		},
		{
			name:    "undeclared fields are omitted",
			schema:  map[string]entity.PropertyKind{"이름": entity.KindTitle},
			present: []string{"이름"},
			absent:  []string{"나이/탄생연도", "성별", "총경력", "핵심역량"},
		},
		{
			name:    "unknown kinds never match",
			schema:  map[string]entity.PropertyKind{"성별": "status", "총경력": "number"},
			present: []string{"이름"},
			absent:  []string{"성별", "총경력"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			props, err := New(nil).Build(rec, entity.NewDestinationSchema(tt.schema))
			require.NoError(t, err)
			for _, k := range tt.present {
				assert.Contains(t, props, k)
			}
			for _, k := range tt.absent {
				assert.NotContains(t, props, k)
			}
		})
	}
}

func TestMapper_FullRecord(t *testing.T) {
	rec := entity.RawRecord{
		"이름":       "홍길동",
		"나이/탄생연도":  json.Number("1990"),
		"성별":       "남",
		"총경력":      "5년 3개월",
		"최종직장":     "카카오",
		"최종학력(전공)": "서울대학교 컴퓨터공학과",
		"직급/주요업무":  "시니어 개발자 / API 개발",
		"전화번호":     "010-1234-5678",
		"이메일":      "hong@example.com",
		"핵심역량":     "Python, Django, AWS, Docker",
		"포지션":      "백엔드 개발자",
	}
	props, err := New(nil).Build(rec, fullSchema())
	require.NoError(t, err)

	assert.Len(t, props, 11)
	assert.Equal(t, entity.SelectProperty("1990"), props["나이/탄생연도"])
	assert.Equal(t, entity.SelectProperty("남"), props["성별"])
	assert.Equal(t, entity.RichTextProperty("카카오"), props["최종직장"])
	assert.Equal(t, entity.EmailProperty("hong@example.com"), props["이메일"])
	assert.Equal(t, entity.PhoneProperty("010-1234-5678"), props["전화번호"])
	assert.Equal(t, entity.MultiSelectProperty("백엔드 개발자"), props["포지션"])
	assert.Equal(t, entity.RichTextProperty("Python, Django, AWS, Docker"), props["핵심역량"])
}

func TestMapper_LegacyAliases(t *testing.T) {
	schema := fullSchema()

	props, err := New(nil).Build(entity.RawRecord{
		"이름":          "이영희",
		"나이(탄생연도)":    "1988년",
		"최종학력(학교-전공)": "KAIST 전산학",
	}, schema)
	require.NoError(t, err)
	assert.Equal(t, entity.SelectProperty("1988년"), props["나이/탄생연도"])
	assert.Equal(t, entity.RichTextProperty("KAIST 전산학"), props["최종학력(전공)"])

	// Legacy spelling wins when both are present.
	props, err = New(nil).Build(entity.RawRecord{
		"이름":       "이영희",
		"나이(탄생연도)": "1988년",
		"나이/탄생연도":  "36세",
	}, schema)
	require.NoError(t, err)
	assert.Equal(t, entity.SelectProperty("1988년"), props["나이/탄생연도"])

	// Null legacy value falls through to the canonical key.
	props, err = New(nil).Build(entity.RawRecord{
		"이름":       "이영희",
		"나이(탄생연도)": nil,
		"나이/탄생연도":  "36세",
	}, schema)
	require.NoError(t, err)
	assert.Equal(t, entity.SelectProperty("36세"), props["나이/탄생연도"])
}

func TestMapper_EmailAndPhone(t *testing.T) {
	t.Run("email passed through without validation", func(t *testing.T) {
		props, err := New(nil).Build(entity.RawRecord{"이름": "A", "이메일": "not-an-email"}, entity.NewDestinationSchema(nil))
		require.NoError(t, err)
		assert.Equal(t, entity.EmailProperty("not-an-email"), props["이메일"])
	})

	t.Run("phone falls back to rich_text when declared so", func(t *testing.T) {
		schema := entity.NewDestinationSchema(map[string]entity.PropertyKind{"전화번호": entity.KindRichText})
		props, err := New(nil).Build(entity.RawRecord{"이름": "A", "전화번호": "010 9876 5432"}, schema)
		require.NoError(t, err)
		assert.Equal(t, entity.RichTextProperty("010-9876-5432"), props["전화번호"])
	})

	t.Run("non-mobile phone kept verbatim", func(t *testing.T) {
		props, err := New(nil).Build(entity.RawRecord{"이름": "A", "전화번호": "02-555-0100"}, fullSchema())
		require.NoError(t, err)
		assert.Equal(t, entity.PhoneProperty("02-555-0100"), props["전화번호"])
	})

	t.Run("empty email and phone skipped", func(t *testing.T) {
		props, err := New(nil).Build(entity.RawRecord{"이름": "A", "이메일": "", "전화번호": nil}, fullSchema())
		require.NoError(t, err)
		assert.Len(t, props, 1)
	})
}

func TestMapper_Position(t *testing.T) {
	rec := entity.RawRecord{"이름": "A", "포지션": "Backend, Frontend ,  "}

	props, err := New(nil).Build(rec, entity.NewDestinationSchema(map[string]entity.PropertyKind{"포지션": entity.KindMultiSelect}))
	require.NoError(t, err)
	assert.Equal(t, []string{"Backend", "Frontend"}, props["포지션"].Options)

	props, err = New(nil).Build(rec, entity.NewDestinationSchema(map[string]entity.PropertyKind{"포지션": entity.KindRichText}))
	require.NoError(t, err)
	assert.Equal(t, entity.RichTextProperty("Backend, Frontend ,  "), props["포지션"])

	props, err = New(nil).Build(entity.RawRecord{"이름": "A", "포지션": " , "},
		entity.NewDestinationSchema(map[string]entity.PropertyKind{"포지션": entity.KindMultiSelect}))
	require.NoError(t, err)
	assert.NotContains(t, props, "포지션")

	// Only 포지션 may be split into options.
	props, err = New(nil).Build(entity.RawRecord{"이름": "A", "핵심역량": "Go, SQL"},
		entity.NewDestinationSchema(map[string]entity.PropertyKind{"핵심역량": entity.KindMultiSelect}))
	require.NoError(t, err)
	assert.NotContains(t, props, "핵심역량")
}

func TestMapper_Deterministic(t *testing.T) {
	rec := entity.RawRecord{"이름": "홍길동", "전화번호": "01012345678", "포지션": "백엔드, 프론트엔드", "성별": "남"}
	m := New(nil)
	first, err := m.Build(rec, fullSchema())
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := m.Build(rec, fullSchema())
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}
