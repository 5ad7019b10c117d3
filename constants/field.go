package constants

// Résumé field keys. These are both the keys of an extracted record and the
// property names expected in the destination database.
const (
	FieldName       = "이름"
	FieldAge        = "나이/탄생연도"
	FieldGender     = "성별"
	FieldExperience = "총경력"
	FieldEmployer   = "최종직장"
	FieldEducation  = "최종학력(전공)"
	FieldRole       = "직급/주요업무"
	FieldPhone      = "전화번호"
	FieldEmail      = "이메일"
	FieldSkills     = "핵심역량"
	FieldPosition   = "포지션"
)

// Legacy spellings still produced by older JSON exports.
const (
	LegacyFieldAge       = "나이(탄생연도)"
	LegacyFieldEducation = "최종학력(학교-전공)"
)

// ResumeFields lists the canonical keys in extraction order.
var ResumeFields = []string{
	FieldName,
	FieldAge,
	FieldGender,
	FieldExperience,
	FieldEmployer,
	FieldEducation,
	FieldRole,
	FieldPhone,
	FieldEmail,
	FieldSkills,
	FieldPosition,
}

// FieldAliases maps a canonical key to the record keys that may carry it,
// in lookup order. The legacy spelling wins when both are present.
var FieldAliases = map[string][]string{
	FieldAge:       {LegacyFieldAge, FieldAge},
	FieldEducation: {LegacyFieldEducation, FieldEducation},
}

// LookupKeys returns the record keys to try for a canonical field.
func LookupKeys(field string) []string {
	if keys, ok := FieldAliases[field]; ok {
		return keys
	}
	return []string{field}
}

// IsResumeField reports whether key is a canonical key or a known alias.
func IsResumeField(key string) bool {
	for _, f := range ResumeFields {
		for _, k := range LookupKeys(f) {
			if k == key {
				return true
			}
		}
	}
	return false
}
