package scheduler

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/suminyol/AyurSutra/internal/domain/schedule"
)

// buildCandidate 构造候选排程 JSON
func buildCandidate(t *testing.T, days ...map[string]interface{}) string {
	t.Helper()
	data, err := json.Marshal(map[string]interface{}{"schedule": days})
	assert.NoError(t, err)
	return string(data)
}

// day 构造单个日对象
func day(num int, consultation string, therapist interface{}, plan ...string) map[string]interface{} {
	return map[string]interface{}{
		"day":                 num,
		"doctor_consultation": consultation,
		"plan":                plan,
		"therapist_name":      therapist,
	}
}

const reviewItem = "Physician/Ayurvedic doctor review and approval required."

// TestValidate_AcceptsConformingSchedule 测试合规排程直接通过
func TestValidate_AcceptsConformingSchedule(t *testing.T) {
	raw := buildCandidate(t,
		day(1, "yes", nil, "Initial assessment", reviewItem),
		day(2, "no", "Dr. Madhu Harihar", "Morning Abhyanga with warm oil", "Light diet"),
		day(3, "no", nil, "Rest day, monitor symptoms"),
	)

	verdict := NewValidator().Validate(raw)
	assert.True(t, verdict.Valid())
	assert.Equal(t, StageValid, verdict.Stage)
	assert.Empty(t, verdict.Violations)
	assert.Equal(t, 3, verdict.Schedule.Length())
}

// TestValidate_RenumbersDayGap 测试 [1,2,4] 被重编号为 [1,2,3]
func TestValidate_RenumbersDayGap(t *testing.T) {
	raw := buildCandidate(t,
		day(1, "yes", nil, reviewItem),
		day(2, "no", nil, "Light khichdi diet"),
		day(4, "no", nil, "Rest and monitoring"),
	)

	verdict := NewValidator().Validate(raw)
	assert.True(t, verdict.Valid())
	assert.NotEmpty(t, verdict.Repairs)
	for i, d := range verdict.Schedule.Days {
		assert.Equal(t, i+1, d.Day)
	}
}

// TestValidate_NormalizesConsultationCasing 测试问诊标记大小写归一
func TestValidate_NormalizesConsultationCasing(t *testing.T) {
	raw := buildCandidate(t,
		day(1, "Yes", nil, reviewItem),
		day(2, "no", nil, "Warm water, light meals"),
		day(3, "NO", nil, "Follow-up monitoring"),
	)

	verdict := NewValidator().Validate(raw)
	assert.True(t, verdict.Valid())
	assert.Equal(t, "yes", verdict.Schedule.Days[0].DoctorConsultation)
	assert.Equal(t, "no", verdict.Schedule.Days[2].DoctorConsultation)
}

// TestValidate_StripsCodeFences 测试 markdown 代码栅栏被剥离
func TestValidate_StripsCodeFences(t *testing.T) {
	inner := buildCandidate(t,
		day(1, "yes", nil, reviewItem),
		day(2, "no", nil, "Light diet"),
		day(3, "no", nil, "Rest"),
	)
	raw := "```json\n" + inner + "\n```"

	verdict := NewValidator().Validate(raw)
	assert.True(t, verdict.Valid())
	assert.Contains(t, verdict.Repairs[0], "code fences")
}

// TestValidate_StripsExtraFields 测试多余字段被剥离后仍可接受
func TestValidate_StripsExtraFields(t *testing.T) {
	d := day(1, "yes", nil, reviewItem)
	d["notes"] = "internal reasoning"

	raw, err := json.Marshal(map[string]interface{}{
		"schedule":   []interface{}{d, day(2, "no", nil, "Light diet"), day(3, "no", nil, "Rest")},
		"confidence": 0.9,
	})
	assert.NoError(t, err)

	verdict := NewValidator().Validate(string(raw))
	assert.True(t, verdict.Valid())
	assert.Len(t, verdict.Repairs, 2)
}

// TestValidate_RejectsInvalidJSON 测试非 JSON 输出进入结构违规
func TestValidate_RejectsInvalidJSON(t *testing.T) {
	verdict := NewValidator().Validate("Here is your schedule: day 1 rest, day 2 massage")
	assert.False(t, verdict.Valid())
	assert.Equal(t, StageStructural, verdict.Stage)
	assert.NotEmpty(t, verdict.Violations)
}

// TestValidate_RejectsMissingField 测试缺失必填字段
func TestValidate_RejectsMissingField(t *testing.T) {
	raw := `{"schedule": [{"day": 1, "doctor_consultation": "yes", "plan": ["rest"]}]}`

	verdict := NewValidator().Validate(raw)
	assert.False(t, verdict.Valid())
	assert.Equal(t, StageStructural, verdict.Stage)
	assert.Contains(t, verdict.Violations[0], "therapist_name")
}

// TestValidate_RejectsInvalidConsultationValue 测试非法问诊标记
func TestValidate_RejectsInvalidConsultationValue(t *testing.T) {
	raw := buildCandidate(t,
		day(1, "maybe", nil, reviewItem),
		day(2, "no", nil, "Light diet"),
		day(3, "no", nil, "Rest"),
	)

	verdict := NewValidator().Validate(raw)
	assert.False(t, verdict.Valid())
	assert.Equal(t, StageStructural, verdict.Stage)
}

// TestValidate_RejectsMissingReviewInstruction 测试问诊日缺少审核指令
func TestValidate_RejectsMissingReviewInstruction(t *testing.T) {
	raw := buildCandidate(t,
		day(1, "yes", nil, "General checkup"),
		day(2, "no", nil, "Light diet"),
		day(3, "no", nil, "Rest"),
	)

	verdict := NewValidator().Validate(raw)
	assert.False(t, verdict.Valid())
	assert.Equal(t, StageDomain, verdict.Stage)
	assert.Contains(t, verdict.Violations[0], "review instruction")
}

// TestValidate_RejectsProcedureWithoutTherapist 测试手法治疗日缺少治疗师
func TestValidate_RejectsProcedureWithoutTherapist(t *testing.T) {
	raw := buildCandidate(t,
		day(1, "yes", nil, reviewItem),
		day(2, "no", nil, "Morning Abhyanga with sesame oil"),
		day(3, "no", nil, "Rest"),
	)

	verdict := NewValidator().Validate(raw)
	assert.False(t, verdict.Valid())
	assert.Equal(t, StageDomain, verdict.Stage)
	assert.Contains(t, verdict.Violations[0], "therapist_name is null")
}

// TestValidate_ClearsStrayTherapist 测试无治疗内容日的治疗师被置空
func TestValidate_ClearsStrayTherapist(t *testing.T) {
	raw := buildCandidate(t,
		day(1, "yes", "Dr. Suneera Banga", reviewItem),
		day(2, "no", nil, "Light diet"),
		day(3, "no", nil, "Rest"),
	)

	verdict := NewValidator().Validate(raw)
	assert.True(t, verdict.Valid())
	assert.Nil(t, verdict.Schedule.Days[0].TherapistName)
	assert.NotEmpty(t, verdict.Repairs)
}

// TestValidate_RejectsUnknownTherapistOnProcedureDay 测试闭集外姓名
func TestValidate_RejectsUnknownTherapistOnProcedureDay(t *testing.T) {
	raw := buildCandidate(t,
		day(1, "yes", nil, reviewItem),
		day(2, "no", "Therapist Dr. Madhu Harihar", "Shirodhara session"),
		day(3, "no", nil, "Rest"),
	)

	verdict := NewValidator().Validate(raw)
	assert.False(t, verdict.Valid())
	assert.Contains(t, verdict.Violations[0], "not in the allowed name set")
}

// TestValidate_RejectsCureClaim 测试绝对疗效断言被拒绝
func TestValidate_RejectsCureClaim(t *testing.T) {
	raw := buildCandidate(t,
		day(1, "yes", nil, reviewItem),
		day(2, "no", nil, "This protocol will cure your arthritis"),
		day(3, "no", nil, "Rest"),
	)

	verdict := NewValidator().Validate(raw)
	assert.False(t, verdict.Valid())
	assert.Equal(t, StageDomain, verdict.Stage)
	assert.Contains(t, verdict.Violations[0], "guaranteed-outcome")
}

// TestValidate_LengthBounds 测试排程长度边界
func TestValidate_LengthBounds(t *testing.T) {
	// 少于 3 天
	short := buildCandidate(t,
		day(1, "yes", nil, reviewItem),
		day(2, "no", nil, "Rest"),
	)
	verdict := NewValidator().Validate(short)
	assert.False(t, verdict.Valid())
	assert.Contains(t, verdict.Violations[0], "minimum")

	// 超过 21 天且末日无延长标记
	var longDays []map[string]interface{}
	longDays = append(longDays, day(1, "yes", nil, reviewItem))
	for i := 2; i <= 22; i++ {
		longDays = append(longDays, day(i, "no", nil, "Rest and light diet"))
	}
	verdict = NewValidator().Validate(buildCandidate(t, longDays...))
	assert.False(t, verdict.Valid())
	assert.Contains(t, verdict.Violations[0], "extension marker")

	// 末日携带延长标记时允许超过 21 天
	longDays[21] = day(22, "no", nil, "Rest", schedule.ExtensionMarkerItem)
	verdict = NewValidator().Validate(buildCandidate(t, longDays...))
	assert.True(t, verdict.Valid())
}

// TestValidate_RequiresConsultationDay 测试必须存在问诊日
func TestValidate_RequiresConsultationDay(t *testing.T) {
	raw := buildCandidate(t,
		day(1, "no", nil, "Light diet"),
		day(2, "no", nil, "Warm water"),
		day(3, "no", nil, "Rest"),
	)

	verdict := NewValidator().Validate(raw)
	assert.False(t, verdict.Valid())
	assert.Contains(t, verdict.Violations[0], "at least one day")
}

// TestValidate_RejectsEmptyPlan 测试空计划列表
func TestValidate_RejectsEmptyPlan(t *testing.T) {
	raw := buildCandidate(t,
		day(1, "yes", nil, reviewItem),
		day(2, "no", nil),
		day(3, "no", nil, "Rest"),
	)

	verdict := NewValidator().Validate(raw)
	assert.False(t, verdict.Valid())
	assert.Contains(t, verdict.Violations[0], "empty plan")
}

// TestValidate_RejectsMarkupInPlanItems 测试夹带富文本标记的计划项被拒绝
func TestValidate_RejectsMarkupInPlanItems(t *testing.T) {
	raw := buildCandidate(t,
		day(1, "yes", nil, reviewItem, "<b>Initial assessment</b>"),
		day(2, "no", nil, "**Light diet** with <i>warm water</i>"),
		day(3, "no", nil, "Rest"),
	)

	verdict := NewValidator().Validate(raw)
	assert.False(t, verdict.Valid())
	assert.Equal(t, StageStructural, verdict.Stage)
	assert.Len(t, verdict.Violations, 2)
	assert.Contains(t, verdict.Violations[0], "plain text without HTML or markdown")
}

// TestValidate_RejectsExtensionMarkerBeforeFinalDay 测试延长标记不得出现在非末日
func TestValidate_RejectsExtensionMarkerBeforeFinalDay(t *testing.T) {
	raw := buildCandidate(t,
		day(1, "yes", nil, reviewItem, schedule.ExtensionMarkerItem),
		day(2, "no", nil, "Light diet"),
		day(3, "no", nil, "Rest"),
	)

	verdict := NewValidator().Validate(raw)
	assert.False(t, verdict.Valid())
	assert.Equal(t, StageDomain, verdict.Stage)
	assert.Contains(t, verdict.Violations[0], "only on the final day")
}

// TestValidate_RejectsNestedPlanItems 测试计划项必须是纯文本字符串
func TestValidate_RejectsNestedPlanItems(t *testing.T) {
	raw := `{"schedule": [
		{"day": 1, "doctor_consultation": "yes", "plan": [{"step": "rest"}], "therapist_name": null}
	]}`

	verdict := NewValidator().Validate(raw)
	assert.False(t, verdict.Valid())
	assert.Equal(t, StageStructural, verdict.Stage)
	assert.Contains(t, verdict.Violations[0], "plain string")
}
