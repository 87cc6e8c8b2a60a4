package scheduler

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/suminyol/AyurSutra/internal/domain/schedule"
)

// requiredDayFields 每个日对象必须且只能包含的字段
var requiredDayFields = []string{"day", "doctor_consultation", "plan", "therapist_name"}

// decodeCandidate 将模型原始输出解码为候选排程
// 可以无歧义局部修正的问题（代码栅栏、多余字段）直接修复并记入 repairs；
// 无法局部修正的结构问题记入 violations，由修复环路带回再生成
func decodeCandidate(raw string) (*schedule.Schedule, []string, []string) {
	var repairs []string
	var violations []string

	cleaned, stripped := stripCodeFences(raw)
	if stripped {
		repairs = append(repairs, "stripped markdown code fences around the JSON body")
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &top); err != nil {
		return nil, repairs, []string{"response is not a valid JSON object"}
	}

	rawDays, ok := top["schedule"]
	if !ok {
		return nil, repairs, []string{`top-level key "schedule" is missing`}
	}
	if len(top) > 1 {
		extras := extraKeys(top, []string{"schedule"})
		repairs = append(repairs, fmt.Sprintf("stripped extra top-level field(s): %s", strings.Join(extras, ", ")))
	}

	var dayObjects []json.RawMessage
	if err := json.Unmarshal(rawDays, &dayObjects); err != nil {
		return nil, repairs, []string{`"schedule" must be an array of day objects`}
	}
	if len(dayObjects) == 0 {
		return nil, repairs, []string{`"schedule" must contain at least one day object`}
	}

	days := make([]schedule.DayPlan, 0, len(dayObjects))
	for i, rawDay := range dayObjects {
		day, dayRepairs, dayViolations := decodeDay(i, rawDay)
		repairs = append(repairs, dayRepairs...)
		violations = append(violations, dayViolations...)
		if day != nil {
			days = append(days, *day)
		}
	}

	if len(violations) > 0 {
		return nil, repairs, violations
	}

	return &schedule.Schedule{Days: days}, repairs, nil
}

// decodeDay 解码单个日对象，逐字段做类型检查
func decodeDay(index int, raw json.RawMessage) (*schedule.DayPlan, []string, []string) {
	var repairs []string
	var violations []string

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, nil, []string{fmt.Sprintf("schedule[%d] is not a JSON object", index)}
	}

	for _, name := range requiredDayFields {
		if _, ok := fields[name]; !ok {
			violations = append(violations, fmt.Sprintf("schedule[%d] is missing required field %q", index, name))
		}
	}
	if extras := extraKeys(fields, requiredDayFields); len(extras) > 0 {
		repairs = append(repairs, fmt.Sprintf("stripped extra field(s) on schedule[%d]: %s", index, strings.Join(extras, ", ")))
	}
	if len(violations) > 0 {
		return nil, repairs, violations
	}

	var day schedule.DayPlan

	if err := json.Unmarshal(fields["day"], &day.Day); err != nil {
		violations = append(violations, fmt.Sprintf("schedule[%d].day must be an integer", index))
	} else if day.Day < 1 {
		violations = append(violations, fmt.Sprintf("schedule[%d].day must be >= 1", index))
	}

	if err := json.Unmarshal(fields["doctor_consultation"], &day.DoctorConsultation); err != nil {
		violations = append(violations, fmt.Sprintf("schedule[%d].doctor_consultation must be a string", index))
	}

	var planItems []json.RawMessage
	if err := json.Unmarshal(fields["plan"], &planItems); err != nil {
		violations = append(violations, fmt.Sprintf("schedule[%d].plan must be an array", index))
	} else {
		for j, item := range planItems {
			var text string
			if err := json.Unmarshal(item, &text); err != nil {
				violations = append(violations, fmt.Sprintf("schedule[%d].plan[%d] must be a plain string", index, j))
				continue
			}
			day.Plan = append(day.Plan, text)
		}
	}

	if err := json.Unmarshal(fields["therapist_name"], &day.TherapistName); err != nil {
		violations = append(violations, fmt.Sprintf("schedule[%d].therapist_name must be a string or null", index))
	}

	if len(violations) > 0 {
		return nil, repairs, violations
	}
	return &day, repairs, nil
}

// stripCodeFences 去除包裹 JSON 的 markdown 代码栅栏
func stripCodeFences(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed, false
	}

	trimmed = strings.TrimPrefix(trimmed, "```")
	// 栅栏可能带语言标记，如 ```json
	if idx := strings.IndexByte(trimmed, '\n'); idx >= 0 {
		trimmed = trimmed[idx+1:]
	}
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed), true
}

// extraKeys 返回不在允许列表中的键，排序保证输出稳定
func extraKeys(fields map[string]json.RawMessage, allowed []string) []string {
	allowedSet := make(map[string]bool, len(allowed))
	for _, name := range allowed {
		allowedSet[name] = true
	}

	var extras []string
	for name := range fields {
		if !allowedSet[name] {
			extras = append(extras, name)
		}
	}
	sort.Strings(extras)
	return extras
}
