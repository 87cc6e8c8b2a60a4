package schedule

import (
	"regexp"
	"strings"
)

// DayPlan 单日治疗计划
// 是排程的原子单位，字段名与对外 JSON 协议一一对应
type DayPlan struct {
	// Day 天数，从 1 开始连续编号，不允许跳号或重复
	Day int `json:"day"`

	// DoctorConsultation 是否为医生问诊日，仅允许 "yes" / "no"
	DoctorConsultation string `json:"doctor_consultation"`

	// Plan 当日操作指令列表（纯文本，无嵌套结构）
	Plan []string `json:"plan"`

	// TherapistName 治疗师姓名，仅允许闭集中的五个名字
	// 包含手法治疗的日期必填；纯问诊日或无治疗内容时必须为 null
	TherapistName *string `json:"therapist_name"`
}

// Schedule 完整的日程安排，按天升序排列
type Schedule struct {
	Days []DayPlan `json:"schedule"`
}

// 问诊标记常量
const (
	ConsultationYes = "yes"
	ConsultationNo  = "no"
)

// 排程长度约束
const (
	// MinDays 常规严重程度下的最短排程
	MinDays = 3
	// MaxDays 常规严重程度下的最长排程；末日携带延长标记时可超出
	MaxDays = 21
	// MaxPlanItemLength 单条指令的软长度上限（字符数）
	MaxPlanItemLength = 250
)

// ExtensionMarkerItem 超过 21 天时末日必须携带的延长标记指令
const ExtensionMarkerItem = "Extend plan per 'context'; practitioner to confirm extended protocol."

// TherapistNames 治疗师姓名闭集，输出必须逐字节匹配其中之一
var TherapistNames = []string{
	"Dr. Suneera Banga",
	"Dr. Anju S. Chetia",
	"Dr. Madhu Harihar",
	"Dr. Ratna Hiremath",
	"Dr. Bhuvnesh Sharma",
}

// procedureTerms 手法治疗识别词表
// 指令中出现任一词条即视为当日包含手法治疗，需要指派治疗师
var procedureTerms = []string{
	"snehana",
	"swedana",
	"vamana",
	"virechana",
	"basti",
	"nasya",
	"raktamokshana",
	"abhyanga",
	"shirodhara",
	"massage",
}

// cureClaimTerms 绝对疗效断言识别词表
// 健康领域禁止输出任何保证治愈的表述
var cureClaimTerms = []string{
	"guarantee",
	"guaranteed",
	"100%",
	"permanent cure",
	"will cure",
	"cure completely",
	"completely cured",
}

// htmlTagPattern 匹配 HTML/XML 标签形态的片段，如 <b>、</i>、<br/>
var htmlTagPattern = regexp.MustCompile(`</?[a-zA-Z][a-zA-Z0-9]*(\s[^<>]*)?/?>`)

// markdownTokens markdown 强调与代码标记
var markdownTokens = []string{"**", "__", "`"}

// ContainsMarkup 检查指令是否夹带 HTML 或 markdown 标记
// 计划指令必须是纯文本，下游渠道不做任何富文本渲染
func ContainsMarkup(item string) bool {
	if htmlTagPattern.MatchString(item) {
		return true
	}
	for _, token := range markdownTokens {
		if strings.Contains(item, token) {
			return true
		}
	}
	return false
}

// IsTherapistName 检查姓名是否属于闭集（逐字节精确匹配，不允许附加头衔）
func IsTherapistName(name string) bool {
	for _, n := range TherapistNames {
		if n == name {
			return true
		}
	}
	return false
}

// IsConsultationValue 检查问诊标记取值是否合法
func IsConsultationValue(v string) bool {
	return v == ConsultationYes || v == ConsultationNo
}

// ReferencesProcedure 检查单条指令是否提及手法治疗
func ReferencesProcedure(item string) bool {
	lower := strings.ToLower(item)
	for _, term := range procedureTerms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

// RequiresTherapist 检查当日计划是否包含手法治疗（决定治疗师字段是否必填）
func (d *DayPlan) RequiresTherapist() bool {
	for _, item := range d.Plan {
		if ReferencesProcedure(item) {
			return true
		}
	}
	return false
}

// IsConsultation 当日是否为问诊日
func (d *DayPlan) IsConsultation() bool {
	return d.DoctorConsultation == ConsultationYes
}

// HasReviewInstruction 检查计划中是否包含执业医师审核指令
// 语义匹配而非字面相等：同时出现审核动词与执业者名词即认可
func (d *DayPlan) HasReviewInstruction() bool {
	for _, item := range d.Plan {
		lower := strings.ToLower(item)
		hasVerb := strings.Contains(lower, "review") || strings.Contains(lower, "approval") || strings.Contains(lower, "approve")
		hasRole := strings.Contains(lower, "physician") || strings.Contains(lower, "doctor") || strings.Contains(lower, "practitioner")
		if hasVerb && hasRole {
			return true
		}
	}
	return false
}

// HasExtensionMarker 检查计划中是否包含延长协议标记
func (d *DayPlan) HasExtensionMarker() bool {
	for _, item := range d.Plan {
		lower := strings.ToLower(item)
		if strings.Contains(lower, "extend") && (strings.Contains(lower, "practitioner") || strings.Contains(lower, "protocol")) {
			return true
		}
	}
	return false
}

// FindCureClaim 返回计划中首个包含绝对疗效断言的指令，无则返回空串
func (d *DayPlan) FindCureClaim() string {
	for _, item := range d.Plan {
		lower := strings.ToLower(item)
		for _, term := range cureClaimTerms {
			if strings.Contains(lower, term) {
				return item
			}
		}
	}
	return ""
}

// HasConsultationDay 检查排程中是否至少存在一个问诊日
func (s *Schedule) HasConsultationDay() bool {
	for i := range s.Days {
		if s.Days[i].IsConsultation() {
			return true
		}
	}
	return false
}

// Length 排程天数
func (s *Schedule) Length() int {
	return len(s.Days)
}
