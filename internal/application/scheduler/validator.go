package scheduler

import (
	"fmt"
	"sort"
	"strings"

	"log/slog"

	"github.com/suminyol/AyurSutra/internal/domain/schedule"
	"github.com/suminyol/AyurSutra/internal/infrastructure/log"
)

// Stage 校验到达的阶段
type Stage string

const (
	// StageStructural 结构检查失败（形状、类型、字段级问题）
	StageStructural Stage = "structural"
	// StageDomain 领域检查失败（跨字段、全排程规则）
	StageDomain Stage = "domain"
	// StageValid 全部检查通过
	StageValid Stage = "valid"
)

// Verdict 单次校验结论
// Repairs 记录已应用的无歧义局部修正；Violations 记录需要重新生成的违规
type Verdict struct {
	Schedule   *schedule.Schedule
	Stage      Stage
	Repairs    []string
	Violations []string
}

// Valid 候选是否可以接受
func (v *Verdict) Valid() bool {
	return v.Stage == StageValid && v.Schedule != nil
}

// Validator 排程校验与修复器
// 这是正确性边界：生成模型的输出一律视为不可信，未通过本层的排程绝不对外返回
type Validator struct {
	logger *slog.Logger
}

// NewValidator 创建校验器
func NewValidator() *Validator {
	return &Validator{
		logger: log.NewModuleLogger("scheduler", "validator"),
	}
}

// Validate 校验模型原始输出
// 先做结构检查与解码，再做领域检查；两阶段都会先尝试无歧义的局部修正
func (v *Validator) Validate(raw string) *Verdict {
	sched, repairs, violations := decodeCandidate(raw)
	if len(violations) > 0 {
		v.logger.Warn("Structural check failed",
			"violations", len(violations),
		)
		return &Verdict{Stage: StageStructural, Repairs: repairs, Violations: violations}
	}

	structuralRepairs, structuralViolations := v.repairStructure(sched)
	repairs = append(repairs, structuralRepairs...)
	if len(structuralViolations) > 0 {
		v.logger.Warn("Structural check failed",
			"violations", len(structuralViolations),
		)
		return &Verdict{Stage: StageStructural, Repairs: repairs, Violations: structuralViolations}
	}

	domainRepairs, domainViolations := v.checkDomain(sched)
	repairs = append(repairs, domainRepairs...)
	if len(domainViolations) > 0 {
		v.logger.Warn("Domain check failed",
			"violations", len(domainViolations),
		)
		return &Verdict{Stage: StageDomain, Repairs: repairs, Violations: domainViolations}
	}

	if len(repairs) > 0 {
		v.logger.Info("Candidate accepted after local repairs",
			"repairs", len(repairs),
		)
	}
	return &Verdict{Schedule: sched, Stage: StageValid, Repairs: repairs}
}

// repairStructure 字段级的修正与检查
func (v *Validator) repairStructure(sched *schedule.Schedule) ([]string, []string) {
	var repairs []string
	var violations []string

	// 问诊标记大小写归一
	for i := range sched.Days {
		normalized := strings.ToLower(strings.TrimSpace(sched.Days[i].DoctorConsultation))
		if normalized != sched.Days[i].DoctorConsultation && schedule.IsConsultationValue(normalized) {
			repairs = append(repairs, fmt.Sprintf("normalized doctor_consultation casing on day %d", sched.Days[i].Day))
			sched.Days[i].DoctorConsultation = normalized
		}
		if !schedule.IsConsultationValue(sched.Days[i].DoctorConsultation) {
			violations = append(violations, fmt.Sprintf(
				`schedule[%d].doctor_consultation must be exactly "yes" or "no", got %q`, i, sched.Days[i].DoctorConsultation))
		}
	}

	// 天数重编号：按原 day 值稳定排序后改为 1..n
	sort.SliceStable(sched.Days, func(a, b int) bool {
		return sched.Days[a].Day < sched.Days[b].Day
	})
	renumbered := false
	for i := range sched.Days {
		if sched.Days[i].Day != i+1 {
			sched.Days[i].Day = i + 1
			renumbered = true
		}
	}
	if renumbered {
		repairs = append(repairs, "renumbered days into a gap-free sequence starting at 1")
	}

	for i := range sched.Days {
		day := &sched.Days[i]

		if len(day.Plan) == 0 {
			violations = append(violations, fmt.Sprintf("day %d has an empty plan", day.Day))
		}
		for _, item := range day.Plan {
			if strings.TrimSpace(item) == "" {
				violations = append(violations, fmt.Sprintf("day %d contains a blank plan item", day.Day))
				break
			}
		}

		// 指令必须是纯文本，不接受 HTML / markdown 标记
		for _, item := range day.Plan {
			if schedule.ContainsMarkup(item) {
				violations = append(violations, fmt.Sprintf(
					"day %d plan item must be plain text without HTML or markdown markup: %q", day.Day, item))
			}
		}

		// 指令长度是软约束，只告警不拒绝
		for _, item := range day.Plan {
			if len(item) > schedule.MaxPlanItemLength {
				v.logger.Warn("Plan item exceeds soft length bound",
					"day", day.Day,
					"length", len(item),
				)
			}
		}

		if day.TherapistName != nil {
			if !schedule.IsTherapistName(*day.TherapistName) {
				if day.RequiresTherapist() {
					violations = append(violations, fmt.Sprintf(
						"day %d therapist_name %q is not in the allowed name set", day.Day, *day.TherapistName))
				} else {
					// 无手法治疗的日期本就不该有治疗师，直接置空
					repairs = append(repairs, fmt.Sprintf("cleared unrecognized therapist_name on day %d", day.Day))
					day.TherapistName = nil
				}
			}
		}
	}

	return repairs, violations
}

// checkDomain 跨字段与全排程规则
func (v *Validator) checkDomain(sched *schedule.Schedule) ([]string, []string) {
	var repairs []string
	var violations []string

	// 长度边界：3–21 天；末日携带延长标记时允许超过 21 天
	length := sched.Length()
	if length < schedule.MinDays {
		violations = append(violations, fmt.Sprintf(
			"schedule has %d days, minimum is %d", length, schedule.MinDays))
	}
	if length > schedule.MaxDays {
		last := sched.Days[length-1]
		if !last.HasExtensionMarker() {
			violations = append(violations, fmt.Sprintf(
				"schedule has %d days but the final day lacks the extension marker required beyond %d days",
				length, schedule.MaxDays))
		}
	}

	// 至少一个问诊日
	if !sched.HasConsultationDay() {
		violations = append(violations, `schedule must contain at least one day with doctor_consultation = "yes"`)
	}

	for i := range sched.Days {
		day := &sched.Days[i]

		// 问诊日必须包含执业医师审核指令
		if day.IsConsultation() && !day.HasReviewInstruction() {
			violations = append(violations, fmt.Sprintf(
				"day %d is a consultation day but its plan lacks a licensed-practitioner review instruction", day.Day))
		}

		// 治疗师字段与手法治疗互为充要条件
		if day.RequiresTherapist() {
			if day.TherapistName == nil {
				violations = append(violations, fmt.Sprintf(
					"day %d references a hands-on procedure but therapist_name is null", day.Day))
			}
		} else if day.TherapistName != nil {
			// 无手法治疗的日期不应指派治疗师，无歧义地置空
			repairs = append(repairs, fmt.Sprintf("cleared therapist_name on day %d (no hands-on procedure)", day.Day))
			day.TherapistName = nil
		}

		// 延长标记只允许出现在末日
		if i < length-1 && day.HasExtensionMarker() {
			violations = append(violations, fmt.Sprintf(
				"day %d carries the extension marker, which is allowed only on the final day", day.Day))
		}

		// 健康领域禁止绝对疗效断言
		if claim := day.FindCureClaim(); claim != "" {
			violations = append(violations, fmt.Sprintf(
				"day %d contains a guaranteed-outcome claim: %q", day.Day, claim))
		}
	}

	return repairs, violations
}
