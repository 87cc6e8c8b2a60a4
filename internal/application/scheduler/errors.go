package scheduler

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedInput 患者描述为空或无效，在任何外部调用之前拒绝
var ErrMalformedInput = errors.New("patient query is empty or invalid")

// RetrievalError 检索阶段失败（向量化或向量库调用出错）
// 不重试，直接上抛：没有 grounding 上下文时禁止继续生成
type RetrievalError struct {
	Err error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("retrieval failed: %v", e.Err)
}

func (e *RetrievalError) Unwrap() error {
	return e.Err
}

// SynthesisError 生成阶段的传输层失败（模型不可达或调用出错）
// 传输错误立即上抛，不消耗修复预算
type SynthesisError struct {
	Err error
}

func (e *SynthesisError) Error() string {
	return fmt.Sprintf("synthesis failed: %v", e.Err)
}

func (e *SynthesisError) Unwrap() error {
	return e.Err
}

// ValidationExhaustedError 修复预算耗尽，候选排程始终无法通过校验
type ValidationExhaustedError struct {
	Attempts   int
	Violations []string
}

func (e *ValidationExhaustedError) Error() string {
	return fmt.Sprintf("schedule validation exhausted after %d attempts: %s",
		e.Attempts, strings.Join(e.Violations, "; "))
}
