package utils

import "fmt"

// InvariantError 不变量被破坏时 panic 的值
// 便于测试中用 recover 断言具体的失败原因
type InvariantError struct {
	Message string
}

func (e *InvariantError) Error() string {
	return "invariant violated: " + e.Message
}

// Invariant 断言 cond 成立，否则立即 panic
//
// 用于"不可能发生"的状态：数组越界、对已移除实体的操作、负速度等。
// 这些错误不应被静默吞掉，必须在开发阶段尽早暴露。
func Invariant(cond bool, format string, args ...interface{}) {
	if cond {
		return
	}
	panic(&InvariantError{Message: fmt.Sprintf(format, args...)})
}

// CheckIndex 断言 0 <= i < n
func CheckIndex(i, n int, what string) {
	Invariant(i >= 0 && i < n, "%s index %d out of range [0, %d)", what, i, n)
}
