package algo

import (
	"errors"
	"fmt"
)

var ErrLengthMismatch = errors.New("length mismatch")

// LengthMismatchError 输出与输入长度不一致，属于调用方违约，不可重试
type LengthMismatchError struct {
	Output int
	Input  int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("%v: output=%d, input=%d", ErrLengthMismatch, e.Output, e.Input)
}

func (e *LengthMismatchError) Unwrap() error {
	return ErrLengthMismatch
}

func checkLength(outputLen, inputLen int) error {
	if outputLen != inputLen {
		return &LengthMismatchError{Output: outputLen, Input: inputLen}
	}
	return nil
}
