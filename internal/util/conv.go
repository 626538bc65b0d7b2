package util

import (
	"strconv"
)

// ParseUint 解析路径参数中的数字 ID，非法输入由调用方映射为 400。
func ParseUint(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
