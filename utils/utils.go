package utils

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cast"
	"golang.org/x/exp/constraints"
)

func BoolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func CastTo[T any](src any) (target T, ok bool) {
	target, ok = src.(T)
	return
}

// GenId 生成会话标识
func GenId() string {
	return uuid.NewString()
}

func ToString(val any) string {
	switch v := val.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	case error:
		return fmt.Sprintf("%+v", v)
	default:
		return cast.ToString(val)
	}
}

// Uint64ToBytes 截取整数的低size个字节
func Uint64ToBytes[T constraints.Integer](u T, size int, order binary.ByteOrder) []byte {
	data := make([]byte, 8)
	order.PutUint64(data, uint64(u))

	switch order {
	case binary.LittleEndian:
		return data[:size]
	default: // 默认情况是大端的
		return data[8-size:]
	}
}

const (
	PaddingLeft  string = "left"  // 在前面填充
	PaddingRight string = "right" // 在后面填充
)

func ResizeBytes(data []byte, size int, padByte byte, position string) []byte {
	if position == "" {
		position = PaddingRight
	}

	if size < 0 {
		return nil
	}

	currentLen := len(data)

	if currentLen == size {
		return data
	}

	if currentLen > size {
		return data[:size]
	}

	needPad := size - currentLen

	if position == PaddingRight && cap(data) >= size {
		data = data[:size]
		for i := currentLen; i < size; i++ {
			data[i] = padByte
		}
		return data
	}

	result := make([]byte, size)

	switch position {
	case PaddingLeft:
		for i := 0; i < needPad; i++ {
			result[i] = padByte
		}
		copy(result[needPad:], data)

	case PaddingRight:
		copy(result, data)
		for i := currentLen; i < size; i++ {
			result[i] = padByte
		}
	}

	return result
}

// HexDump 按16字节一行输出, 用于诊断内存镜像
func HexDump(data []byte, base int) string {
	var sb strings.Builder
	for i := 0; i < len(data); i += 16 {
		end := i + 16
		if end > len(data) {
			end = len(data)
		}
		sb.WriteString(fmt.Sprintf("%08X  ", base+i))
		for j := i; j < end; j++ {
			sb.WriteString(fmt.Sprintf("%02X ", data[j]))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
