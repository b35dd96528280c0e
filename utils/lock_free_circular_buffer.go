package utils

import (
	"sync/atomic"
)

// LockFreeCircularBuffer 无锁环形缓冲区, 保留最近 size 条记录
type LockFreeCircularBuffer[T any] struct {
	data  []atomic.Pointer[T]
	size  int32
	head  int32
	count int32
}

func NewLockFreeCircularBuffer[T any](size int) *LockFreeCircularBuffer[T] {
	return &LockFreeCircularBuffer[T]{
		data: make([]atomic.Pointer[T], size),
		size: int32(size),
	}
}

// Add 添加元素（无锁）
func (cb *LockFreeCircularBuffer[T]) Add(item *T) {
	pos := atomic.AddInt32(&cb.head, 1) - 1
	index := pos % cb.size
	if pos >= cb.size {
		atomic.AddInt32(&cb.count, -1)
	}

	cb.data[index].Store(item)
	atomic.AddInt32(&cb.count, 1)
}

// GetAll 按写入顺序获取所有元素
func (cb *LockFreeCircularBuffer[T]) GetAll() []*T {
	count := atomic.LoadInt32(&cb.count)
	if count == 0 {
		return nil
	}

	result := make([]*T, 0, count)
	head := atomic.LoadInt32(&cb.head)
	start := head - count

	for i := int32(0); i < count; i++ {
		pos := (start + i) % cb.size
		if pos < 0 {
			pos += cb.size
		}
		if p := cb.data[pos].Load(); p != nil {
			result = append(result, p)
		}
	}

	return result
}
