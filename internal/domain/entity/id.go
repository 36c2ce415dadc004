package entity

import (
	"sync/atomic"
	"time"
)

var lastRecordID atomic.Int64

// NewRecordID возвращает идентификатор записи: время создания в миллисекундах Unix.
// В пределах процесса идентификаторы строго возрастают, даже если две записи
// создаются в одну и ту же миллисекунду.
func NewRecordID(now time.Time) int64 {
	for {
		prev := lastRecordID.Load()
		id := now.UnixMilli()
		if id <= prev {
			id = prev + 1
		}
		if lastRecordID.CompareAndSwap(prev, id) {
			return id
		}
	}
}
