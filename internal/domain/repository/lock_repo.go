package repository

import "context"

// NameLocker сериализует изменяющие операции над одним студентом.
// Lock блокируется до захвата блокировки или отмены ctx и возвращает функцию освобождения.
type NameLocker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}
