package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// collection хранит массив записей в одном JSON-файле.
// Каждая операция читает файл целиком и при изменении записывает его целиком,
// mu сериализует эти циклы чтение-изменение-запись внутри процесса.
type collection[T any] struct {
	path string
	mu   sync.Mutex
}

func newCollection[T any](dir, file string) (*collection[T], error) {
	c := &collection[T]{path: filepath.Join(dir, file)}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir %s: %w", dir, err)
	}

	// Создаём пустую коллекцию при первом запуске
	_, err := os.Stat(c.path)
	if errors.Is(err, os.ErrNotExist) {
		log.Printf("[jsonfile] Файл %s не найден, создаём пустую коллекцию", c.path)
		if err := c.save([]T{}); err != nil {
			return nil, err
		}
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", c.path, err)
	}
	return c, nil
}

// load читает коллекцию с диска. Нечитаемый или повреждённый файл
// считается пустой коллекцией: ошибка только логируется.
func (c *collection[T]) load() []T {
	data, err := os.ReadFile(c.path)
	if err != nil {
		log.Printf("[jsonfile] Ошибка чтения %s: %v", c.path, err)
		return []T{}
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		log.Printf("[jsonfile] Ошибка разбора %s: %v", c.path, err)
		return []T{}
	}
	if items == nil {
		items = []T{}
	}
	return items
}

// save записывает коллекцию во временный файл и атомарно подменяет им основной
func (c *collection[T]) save(items []T) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", c.path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(c.path), filepath.Base(c.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", c.path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", c.path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, c.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", c.path, err)
	}
	return nil
}

// view возвращает снимок коллекции
func (c *collection[T]) view() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load()
}

// update загружает коллекцию, применяет fn и сохраняет результат, если fn сообщила об изменении
func (c *collection[T]) update(fn func(items []T) ([]T, bool, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, changed, err := fn(c.load())
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}
	return c.save(items)
}
