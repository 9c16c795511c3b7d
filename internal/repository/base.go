// Package repository holds the in-memory collections behind the services.
// Each repository owns one lock; all reads hand out copies.
package repository

import (
	"strings"
	"sync"
	"time"

	"github.com/juju/clock"
)

// Record is implemented by every stored entity.
type Record interface {
	GetID() int
	SetID(id int)
	SetCreated(now time.Time)
	SetUpdated(now time.Time)
	Field(name string) string
}

// Fielder exposes named fields as strings for search, filter and sort.
type Fielder interface {
	Field(name string) string
}

type recordPtr[T any] interface {
	*T
	Record
}

// cloner is implemented by records holding slices that must not be shared.
type cloner[T any] interface {
	Clone() T
}

// Hooks customise a Base.
//
// Seed returns the initial records. Validate runs before every write;
// required-field checks are skipped when isUpdate is set. Conflict is
// called under the write lock with every other stored record and reports
// uniqueness violations.
type Hooks[T any] struct {
	Seed     func() []T
	Validate func(rec T, isUpdate bool) error
	Conflict func(rec, other T) error
}

// Base is a generic CRUD collection keyed by integer id.
type Base[T any, PT recordPtr[T]] struct {
	mu    sync.RWMutex
	items []T
	clock clock.Clock
	hooks Hooks[T]
}

// NewBase returns a collection loaded with the seed records.
func NewBase[T any, PT recordPtr[T]](clk clock.Clock, hooks Hooks[T]) *Base[T, PT] {
	b := &Base[T, PT]{clock: clk, hooks: hooks}
	b.Reset()
	return b
}

// Reset reloads the seed records, discarding every change.
func (b *Base[T, PT]) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.items = nil
	if b.hooks.Seed != nil {
		for _, rec := range b.hooks.Seed() {
			b.items = append(b.items, copyOf(rec))
		}
	}
}

func copyOf[T any](rec T) T {
	if c, ok := any(rec).(cloner[T]); ok {
		return c.Clone()
	}
	return rec
}

func copyAll[T any](items []T) []T {
	out := make([]T, len(items))
	for i, rec := range items {
		out[i] = copyOf(rec)
	}
	return out
}

// Now returns the repository clock's current time.
func (b *Base[T, PT]) Now() time.Time {
	return b.clock.Now()
}

// GetAll returns a snapshot of every record.
func (b *Base[T, PT]) GetAll() []T {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return copyAll(b.items)
}

// Count returns the number of stored records.
func (b *Base[T, PT]) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.items)
}

// GetByID returns the record with the given id.
func (b *Base[T, PT]) GetByID(id int) (T, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if i := b.indexOf(id); i >= 0 {
		return copyOf(b.items[i]), true
	}
	var zero T
	return zero, false
}

// Find returns every record matching pred.
func (b *Base[T, PT]) Find(pred func(T) bool) []T {
	b.mu.RLock()
	defer b.mu.RUnlock()
	var out []T
	for _, rec := range b.items {
		if pred(rec) {
			out = append(out, copyOf(rec))
		}
	}
	return out
}

// First returns the first record matching pred.
func (b *Base[T, PT]) First(pred func(T) bool) (T, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, rec := range b.items {
		if pred(rec) {
			return copyOf(rec), true
		}
	}
	var zero T
	return zero, false
}

// Exists reports whether any record matches pred.
func (b *Base[T, PT]) Exists(pred func(T) bool) bool {
	_, ok := b.First(pred)
	return ok
}

// Create validates rec, assigns the next id and stores it.
func (b *Base[T, PT]) Create(rec T) (T, error) {
	var zero T
	if b.hooks.Validate != nil {
		if err := b.hooks.Validate(rec, false); err != nil {
			return zero, err
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	PT(&rec).SetID(b.nextID())
	if err := b.checkConflicts(rec); err != nil {
		return zero, err
	}
	PT(&rec).SetCreated(b.clock.Now())
	b.items = append(b.items, copyOf(rec))
	return copyOf(rec), nil
}

// Update applies patch to a copy of the record with the given id and
// stores the result. ok is false when no such record exists.
func (b *Base[T, PT]) Update(id int, patch func(*T)) (rec T, ok bool, err error) {
	return b.Modify(id, func(r *T) error {
		patch(r)
		return nil
	})
}

// Modify is Update with a patch that may refuse the change. A patch error
// leaves the stored record untouched and is returned with ok set.
func (b *Base[T, PT]) Modify(id int, patch func(*T) error) (rec T, ok bool, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.indexOf(id)
	if i < 0 {
		return rec, false, nil
	}
	updated := copyOf(b.items[i])
	if err := patch(&updated); err != nil {
		return rec, true, err
	}
	PT(&updated).SetID(id)

	if b.hooks.Validate != nil {
		if err := b.hooks.Validate(updated, true); err != nil {
			return rec, true, err
		}
	}
	if err := b.checkConflicts(updated); err != nil {
		return rec, true, err
	}
	PT(&updated).SetUpdated(b.clock.Now())
	b.items[i] = updated
	return copyOf(updated), true, nil
}

// Delete removes the record with the given id.
func (b *Base[T, PT]) Delete(id int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.indexOf(id)
	if i < 0 {
		return false
	}
	b.items = append(b.items[:i], b.items[i+1:]...)
	return true
}

// DeleteWhere removes every record matching pred and returns how many went.
func (b *Base[T, PT]) DeleteWhere(pred func(T) bool) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	kept := b.items[:0]
	removed := 0
	for _, rec := range b.items {
		if pred(rec) {
			removed++
			continue
		}
		kept = append(kept, rec)
	}
	b.items = kept
	return removed
}

// Search returns records where any of fields contains keyword, ignoring case.
func (b *Base[T, PT]) Search(keyword string, fields ...string) []T {
	return searchFunc(b.GetAll(), ptrField[T, PT], keyword, fields)
}

// FilterBy returns records equal to every non-empty filter value.
func (b *Base[T, PT]) FilterBy(filters map[string]string) []T {
	return filterFunc(b.GetAll(), ptrField[T, PT], filters)
}

func ptrField[T any, PT recordPtr[T]](rec *T, name string) string {
	return PT(rec).Field(name)
}

func valueField[T Fielder](rec *T, name string) string {
	return (*rec).Field(name)
}

func (b *Base[T, PT]) indexOf(id int) int {
	for i := range b.items {
		if PT(&b.items[i]).GetID() == id {
			return i
		}
	}
	return -1
}

func (b *Base[T, PT]) nextID() int {
	highest := 0
	for i := range b.items {
		if id := PT(&b.items[i]).GetID(); id > highest {
			highest = id
		}
	}
	return highest + 1
}

func (b *Base[T, PT]) checkConflicts(rec T) error {
	if b.hooks.Conflict == nil {
		return nil
	}
	id := PT(&rec).GetID()
	for i := range b.items {
		if PT(&b.items[i]).GetID() == id {
			continue
		}
		if err := b.hooks.Conflict(rec, b.items[i]); err != nil {
			return err
		}
	}
	return nil
}

// Search filters data to records where any of fields contains keyword,
// case-insensitively. An empty keyword matches everything.
func Search[T Fielder](data []T, keyword string, fields ...string) []T {
	return searchFunc(data, valueField[T], keyword, fields)
}

// FilterBy keeps records whose fields equal every filter value. Empty
// values are ignored.
func FilterBy[T Fielder](data []T, filters map[string]string) []T {
	return filterFunc(data, valueField[T], filters)
}

func searchFunc[T any](data []T, field func(*T, string) string, keyword string, fields []string) []T {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	if keyword == "" {
		return data
	}
	out := make([]T, 0, len(data))
	for i := range data {
		for _, f := range fields {
			if strings.Contains(strings.ToLower(field(&data[i], f)), keyword) {
				out = append(out, data[i])
				break
			}
		}
	}
	return out
}

func filterFunc[T any](data []T, field func(*T, string) string, filters map[string]string) []T {
	out := make([]T, 0, len(data))
	for i := range data {
		match := true
		for name, want := range filters {
			if want == "" {
				continue
			}
			if field(&data[i], name) != want {
				match = false
				break
			}
		}
		if match {
			out = append(out, data[i])
		}
	}
	return out
}

// Filter keeps records matching pred.
func Filter[T any](data []T, pred func(T) bool) []T {
	out := make([]T, 0, len(data))
	for _, rec := range data {
		if pred(rec) {
			out = append(out, rec)
		}
	}
	return out
}
