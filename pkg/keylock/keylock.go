package keylock

import "sync"

// KeyLock - взаимное исключение по строковому ключу.
// Гарантирует не более одной операции на ключ одновременно,
// операции с разными ключами друг друга не блокируют
type KeyLock struct {
	mtx   sync.Mutex
	locks map[string]*entry
}

type entry struct {
	mtx sync.Mutex
	// Счетчик ожидающих, чтобы знать когда запись можно удалить из map
	refs int
}

func New() *KeyLock {
	return &KeyLock{
		locks: make(map[string]*entry),
	}
}

// Lock - захватывает блокировку по ключу.
// Возвращает функцию снятия блокировки
func (kl *KeyLock) Lock(key string) (unlock func()) {
	kl.mtx.Lock()
	e, ok := kl.locks[key]
	if !ok {
		e = &entry{}
		kl.locks[key] = e
	}
	e.refs++
	kl.mtx.Unlock()

	e.mtx.Lock()

	return func() {
		e.mtx.Unlock()

		kl.mtx.Lock()
		e.refs--
		if e.refs == 0 {
			delete(kl.locks, key)
		}
		kl.mtx.Unlock()
	}
}
