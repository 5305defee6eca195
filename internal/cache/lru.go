package cache

import "container/list"

// lruMap is a plain bounded LRU. Not safe for concurrent use; Cache holds
// the lock.
type lruMap struct {
	capacity int
	order    *list.List // front = most recently used
	items    map[string]*list.Element
}

type lruItem struct {
	key   string
	entry Entry
}

func newLRUMap(capacity int) *lruMap {
	return &lruMap{
		capacity: capacity,
		order:    list.New(),
		items:    make(map[string]*list.Element),
	}
}

func (m *lruMap) get(key string) (Entry, bool) {
	el, ok := m.items[key]
	if !ok {
		return Entry{}, false
	}
	m.order.MoveToFront(el)
	return el.Value.(*lruItem).entry, true
}

func (m *lruMap) put(key string, entry Entry) {
	if el, ok := m.items[key]; ok {
		el.Value.(*lruItem).entry = entry
		m.order.MoveToFront(el)
		return
	}
	m.items[key] = m.order.PushFront(&lruItem{key: key, entry: entry})
	if m.order.Len() > m.capacity {
		oldest := m.order.Back()
		m.order.Remove(oldest)
		delete(m.items, oldest.Value.(*lruItem).key)
	}
}

func (m *lruMap) remove(key string) {
	if el, ok := m.items[key]; ok {
		m.order.Remove(el)
		delete(m.items, key)
	}
}

func (m *lruMap) reset() {
	m.order.Init()
	m.items = make(map[string]*list.Element)
}

func (m *lruMap) len() int { return m.order.Len() }
