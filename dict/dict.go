// The MIT License (MIT)
//
// # Copyright (c) 2016 xtaci
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package dict implements the bidirectional, capacity-bounded LRU base
// dictionary described in spec.md §4.5: a forward base→id map, a
// reverse id→base map, and an LRU order where both reads and writes
// count as use. Grounded on the same doubly-linked-list-plus-hash-index
// shape the teacher's shard bookkeeping in fec.go uses for its own
// bounded, id-addressable working set.
package dict

import (
	"container/list"
	"fmt"

	"github.com/xtaci/gd/bitstream"
	"github.com/xtaci/gd/gderr"
)

// entry is the value stored in each list.Element: the base bytes and
// the id permanently bound to this dictionary slot for its lifetime.
type entry struct {
	id   int
	base string
}

// Dict is a bidirectional base<->id LRU map with fixed capacity. Not
// safe for concurrent use: the GD engine serializes dictionary access
// on the producer/consumer side by design (see spec.md §4.7).
type Dict struct {
	capacity int
	bitlen   int

	order   *list.List               // front = MRU, back = LRU
	forward map[string]*list.Element // base -> element
	reverse map[int]*list.Element    // id -> element

	nextID int // next fresh id to assign, while size < capacity
}

// New builds an empty dictionary of the given capacity (must be >= 1).
func New(capacity int) (*Dict, error) {
	if capacity < 1 {
		return nil, gderr.New(gderr.InvalidParams, "dict: capacity must be >= 1")
	}
	return &Dict{
		capacity: capacity,
		bitlen:   bitstream.BitLen(capacity),
		order:    list.New(),
		forward:  make(map[string]*list.Element),
		reverse:  make(map[int]*list.Element),
	}, nil
}

// IDBitlen returns the wire width of an id: ceil(log2(capacity+1)).
func (d *Dict) IDBitlen() int { return d.bitlen }

// Len returns the number of live entries.
func (d *Dict) Len() int { return d.order.Len() }

// GetID looks up base. On a hit it promotes the entry to MRU and
// returns its id; on a miss it returns (0, false) without mutating
// anything.
func (d *Dict) GetID(base []byte) (int, bool) {
	el, ok := d.forward[string(base)]
	if !ok {
		return 0, false
	}
	d.order.MoveToFront(el)
	return el.Value.(*entry).id, true
}

// PutBase unconditionally inserts base as a new MRU entry. If the
// dictionary is below capacity, it is assigned the next unused id
// (monotonically from 0); otherwise the current LRU entry is evicted
// and its id is reused. Never fails for capacity >= 1.
func (d *Dict) PutBase(base []byte) int {
	var id int
	if d.order.Len() < d.capacity {
		id = d.nextID
		d.nextID++
	} else {
		back := d.order.Back()
		victim := back.Value.(*entry)
		id = victim.id
		delete(d.forward, victim.base)
		delete(d.reverse, victim.id)
		d.order.Remove(back)
	}

	e := &entry{id: id, base: string(base)}
	el := d.order.PushFront(e)
	d.forward[e.base] = el
	d.reverse[id] = el
	return id
}

// GetBase looks up id. On success it promotes the entry to MRU and
// returns its base; it fails with InvalidDictionary when id has no
// current mapping.
func (d *Dict) GetBase(id int) ([]byte, error) {
	el, ok := d.reverse[id]
	if !ok {
		return nil, gderr.New(gderr.InvalidDictionary, fmt.Sprintf("dict: no base mapped to id %d", id))
	}
	d.order.MoveToFront(el)
	return []byte(el.Value.(*entry).base), nil
}
