package apitest

import "slices"

// collection keeps rows in id order, which is the order the API lists them in.
type collection[T any] struct {
	rows   []T
	nextID int64
	id     func(*T) *int64
}

func newCollection[T any](id func(*T) *int64) *collection[T] {
	return &collection[T]{id: id}
}

func (c *collection[T]) all() []T {
	return slices.Clone(c.rows)
}

func (c *collection[T]) find(id int64) (T, bool) {
	for i := range c.rows {
		if *c.id(&c.rows[i]) == id {
			return c.rows[i], true
		}
	}
	var zero T
	return zero, false
}

func (c *collection[T]) insert(v T) T {
	c.nextID++
	*c.id(&v) = c.nextID
	c.rows = append(c.rows, v)
	return v
}

func (c *collection[T]) replace(id int64, v T) (T, bool) {
	for i := range c.rows {
		if *c.id(&c.rows[i]) == id {
			*c.id(&v) = id
			c.rows[i] = v
			return v, true
		}
	}
	var zero T
	return zero, false
}

func (c *collection[T]) remove(id int64) bool {
	for i := range c.rows {
		if *c.id(&c.rows[i]) == id {
			c.rows = slices.Delete(c.rows, i, i+1)
			return true
		}
	}
	return false
}

func (c *collection[T]) filter(keep func(T) bool) []T {
	out := make([]T, 0)
	for _, v := range c.rows {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}
