package utils

import (
	"fmt"
	"sort"
)

type Index []int

func NewIndex(N int) (I Index) {
	return make(Index, N)
}

func (I Index) Add(val int) (r Index) {
	r = make(Index, len(I))
	for i, ival := range I {
		r[i] = val + ival
	}
	return r
}

func (I Index) Contains(val int) bool {
	for _, v := range I {
		if v == val {
			return true
		}
	}
	return false
}

// CheckBounds returns an error for the first entry outside of [0, N).
func (I Index) CheckBounds(N int) (err error) {
	for i, val := range I {
		if val < 0 || val > N-1 {
			err = fmt.Errorf("dimension bounds error, index[%d] = %v outside of [0,%v)", i, val, N)
			return
		}
	}
	return
}

// Union merges any number of index lists into one sorted list without duplicates
func Union(Is ...Index) (r Index) {
	var (
		seen = make(map[int]struct{})
	)
	for _, I := range Is {
		for _, val := range I {
			if _, ok := seen[val]; ok {
				continue
			}
			seen[val] = struct{}{}
			r = append(r, val)
		}
	}
	sort.Ints(r)
	return
}
