package mock

import "github.com/fwojciec/wrake"

var _ wrake.SeenSet = (*SeenSet)(nil)

// SeenSet is a mock implementation of wrake.SeenSet.
type SeenSet struct {
	InsertFn func(url string) bool
	LenFn    func() int
}

func (s *SeenSet) Insert(url string) bool {
	return s.InsertFn(url)
}

func (s *SeenSet) Len() int {
	return s.LenFn()
}
