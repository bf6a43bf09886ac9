package mock

import "github.com/fwojciec/markdownizer"

var _ markdownizer.Skeletonizer = (*Skeletonizer)(nil)

// Skeletonizer is a mock implementation of markdownizer.Skeletonizer.
type Skeletonizer struct {
	SkeletonizeFn func(contentHTML string) (*markdownizer.Skeleton, error)
}

func (s *Skeletonizer) Skeletonize(contentHTML string) (*markdownizer.Skeleton, error) {
	return s.SkeletonizeFn(contentHTML)
}
