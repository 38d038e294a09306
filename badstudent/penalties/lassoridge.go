// Package penalties provides regularization for the weights of a Network.
package penalties

import (
	"math"
)

type l1 float64

// L1 returns a Penalty that pushes weights towards zero by a constant amount. λ is a small value
// close to 0 where λ > 0
func L1(λ float64) *l1 {
	p := l1(λ)
	return &p
}

// Lasso is an alias for L1
func Lasso(λ float64) *l1 {
	return L1(λ)
}

func (p *l1) TypeString() string {
	return "l1-lasso"
}

func (p *l1) Penalize(w, grad float64) float64 {
	if w == 0 {
		return grad
	}

	return grad + float64(*p)*math.Copysign(1, w)
}

type l2 float64

// L2 returns a Penalty that pushes weights towards zero in proportion to their size. λ is a small
// value close to 0 where λ > 0
func L2(λ float64) *l2 {
	p := l2(λ)
	return &p
}

// Ridge is an alias for L2
func Ridge(λ float64) *l2 {
	return L2(λ)
}

func (p *l2) TypeString() string {
	return "l2-ridge"
}

func (p *l2) Penalize(w, grad float64) float64 {
	return grad + 2*float64(*p)*w
}
