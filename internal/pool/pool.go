// Package pool owns the shuffled multiset of pending task instances for a
// quiz session. Randomness lives only in Build and Reinject; drawing is a
// plain queue pop so the order fixed at shuffle time is what the learner
// sees.
package pool

import (
	"math/rand/v2"

	"github.com/abhisek/quizlab/internal/quiz"
)

// Build creates the initial pool: size fresh copies of every canonical task
// not marked removed, shuffled uniformly. size must be >= 1; values below
// that are clamped.
func Build(tasks []quiz.Task, size int, rng *rand.Rand) []quiz.Task {
	if size < 1 {
		size = 1
	}

	var p []quiz.Task
	for _, t := range tasks {
		if t.IsRemoved {
			continue
		}
		for i := 0; i < size; i++ {
			p = append(p, t.FreshCopy(false))
		}
	}
	shuffle(p, rng)
	return p
}

// DrawNext pops the head of the pool. ok is false when the pool is empty.
func DrawNext(p []quiz.Task) (head quiz.Task, rest []quiz.Task, ok bool) {
	if len(p) == 0 {
		return quiz.Task{}, p, false
	}
	return p[0], p[1:], true
}

// Reinject appends copies retry instances of the failed task (selections
// cleared) and re-shuffles the whole pool so retries are not clustered at
// the tail.
func Reinject(p []quiz.Task, failed quiz.Task, copies int, rng *rand.Rand) []quiz.Task {
	if copies < 1 {
		copies = 1
	}

	out := make([]quiz.Task, len(p), len(p)+copies)
	copy(out, p)
	for i := 0; i < copies; i++ {
		out = append(out, failed.FreshCopy(true))
	}
	shuffle(out, rng)
	return out
}

// RemoveID strips every instance with the given id from the pool.
func RemoveID(p []quiz.Task, id string) []quiz.Task {
	out := p[:0:len(p)]
	for _, t := range p {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}

// RemoveRetries strips retry instances of the given id, keeping fresh copies.
func RemoveRetries(p []quiz.Task, id string) []quiz.Task {
	out := p[:0:len(p)]
	for _, t := range p {
		if t.ID == id && t.IsRetry {
			continue
		}
		out = append(out, t)
	}
	return out
}

// shuffle is an in-place Fisher-Yates over the injected source.
func shuffle(p []quiz.Task, rng *rand.Rand) {
	for i := len(p) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		p[i], p[j] = p[j], p[i]
	}
}
