/* random.go
 * Contains the source of randomness used when assigning readers to games. It is an interface so tests can make
 * reader assignment deterministic
 */

package schedule

import (
	"math/rand/v2"

	"tournament-assistant/api/shared"
)

// Random provides random number generation that can be mocked for testing
type Random interface {
	// IntN returns a random int in [0, n)
	IntN(n int) int
}

// defaultRandom uses the math/rand/v2 global source
type defaultRandom struct{}

func (defaultRandom) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return rand.IntN(n)
}

// shuffleReaders performs a Fisher-Yates shuffle of the readers in place
func shuffleReaders(random Random, readers []shared.Reader) {
	for i := len(readers) - 1; i > 0; i-- {
		j := random.IntN(i + 1)
		readers[i], readers[j] = readers[j], readers[i]
	}
}
