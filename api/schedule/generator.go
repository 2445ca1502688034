/* generator.go
 * Contains the round robin schedule generator. Each bracket is scheduled independently with the circle method and
 * the brackets are then merged so that round N of every bracket is played at the same time. Readers are reserved
 * per bracket, one per room, and shuffled between rooms every round
 */

package schedule

import (
	"errors"
	"fmt"

	"tournament-assistant/api/shared"
)

// MaxBrackets is the largest number of brackets a schedule can be generated for
const MaxBrackets = 6

// bye marks the empty slot added to brackets with an odd number of teams
const bye = -1

var (
	ErrInvalidRoundRobins = errors.New("the number of round robins must be greater than zero")
	ErrNoBrackets         = errors.New("at least one bracket is required")
	ErrTooManyBrackets    = errors.New("too many brackets")
	ErrNotEnoughTeams     = errors.New("there must be more than one team")
	ErrBracketTooSmall    = errors.New("every bracket must have more than one team")
	ErrDuplicateTeam      = errors.New("a team can only be in one bracket")
	ErrNoReaders          = errors.New("there must be at least one reader")
	ErrNotEnoughReaders   = errors.New("not enough readers")
)

// Generator builds round robin schedules
type Generator struct {
	random Random
}

// NewGenerator creates a Generator. If random is nil readers are shuffled with math/rand
func NewGenerator(random Random) *Generator {
	if random == nil {
		random = defaultRandom{}
	}
	return &Generator{random: random}
}

// Generate builds a schedule using a Generator with the default source of randomness
func Generate(teamsByBracket [][]shared.Team, readers []shared.Reader, roundRobins int) (*shared.Schedule, error) {
	return NewGenerator(nil).Generate(teamsByBracket, readers, roundRobins)
}

// Generate builds the schedule for every bracket and merges them into one schedule.
// Preconditions: Receives the teams in each bracket, the readers available and how many times each bracket's round
// robin is played
// Postconditions: Returns the schedule, or an error if the teams and readers cannot be scheduled. No partial
// schedule is returned on error
func (g *Generator) Generate(teamsByBracket [][]shared.Team, readers []shared.Reader, roundRobins int) (*shared.Schedule, error) {
	readers = uniqueReaders(readers)
	if err := validate(teamsByBracket, readers, roundRobins); err != nil {
		return nil, err
	}

	schedule := &shared.Schedule{}
	readerOffset := 0
	for _, bracket := range teamsByBracket {
		rooms := len(bracket) / 2
		bracketReaders := make([]shared.Reader, rooms)
		copy(bracketReaders, readers[readerOffset:readerOffset+rooms])
		readerOffset += rooms

		for i, games := range g.generateBracket(bracket, bracketReaders, roundRobins) {
			for len(schedule.Rounds) <= i {
				schedule.AddRound(shared.Round{})
			}
			schedule.Rounds[i].Games = append(schedule.Rounds[i].Games, games...)
		}
	}

	return schedule, nil
}

// RoundsPerRoundRobin returns how many rounds a single round robin takes for a bracket of the given size
func RoundsPerRoundRobin(teamCount int) int {
	if teamCount < 2 {
		return 0
	}
	if teamCount%2 == 1 {
		return teamCount
	}
	return teamCount - 1
}

// RoomsNeeded returns the number of readers needed to read every game of a round at the same time
func RoomsNeeded(teamsByBracket [][]shared.Team) int {
	rooms := 0
	for _, bracket := range teamsByBracket {
		rooms += len(bracket) / 2
	}
	return rooms
}

func validate(teamsByBracket [][]shared.Team, readers []shared.Reader, roundRobins int) error {
	if roundRobins <= 0 {
		return ErrInvalidRoundRobins
	}
	if len(teamsByBracket) == 0 {
		return ErrNoBrackets
	}
	if len(teamsByBracket) > MaxBrackets {
		return fmt.Errorf("%w: %d brackets given but at most %d are supported", ErrTooManyBrackets, len(teamsByBracket), MaxBrackets)
	}

	total := 0
	seen := make(map[string]bool)
	for _, bracket := range teamsByBracket {
		total += len(bracket)
		for _, team := range bracket {
			if seen[team.Key()] {
				return fmt.Errorf("%w: '%s'", ErrDuplicateTeam, team.Name)
			}
			seen[team.Key()] = true
		}
	}
	if total <= 1 {
		return ErrNotEnoughTeams
	}
	for i, bracket := range teamsByBracket {
		if len(bracket) <= 1 {
			return fmt.Errorf("%w: bracket %d has %d team(s)", ErrBracketTooSmall, i+1, len(bracket))
		}
	}

	if len(readers) == 0 {
		return ErrNoReaders
	}
	if needed := RoomsNeeded(teamsByBracket); needed > len(readers) {
		return fmt.Errorf("%w: %d readers are needed but only %d were given", ErrNotEnoughReaders, needed, len(readers))
	}
	return nil
}

// generateBracket schedules one bracket with the circle method. The first slot of the top row never moves and every
// other slot rotates one place each round, so after n-1 rounds (n including the bye) every pair has met once
func (g *Generator) generateBracket(teams []shared.Team, readers []shared.Reader, roundRobins int) [][]shared.Game {
	slots := make([]int, 0, len(teams)+1)
	for i := range teams {
		slots = append(slots, i)
	}
	if len(slots)%2 == 1 {
		slots = append(slots, bye)
	}

	half := len(slots) / 2
	top := append([]int(nil), slots[:half]...)
	bottom := append([]int(nil), slots[half:]...)

	totalRounds := roundRobins * RoundsPerRoundRobin(len(teams))
	rounds := make([][]shared.Game, 0, totalRounds)
	for range totalRounds {
		shuffleReaders(g.random, readers)

		games := make([]shared.Game, 0, len(readers))
		readerIndex := 0
		for i := range half {
			if top[i] == bye || bottom[i] == bye {
				continue
			}
			games = append(games, shared.Game{
				Teams:  [2]shared.Team{teams[top[i]], teams[bottom[i]]},
				Reader: readers[readerIndex],
			})
			readerIndex++
		}
		rounds = append(rounds, games)

		rotate(top, bottom)
	}

	return rounds
}

// rotate moves every slot except top[0] one place around the circle. The slot leaving the bottom row fills
// top[1] and the last slot of the top row moves to the end of the bottom row
func rotate(top []int, bottom []int) {
	half := len(top)
	if half < 2 {
		return
	}

	last := top[half-1]
	first := bottom[0]
	copy(top[2:], top[1:half-1])
	top[1] = first
	copy(bottom, bottom[1:])
	bottom[half-1] = last
}

func uniqueReaders(readers []shared.Reader) []shared.Reader {
	seen := make(map[uint64]bool, len(readers))
	unique := make([]shared.Reader, 0, len(readers))
	for _, reader := range readers {
		if seen[reader.ID] {
			continue
		}
		seen[reader.ID] = true
		unique = append(unique, reader)
	}
	return unique
}
