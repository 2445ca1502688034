/* models.go
 * This file contains the entities shared between the scheduler, the tournament state and the bot: teams, readers,
 * players, games, rounds and schedules. Identity for every entity is derived from a single key field
 */

package shared

import "strings"

// Team is a team in a tournament. Two teams whose names differ only in case are the same team
type Team struct {
	Name    string
	Bracket int
}

// Key returns the identity of the team, which is its lower cased name
func (t Team) Key() string {
	return TeamKey(t.Name)
}

// Equals reports whether two teams have the same identity. The bracket is not part of a team's identity
func (t Team) Equals(other Team) bool {
	return t.Key() == other.Key()
}

// TeamKey normalises a team name into the key used for lookups
func TeamKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Reader is the official that runs one room per round
type Reader struct {
	ID   uint64
	Name string
}

// Player is a user that plays for exactly one team
type Player struct {
	ID   uint64
	Team Team
}

// Game is a pairing of two teams read by one reader
type Game struct {
	Teams  [2]Team
	Reader Reader
}

// HasTeam reports whether the team plays in this game
func (g Game) HasTeam(team Team) bool {
	return g.Teams[0].Equals(team) || g.Teams[1].Equals(team)
}

// Round is a set of games played at the same time
type Round struct {
	Games []Game
}

// Schedule is the ordered list of rounds for a tournament
type Schedule struct {
	Rounds []Round
}

// AddRound appends a round to the end of the schedule
func (s *Schedule) AddRound(round Round) {
	s.Rounds = append(s.Rounds, round)
}

// Append adds every round of another schedule after the rounds already in this one
func (s *Schedule) Append(other *Schedule) {
	if other == nil {
		return
	}
	s.Rounds = append(s.Rounds, other.Rounds...)
}

// GamesForTeam returns the round index and game for each game the team plays, in schedule order
// Preconditions: Receives a team
// Postconditions: Returns a slice of round numbers (starting at 1) and a parallel slice of games
func (s *Schedule) GamesForTeam(team Team) ([]int, []Game) {
	var rounds []int
	var games []Game
	for i, round := range s.Rounds {
		for _, game := range round.Games {
			if game.HasTeam(team) {
				rounds = append(rounds, i+1)
				games = append(games, game)
			}
		}
	}
	return rounds, games
}
