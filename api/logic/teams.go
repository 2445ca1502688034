/* teams.go
 * Contains the logic for turning user input into team names: splitting a team list into brackets and matching a
 * loosely typed team name against the teams in the tournament
 */

package logic

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"tournament-assistant/api/shared"

	"github.com/go-andiamo/splitter"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

var (
	ErrNoTeams           = errors.New("no team names were given")
	ErrDuplicateTeamName = errors.New("team names must be unique")
	ErrInvalidTeamList   = errors.New("the team list could not be read, check that every quote is closed")
	ErrTeamNotFound      = errors.New("team cannot be found")
	ErrAmbiguousTeamName = errors.New("the name matches more than one team")
)

// Quoted names are kept whole, so a team can be called "Smith, Jones"
var (
	bracketSplitter = newListSplitter(';')
	teamSplitter    = newListSplitter(',')
)

func newListSplitter(separator rune) splitter.Splitter {
	s, err := splitter.NewSplitter(separator, splitter.DoubleQuotes, splitter.LeftRightDoubleDoubleQuotes)
	if err != nil {
		panic(fmt.Sprintf("invalid team list splitter: %v", err))
	}
	return s
}

// ParseBrackets splits a list of team names into brackets. Brackets are separated by semicolons and teams within a
// bracket by commas, e.g. "Team A, Team B; Team C, Team D". A name in double quotes may contain either separator
// Preconditions: Receives the raw team list typed by a director
// Postconditions: Returns the team names for each bracket with empty entries removed, or an error if there are no
// names, a quote is not closed or a name is repeated (ignoring case)
func ParseBrackets(input string) ([][]string, error) {
	var brackets [][]string
	seen := make(map[string]bool)

	rawBrackets, err := bracketSplitter.Split(input)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTeamList, err)
	}
	for _, rawBracket := range rawBrackets {
		rawNames, err := teamSplitter.Split(rawBracket)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidTeamList, err)
		}

		var bracket []string
		for _, rawName := range rawNames {
			name := cleanTeamName(rawName)
			if name == "" {
				continue
			}
			key := shared.TeamKey(name)
			if seen[key] {
				return nil, fmt.Errorf("%w: '%s' was entered more than once", ErrDuplicateTeamName, name)
			}
			seen[key] = true
			bracket = append(bracket, name)
		}
		if len(bracket) > 0 {
			brackets = append(brackets, bracket)
		}
	}

	if len(brackets) == 0 {
		return nil, ErrNoTeams
	}
	return brackets, nil
}

// ToTeams turns the parsed bracket lists into teams with their bracket index set
func ToTeams(brackets [][]string) []shared.Team {
	var teams []shared.Team
	for i, bracket := range brackets {
		for _, name := range bracket {
			teams = append(teams, shared.Team{Name: name, Bracket: i})
		}
	}
	return teams
}

// MatchTeamName finds the team a user meant. An exact match (ignoring case) wins, otherwise the closest fuzzy match
// is used
// Preconditions: Receives the name typed by the user and the names of the teams in the tournament
// Postconditions: Returns the matching team name as it is stored, ErrTeamNotFound if nothing matches, or
// ErrAmbiguousTeamName if several teams are equally close
func MatchTeamName(input string, validTeams []string) (string, error) {
	typed := cleanTeamName(input)
	key := shared.TeamKey(typed)
	if key == "" {
		return "", fmt.Errorf("%w: '%s'", ErrTeamNotFound, typed)
	}

	lookup := make(map[string]string, len(validTeams))
	lowered := make([]string, 0, len(validTeams))
	for _, name := range validTeams {
		teamKey := shared.TeamKey(name)
		lookup[teamKey] = name
		lowered = append(lowered, teamKey)
	}

	if name, ok := lookup[key]; ok {
		return name, nil
	}

	ranks := fuzzy.RankFindFold(key, lowered)
	if len(ranks) == 0 {
		return "", fmt.Errorf("%w: '%s'", ErrTeamNotFound, typed)
	}

	best := ranks[0].Distance
	for _, rank := range ranks[1:] {
		best = min(best, rank.Distance)
	}
	var closest []string
	for _, rank := range ranks {
		if rank.Distance == best {
			closest = append(closest, lookup[rank.Target])
		}
	}
	if len(closest) > 1 {
		slices.Sort(closest)
		return "", fmt.Errorf("%w: '%s' could be %s", ErrAmbiguousTeamName, typed, strings.Join(closest, ", "))
	}
	return closest[0], nil
}

// CheckTeamNames matches every input name against the valid teams
// Postconditions: Returns the matched team names and an error for each input that did not match exactly one team
func CheckTeamNames(inputTeams []string, validTeams []string) ([]string, []error) {
	var matched []string
	var invalid []error
	for _, team := range inputTeams {
		name, err := MatchTeamName(team, validTeams)
		if err != nil {
			invalid = append(invalid, err)
			continue
		}
		matched = append(matched, name)
	}
	return matched, invalid
}

// cleanTeamName strips whitespace and the quote characters Discord clients insert
func cleanTeamName(name string) string {
	name = strings.ReplaceAll(name, "\"", "")
	name = strings.ReplaceAll(name, "“", "")
	name = strings.ReplaceAll(name, "”", "")
	return strings.TrimSpace(name)
}
