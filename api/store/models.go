/* models.go
 * This file contains the structs stored in the tournament archive and the conversion from a tournament's state
 */

package store

import (
	"time"

	"tournament-assistant/api/tournament"
)

// TournamentRecord is how an ended tournament is stored in the DB
type TournamentRecord struct {
	ID          string         `bson:"_id"`
	GuildID     uint64         `bson:"guildid"`
	Name        string         `bson:"name"`
	Stage       string         `bson:"stage"`
	RoundRobins int            `bson:"roundrobins"`
	Directors   []uint64       `bson:"directors,omitempty"`
	Readers     []ReaderRecord `bson:"readers,omitempty"`
	Teams       []TeamRecord   `bson:"teams,omitempty"`
	Rounds      []RoundRecord  `bson:"rounds,omitempty"`
	EndedAt     time.Time      `bson:"endedat"`
}

type ReaderRecord struct {
	ID   uint64 `bson:"id"`
	Name string `bson:"name"`
}

type TeamRecord struct {
	Name    string   `bson:"name"`
	Bracket int      `bson:"bracket"`
	Players []uint64 `bson:"players,omitempty"`
}

type RoundRecord struct {
	Games []GameRecord `bson:"games"`
}

type GameRecord struct {
	Teams    [2]string `bson:"teams"`
	ReaderID uint64    `bson:"readerid"`
}

// NewTournamentRecord copies what is worth keeping from a tournament into a record
// Preconditions: Receives the id to store the record under, the tournament and the time it ended. The caller must
// hold the tournament's lock
// Postconditions: Returns a record that shares no memory with the tournament
func NewTournamentRecord(id string, state *tournament.State, endedAt time.Time) TournamentRecord {
	record := TournamentRecord{
		ID:          id,
		GuildID:     state.GuildID,
		Name:        state.Name,
		Stage:       state.Stage().String(),
		RoundRobins: state.RoundRobins(),
		Directors:   state.Directors(),
		EndedAt:     endedAt.UTC(),
	}

	for _, reader := range state.Readers() {
		record.Readers = append(record.Readers, ReaderRecord{ID: reader.ID, Name: reader.Name})
	}

	playersByTeam := make(map[string][]uint64)
	for _, player := range state.Players() {
		playersByTeam[player.Team.Key()] = append(playersByTeam[player.Team.Key()], player.ID)
	}
	for _, team := range state.Teams() {
		record.Teams = append(record.Teams, TeamRecord{
			Name:    team.Name,
			Bracket: team.Bracket,
			Players: playersByTeam[team.Key()],
		})
	}

	if schedule := state.Schedule(); schedule != nil {
		for _, round := range schedule.Rounds {
			roundRecord := RoundRecord{Games: make([]GameRecord, 0, len(round.Games))}
			for _, game := range round.Games {
				roundRecord.Games = append(roundRecord.Games, GameRecord{
					Teams:    [2]string{game.Teams[0].Name, game.Teams[1].Name},
					ReaderID: game.Reader.ID,
				})
			}
			record.Rounds = append(record.Rounds, roundRecord)
		}
	}

	return record
}
