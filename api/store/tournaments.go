/* tournaments.go
 * Contains the methods for interacting with the tournaments collection
 */

package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ArchiveTournament stores the record of an ended tournament
// Preconditions: Receives a context and the record to insert
// Postconditions: Stores the record in the db, or returns an error if the insert was unsuccessful
func (s *Store) ArchiveTournament(ctx context.Context, record TournamentRecord) error {
	if record.ID == "" {
		return fmt.Errorf("tournament record must have an id")
	}
	if _, err := s.Collections.Tournaments.InsertOne(ctx, record); err != nil {
		return fmt.Errorf("failed to archive tournament '%s': %w", record.Name, err)
	}
	return nil
}

// ListTournaments gets the most recently ended tournaments of a guild
// Preconditions: Receives a context, the guild id and the maximum number of records to return (0 for no limit)
// Postconditions: Returns the records, newest first, or an error if it occurs
func (s *Store) ListTournaments(ctx context.Context, guildID uint64, limit int64) ([]TournamentRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "endedat", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := s.Collections.Tournaments.Find(ctx, bson.D{{Key: "guildid", Value: guildID}}, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching tournaments from db: %w", err)
	}

	var records []TournamentRecord
	if err = cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("error unpacking cursor into slice of tournaments: %w", err)
	}
	return records, nil
}
