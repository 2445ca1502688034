/* store_interface.go
 * Contains the Store interface for dependency injection and testing
 */

package store

import "context"

// Interface defines the methods that Store implements.
// This allows for mocking in tests.
type Interface interface {
	ArchiveTournament(ctx context.Context, record TournamentRecord) error
	ListTournaments(ctx context.Context, guildID uint64, limit int64) ([]TournamentRecord, error)
}

// Ensure Store implements Interface
var _ Interface = (*Store)(nil)
