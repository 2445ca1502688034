/* test_mocks.go
 * Contains mock structures for testing the API package and the packages built on it
 */

package api

import (
	"context"
	"slices"
	"sync"

	"tournament-assistant/api/store"
)

// MockStore implements the store Interface for testing
type MockStore struct {
	mu      sync.Mutex
	Records []store.TournamentRecord

	// Error injection for testing error paths
	ArchiveTournamentError error
	ListTournamentsError   error
}

// NewMockStore creates an empty MockStore
func NewMockStore() *MockStore {
	return &MockStore{}
}

// ArchiveTournament mock implementation
func (m *MockStore) ArchiveTournament(_ context.Context, record store.TournamentRecord) error {
	if m.ArchiveTournamentError != nil {
		return m.ArchiveTournamentError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Records = append(m.Records, record)
	return nil
}

// ListTournaments mock implementation. Records are returned newest first
func (m *MockStore) ListTournaments(_ context.Context, guildID uint64, limit int64) ([]store.TournamentRecord, error) {
	if m.ListTournamentsError != nil {
		return nil, m.ListTournamentsError
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	var records []store.TournamentRecord
	for _, record := range slices.Backward(m.Records) {
		if record.GuildID != guildID {
			continue
		}
		records = append(records, record)
		if limit > 0 && int64(len(records)) == limit {
			break
		}
	}
	return records, nil
}

var _ store.Interface = (*MockStore)(nil)
