/* directory.go
 * Contains the Directory, which maps a guild id to that guild's Registry
 */

package registry

import (
	"slices"
	"sync"
)

// Directory holds one Registry per guild, created the first time the guild is seen
type Directory struct {
	mu         sync.Mutex
	registries map[uint64]*Registry
}

// NewDirectory creates an empty Directory
func NewDirectory() *Directory {
	return &Directory{registries: make(map[uint64]*Registry)}
}

// GetOrAdd returns the guild's registry, calling factory to create it if the guild has none yet. factory is called
// at most once per guild
func (d *Directory) GetOrAdd(guildID uint64, factory func(guildID uint64) *Registry) *Registry {
	d.mu.Lock()
	defer d.mu.Unlock()

	if registry, ok := d.registries[guildID]; ok {
		return registry
	}
	registry := factory(guildID)
	d.registries[guildID] = registry
	return registry
}

// Get returns the guild's registry if one has been created
func (d *Directory) Get(guildID uint64) (*Registry, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	registry, ok := d.registries[guildID]
	return registry, ok
}

// GuildIDs returns the ids of every guild with a registry, in ascending order
func (d *Directory) GuildIDs() []uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()

	ids := make([]uint64, 0, len(d.registries))
	for id := range d.registries {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
