/* provisioning.go
 * Contains the creation of the roles and channels a tournament runs in, and their removal once it ends. Nothing here
 * runs while a tournament's lock is held
 */

package bot

import (
	"fmt"
	"log"

	"tournament-assistant/api/api"
	"tournament-assistant/api/shared"
	"tournament-assistant/api/tournament"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/sync/errgroup"
)

// teardownParallelism bounds the concurrent Discord calls made while cleaning up
const teardownParallelism = 4

// provision creates a director role, a role and text channel for every reader's room and a role for every team, and
// gives each role to its members.
// Postconditions: Returns the ids of everything created. On error everything created so far has been deleted again
func provision(session DiscordSession, guildID string, name string, result api.SetupResult) ([]uint64, tournament.RoleIDs, error) {
	roles := tournament.NewRoleIDs()
	var channelIDs []uint64

	fail := func(err error) ([]uint64, tournament.RoleIDs, error) {
		if teardownErr := teardown(session, guildID, channelIDs, roles); teardownErr != nil {
			log.Printf("[guild %s] failed to clean up after provisioning: %v", guildID, teardownErr)
		}
		return nil, tournament.RoleIDs{}, err
	}

	directorRole, err := createRole(session, guildID, fmt.Sprintf("%s Director", name))
	if err != nil {
		return fail(err)
	}
	roles.DirectorRoleID = directorRole
	for _, director := range result.Directors {
		giveRole(session, guildID, director, directorRole)
	}

	for i, reader := range result.Readers {
		roomRole, err := createRole(session, guildID, fmt.Sprintf("Room %d", i+1))
		if err != nil {
			return fail(err)
		}
		roles.ReaderRoomRoleIDs[reader.ID] = roomRole
		giveRole(session, guildID, reader.ID, roomRole)

		channel, err := session.GuildChannelCreateComplex(guildID, discordgo.GuildChannelCreateData{
			Name:  fmt.Sprintf("room-%d", i+1),
			Type:  discordgo.ChannelTypeGuildText,
			Topic: fmt.Sprintf("%s: reader %s", name, reader.Name),
		})
		if err != nil {
			return fail(fmt.Errorf("unable to create the channel for room %d: %w", i+1, err))
		}
		channelID, err := parseID(channel.ID)
		if err != nil {
			return fail(err)
		}
		channelIDs = append(channelIDs, channelID)
	}

	playersByTeam := make(map[string][]shared.Player)
	for _, player := range result.Players {
		playersByTeam[player.Team.Key()] = append(playersByTeam[player.Team.Key()], player)
	}
	for _, team := range result.Teams {
		teamRole, err := createRole(session, guildID, team.Name)
		if err != nil {
			return fail(err)
		}
		roles.TeamRoleIDs[team.Key()] = teamRole
		for _, player := range playersByTeam[team.Key()] {
			giveRole(session, guildID, player.ID, teamRole)
		}
	}

	return channelIDs, roles, nil
}

func createRole(session DiscordSession, guildID string, name string) (uint64, error) {
	mentionable := true
	role, err := session.GuildRoleCreate(guildID, &discordgo.RoleParams{Name: name, Mentionable: &mentionable})
	if err != nil {
		return 0, fmt.Errorf("unable to create the role '%s': %w", name, err)
	}
	return parseID(role.ID)
}

// giveRole adds a role to a member. Failures are logged since a missing role does not stop the tournament
func giveRole(session DiscordSession, guildID string, userID uint64, roleID uint64) {
	if err := session.GuildMemberRoleAdd(guildID, formatID(userID), formatID(roleID)); err != nil {
		log.Printf("[guild %s] unable to give role %d to user %d: %v", guildID, roleID, userID, err)
	}
}

// teardown deletes channels and roles in parallel
// Postconditions: Every deletion is attempted. Returns the first error encountered
func teardown(session DiscordSession, guildID string, channelIDs []uint64, roles tournament.RoleIDs) error {
	var g errgroup.Group
	g.SetLimit(teardownParallelism)

	for _, channelID := range channelIDs {
		g.Go(func() error {
			if _, err := session.ChannelDelete(formatID(channelID)); err != nil {
				return fmt.Errorf("unable to delete channel %d: %w", channelID, err)
			}
			return nil
		})
	}
	for _, roleID := range roles.All() {
		g.Go(func() error {
			if err := session.GuildRoleDelete(guildID, formatID(roleID)); err != nil {
				return fmt.Errorf("unable to delete role %d: %w", roleID, err)
			}
			return nil
		})
	}
	return g.Wait()
}
