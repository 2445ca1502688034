/* reactions.go
 * Contains the join team prompts and the handling of reactions on them
 */

package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"tournament-assistant/api/api"
	"tournament-assistant/api/registry"
	"tournament-assistant/api/shared"

	"github.com/bwmarrin/discordgo"
)

const (
	// teamsPerJoinMessage is how many teams are listed on each join prompt
	teamsPerJoinMessage = 10
	// maxReactionTeams is how many teams can be joined by reacting, one per regional indicator
	maxReactionTeams = 26
)

// teamSymbol returns the regional indicator emoji for the i-th team
func teamSymbol(i int) string {
	return string(rune(0x1F1E6 + i))
}

// postJoinPrompts posts messages players react to in order to join a team. Each team is given its own symbol
func (b *Bot) postJoinPrompts(ctx context.Context, session DiscordSession, guildID uint64, channelID string, teams []shared.Team) {
	reactable := teams
	if len(reactable) > maxReactionTeams {
		reactable = reactable[:maxReactionTeams]
		session.ChannelMessageSend(channelID, fmt.Sprintf("Only the first %d teams can be joined by reacting. Use `!addplayer` for the rest", maxReactionTeams))
	}

	for start := 0; start < len(reactable); start += teamsPerJoinMessage {
		end := min(start+teamsPerJoinMessage, len(reactable))

		var res strings.Builder
		res.WriteString("React to join a team:\n")
		symbols := make(map[string]string, end-start)
		for i := start; i < end; i++ {
			symbol := teamSymbol(i)
			symbols[symbol] = reactable[i].Name
			res.WriteString(fmt.Sprintf("%s %s\n", symbol, reactable[i].Name))
		}

		message, err := session.ChannelMessageSend(channelID, res.String())
		if err != nil {
			log.Printf("[guild %d] unable to post join prompt: %v", guildID, err)
			return
		}
		messageID, err := parseID(message.ID)
		if err != nil {
			log.Println(err)
			return
		}
		if err := b.APIPtr.RegisterJoinMessage(ctx, guildID, messageID, symbols); err != nil {
			session.ChannelMessageSend(channelID, userMessage(err))
			return
		}
		for i := start; i < end; i++ {
			if err := session.MessageReactionAdd(channelID, message.ID, teamSymbol(i)); err != nil {
				log.Printf("[guild %d] unable to add reaction: %v", guildID, err)
			}
		}
	}
}

// reactionAddHandler adds the user to a team when they react to a join prompt
func (b *Bot) reactionAddHandler(session DiscordSession, reaction *discordgo.MessageReactionAdd, botUserID string) {
	if reaction.UserID == botUserID || reaction.GuildID == "" {
		return
	}
	guildID, err := parseID(reaction.GuildID)
	if err != nil {
		return
	}
	messageID, err := parseID(reaction.MessageID)
	if err != nil {
		return
	}
	userID, err := parseID(reaction.UserID)
	if err != nil {
		return
	}

	team, err := b.APIPtr.AddPlayerBySymbol(context.Background(), guildID, messageID, userID, reaction.Emoji.Name)
	switch {
	case err == nil:
		b.Metrics.Reactions.Inc()
		session.ChannelMessageSend(reaction.ChannelID, fmt.Sprintf("<@%s> joined %s", reaction.UserID, team.Name))
	case errors.Is(err, api.ErrNotJoinMessage), errors.Is(err, registry.ErrNoCurrentTournament):
		// reactions on anything else are ignored
	default:
		session.ChannelMessageSend(reaction.ChannelID, fmt.Sprintf("<@%s> %s", reaction.UserID, userMessage(err)))
	}
}
