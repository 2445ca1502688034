//go:build !test

/* bot_runtime.go
 * Contains runtime-only Discord bot methods that use *discordgo.Session directly.
 * Delegates to testable handlers in handlers.go and reactions.go to avoid code duplication.
 */

package bot

import (
	"context"
	"log"

	"github.com/bwmarrin/discordgo"
)

// Run starts the Discord bot and listens for messages and reactions until ctx is cancelled
func (b *Bot) Run(ctx context.Context) error {
	// create a session
	discord, err := discordgo.New("Bot " + b.BotToken)
	if err != nil {
		return err
	}
	discord.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMessageReactions |
		discordgo.IntentMessageContent

	// add event handlers
	discord.AddHandler(b.newMessage)
	discord.AddHandler(b.newReaction)

	// open session
	if err := discord.Open(); err != nil {
		return err
	}
	defer discord.Close() // close session, after function termination

	log.Println("Tournament Assistant started")
	<-ctx.Done()
	return nil
}

// newMessage delegates to the testable newMessageHandler
// *discordgo.Session implements DiscordSession interface
func (b *Bot) newMessage(discord *discordgo.Session, message *discordgo.MessageCreate) {
	b.newMessageHandler(discord, message, discord.State.User.ID)
}

// newReaction delegates to the testable reactionAddHandler
func (b *Bot) newReaction(discord *discordgo.Session, reaction *discordgo.MessageReactionAdd) {
	b.reactionAddHandler(discord, reaction, discord.State.User.ID)
}
