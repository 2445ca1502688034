/* handlers.go
 * Contains testable handler methods that accept DiscordSession interface
 */

package bot

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"tournament-assistant/api/logic"
	"tournament-assistant/api/shared"

	"github.com/bwmarrin/discordgo"
)

// historyLimit is how many archived tournaments !history shows
const historyLimit = 5

// command is the data every handler needs about the message it handles
type command struct {
	session   DiscordSession
	message   *discordgo.MessageCreate
	guildID   uint64
	channelID string
}

func (c command) reply(content string) {
	c.session.ChannelMessageSend(c.channelID, content)
}

func (c command) replyError(err error) {
	c.reply(userMessage(err))
}

// helpMessageHandler handles the !help command
func (b *Bot) helpMessageHandler(c command) {
	var res strings.Builder
	res.WriteString("Tournament Assistant\n")
	res.WriteString("`!addtd name @user`: makes the user a director of the tournament called name (administrators only)\n")
	res.WriteString("`!removetd name @user`: removes a director from a tournament (administrators only)\n")
	res.WriteString("`!cancel name`: deletes a tournament that has not been set up yet\n")
	res.WriteString("`!setup name`: starts setting up the tournament called name. Only one tournament can run at a time\n")
	res.WriteString("`!addreaders @reader ...` and `!removereader @reader`: manage the readers, then `!done`\n")
	res.WriteString("`!rounds N`: sets how many round robins are played\n")
	res.WriteString("`!addteams A, B; C, D`: adds the teams. Commas separate teams and semicolons separate brackets\n")
	res.WriteString("`!addplayer @user team` and `!removeplayer @user`: manage players. Players can also react to the join messages\n")
	res.WriteString("`!back`: undoes the current setup step\n")
	res.WriteString("`!start`: schedules the games and creates the rooms\n")
	res.WriteString("`!rebracket` then `!brackets A, B; C, D`: puts the teams into new brackets and schedules them\n")
	res.WriteString("`!finals @reader A, B`: schedules the final\n")
	res.WriteString("`!end`: ends the tournament and removes its rooms\n")
	res.WriteString("`!current`, `!schedule` and `!history`: show the current tournament, its games and past tournaments\n")
	res.WriteString("`!schedule team`: shows the games of one team\n")
	c.reply(res.String())
}

// requireManager replies and returns false unless the author may direct the current tournament
func (b *Bot) requireManager(ctx context.Context, c command) bool {
	userID, err := parseID(c.message.Author.ID)
	if err != nil {
		c.replyError(err)
		return false
	}
	allowed, err := b.APIPtr.CanManage(ctx, c.guildID, userID, isAdmin(c.session, c.message))
	if err != nil {
		c.replyError(err)
		return false
	}
	if !allowed {
		c.reply("Only a director of the tournament or a server administrator can do that")
	}
	return allowed
}

// firstMention returns the id of the first user mentioned in the message
func firstMention(c command) (*discordgo.User, uint64, bool) {
	if len(c.message.Mentions) == 0 {
		c.reply("Mention the user, for example `@User`")
		return nil, 0, false
	}
	user := c.message.Mentions[0]
	id, err := parseID(user.ID)
	if err != nil {
		c.replyError(err)
		return nil, 0, false
	}
	return user, id, true
}

// directorHandler handles !addtd and !removetd
func (b *Bot) directorHandler(ctx context.Context, c command, add bool) {
	if !isAdmin(c.session, c.message) {
		c.reply("Only a server administrator can manage directors")
		return
	}
	name := commandText(c.message.Content)
	if name == "" {
		c.reply("Give the tournament name, for example `!addtd Spring Open @User`")
		return
	}
	user, userID, ok := firstMention(c)
	if !ok {
		return
	}

	if add {
		if err := b.APIPtr.AddDirector(ctx, c.guildID, name, userID); err != nil {
			c.replyError(err)
			return
		}
		c.reply(fmt.Sprintf("%s is now a director of %s", user.Username, name))
		return
	}
	if err := b.APIPtr.RemoveDirector(ctx, c.guildID, name, userID); err != nil {
		c.replyError(err)
		return
	}
	c.reply(fmt.Sprintf("%s is no longer a director of %s", user.Username, name))
}

// cancelHandler handles !cancel, which deletes a pending tournament
func (b *Bot) cancelHandler(c command) {
	name := commandText(c.message.Content)
	if name == "" {
		c.reply("Give the tournament name, for example `!cancel Spring Open`")
		return
	}
	userID, err := parseID(c.message.Author.ID)
	if err != nil {
		c.replyError(err)
		return
	}
	if err := b.APIPtr.CancelTournament(c.guildID, name, userID, isAdmin(c.session, c.message)); err != nil {
		c.replyError(err)
		return
	}
	c.reply(fmt.Sprintf("%s has been cancelled", name))
}

// setupHandler handles !setup
func (b *Bot) setupHandler(ctx context.Context, c command) {
	name := commandText(c.message.Content)
	userID, err := parseID(c.message.Author.ID)
	if err != nil {
		c.replyError(err)
		return
	}
	update, err := b.APIPtr.Setup(ctx, c.guildID, name, userID, isAdmin(c.session, c.message))
	if err != nil {
		c.replyError(err)
		return
	}
	c.reply(fmt.Sprintf("Setting up %s", name))
	sendStagePrompt(c.session, c.channelID, update)
}

// addReadersHandler handles !addreaders
func (b *Bot) addReadersHandler(ctx context.Context, c command) {
	if !b.requireManager(ctx, c) {
		return
	}
	readers := make([]shared.Reader, 0, len(c.message.Mentions))
	for _, user := range c.message.Mentions {
		id, err := parseID(user.ID)
		if err != nil {
			c.replyError(err)
			return
		}
		readers = append(readers, shared.Reader{ID: id, Name: user.Username})
	}
	if len(readers) == 0 {
		c.reply("Mention the readers to add, for example `!addreaders @Reader_1 @Reader_2`")
		return
	}

	added, err := b.APIPtr.AddReaders(ctx, c.guildID, readers)
	if err != nil {
		c.replyError(err)
		return
	}
	names := make([]string, 0, len(added))
	for _, reader := range added {
		names = append(names, reader.Name)
	}
	c.reply(fmt.Sprintf("Added readers: %s", strings.Join(names, ", ")))
}

// removeReaderHandler handles !removereader
func (b *Bot) removeReaderHandler(ctx context.Context, c command) {
	if !b.requireManager(ctx, c) {
		return
	}
	user, userID, ok := firstMention(c)
	if !ok {
		return
	}
	if err := b.APIPtr.RemoveReader(ctx, c.guildID, userID); err != nil {
		c.replyError(err)
		return
	}
	c.reply(fmt.Sprintf("Removed reader %s", user.Username))
}

// doneHandler handles !done, which finishes adding readers
func (b *Bot) doneHandler(ctx context.Context, c command) {
	if !b.requireManager(ctx, c) {
		return
	}
	update, err := b.APIPtr.FinishReaders(ctx, c.guildID)
	if err != nil {
		c.replyError(err)
		return
	}
	sendStagePrompt(c.session, c.channelID, update)
}

// roundsHandler handles !rounds
func (b *Bot) roundsHandler(ctx context.Context, c command) {
	if !b.requireManager(ctx, c) {
		return
	}
	count, err := strconv.Atoi(commandText(c.message.Content))
	if err != nil {
		c.reply("The number of round robins must be a whole number, for example `!rounds 2`")
		return
	}
	update, err := b.APIPtr.SetRoundRobins(ctx, c.guildID, count)
	if err != nil {
		c.replyError(err)
		return
	}
	sendStagePrompt(c.session, c.channelID, update)
}

// addTeamsHandler handles !addteams and posts the join prompts
func (b *Bot) addTeamsHandler(ctx context.Context, c command) {
	if !b.requireManager(ctx, c) {
		return
	}
	brackets, err := logic.ParseBrackets(rawCommandText(c.message.Content))
	if err != nil {
		c.replyError(err)
		return
	}
	teams, update, err := b.APIPtr.AddTeams(ctx, c.guildID, brackets)
	if err != nil {
		c.replyError(err)
		return
	}
	c.reply(fmt.Sprintf("Added %d teams in %d brackets", len(teams), len(brackets)))
	sendStagePrompt(c.session, c.channelID, update)
	b.postJoinPrompts(ctx, c.session, c.guildID, c.channelID, teams)
}

// addPlayerHandler handles !addplayer
func (b *Bot) addPlayerHandler(ctx context.Context, c command) {
	if !b.requireManager(ctx, c) {
		return
	}
	user, userID, ok := firstMention(c)
	if !ok {
		return
	}
	team, err := b.APIPtr.AddPlayer(ctx, c.guildID, userID, commandText(c.message.Content))
	if err != nil {
		c.replyError(err)
		return
	}
	c.reply(fmt.Sprintf("%s joined %s", user.Username, team.Name))
}

// removePlayerHandler handles !removeplayer. Without a mention the author leaves their own team
func (b *Bot) removePlayerHandler(ctx context.Context, c command) {
	user := c.message.Author
	if len(c.message.Mentions) > 0 {
		if !b.requireManager(ctx, c) {
			return
		}
		user = c.message.Mentions[0]
	}
	userID, err := parseID(user.ID)
	if err != nil {
		c.replyError(err)
		return
	}
	team, err := b.APIPtr.RemovePlayer(ctx, c.guildID, userID)
	if err != nil {
		c.replyError(err)
		return
	}
	c.reply(fmt.Sprintf("%s left %s", user.Username, team.Name))
}

// backHandler handles !back
func (b *Bot) backHandler(ctx context.Context, c command) {
	if !b.requireManager(ctx, c) {
		return
	}
	update, err := b.APIPtr.GoBack(ctx, c.guildID)
	if err != nil {
		c.replyError(err)
		return
	}
	sendStagePrompt(c.session, c.channelID, update)
}

// startHandler handles !start. The schedule is generated under the lock, then the rooms are created without it
func (b *Bot) startHandler(ctx context.Context, c command) {
	if !b.requireManager(ctx, c) {
		return
	}
	result, err := b.APIPtr.Start(ctx, c.guildID)
	if err != nil {
		c.replyError(err)
		return
	}
	sendStagePrompt(c.session, c.channelID, result.Update)

	name, err := b.APIPtr.CurrentTournamentName(ctx, c.guildID)
	if err != nil {
		c.replyError(err)
		return
	}
	channelIDs, roles, err := provision(c.session, c.message.GuildID, name, result)
	if err != nil {
		log.Printf("[guild %d] provisioning failed: %v", c.guildID, err)
		b.Metrics.ProvisioningFailure.Inc()
		c.reply(fmt.Sprintf("Unable to create the rooms: %s. End the tournament with `!end` and try again", err))
		return
	}

	update, err := b.APIPtr.CompleteSetup(ctx, c.guildID, result.Schedule, channelIDs, roles)
	if err != nil {
		if teardownErr := teardown(c.session, c.message.GuildID, channelIDs, roles); teardownErr != nil {
			log.Printf("[guild %d] %v", c.guildID, teardownErr)
		}
		c.replyError(err)
		return
	}
	b.Metrics.TournamentsStarted.Inc()
	sendStagePrompt(c.session, c.channelID, update)
	sendLong(c.session, c.channelID, formatRounds(result.Schedule.Rounds, 1))
}

// rebracketHandler handles !rebracket
func (b *Bot) rebracketHandler(ctx context.Context, c command) {
	if !b.requireManager(ctx, c) {
		return
	}
	update, err := b.APIPtr.BeginRebracket(ctx, c.guildID)
	if err != nil {
		c.replyError(err)
		return
	}
	sendStagePrompt(c.session, c.channelID, update)
}

// bracketsHandler handles !brackets, which gives the new brackets while rebracketing
func (b *Bot) bracketsHandler(ctx context.Context, c command) {
	if !b.requireManager(ctx, c) {
		return
	}
	brackets, err := logic.ParseBrackets(rawCommandText(c.message.Content))
	if err != nil {
		c.replyError(err)
		return
	}
	result, err := b.APIPtr.Rebracket(ctx, c.guildID, brackets)
	if err != nil {
		c.replyError(err)
		return
	}
	sendStagePrompt(c.session, c.channelID, result.Update)
	sendLong(c.session, c.channelID, formatRounds(result.Rounds, result.FirstRound))
}

// finalsHandler handles !finals
func (b *Bot) finalsHandler(ctx context.Context, c command) {
	if !b.requireManager(ctx, c) {
		return
	}
	_, readerID, ok := firstMention(c)
	if !ok {
		return
	}
	first, second, found := strings.Cut(commandText(c.message.Content), ",")
	if !found {
		c.reply("Give the two teams separated by a comma, for example `!finals @Reader Team A, Team B`")
		return
	}
	final, update, err := b.APIPtr.Finals(ctx, c.guildID, readerID, first, second)
	if err != nil {
		c.replyError(err)
		return
	}
	sendStagePrompt(c.session, c.channelID, update)
	c.reply(fmt.Sprintf("Final: %s vs %s (%s)", final.Teams[0].Name, final.Teams[1].Name, final.Reader.Name))
}

// endHandler handles !end
func (b *Bot) endHandler(ctx context.Context, c command) {
	if !b.requireManager(ctx, c) {
		return
	}
	result, err := b.APIPtr.End(ctx, c.guildID)
	if err != nil {
		c.replyError(err)
		return
	}
	b.Metrics.TournamentsEnded.Inc()
	if err := teardown(c.session, c.message.GuildID, result.ChannelIDs, result.Roles); err != nil {
		log.Printf("[guild %d] teardown of '%s' failed: %v", c.guildID, result.Name, err)
		c.reply("Some of the tournament's channels or roles could not be removed")
	}
	c.reply(fmt.Sprintf("%s has ended", result.Name))
}

// currentHandler handles !current
func (b *Bot) currentHandler(ctx context.Context, c command) {
	summary, err := b.APIPtr.Summary(ctx, c.guildID)
	if err != nil {
		c.replyError(err)
		return
	}
	c.session.ChannelMessageSendEmbed(c.channelID, summaryEmbed(summary))
}

// scheduleHandler handles !schedule, optionally for a single team
func (b *Bot) scheduleHandler(ctx context.Context, c command) {
	if teamName := commandText(c.message.Content); teamName != "" {
		games, err := b.APIPtr.TeamSchedule(ctx, c.guildID, teamName)
		if err != nil {
			c.replyError(err)
			return
		}
		sendLong(c.session, c.channelID, formatTeamSchedule(games))
		return
	}

	schedule, err := b.APIPtr.Schedule(ctx, c.guildID)
	if err != nil {
		c.replyError(err)
		return
	}
	sendLong(c.session, c.channelID, formatRounds(schedule.Rounds, 1))
}

// historyHandler handles !history
func (b *Bot) historyHandler(ctx context.Context, c command) {
	records, err := b.APIPtr.PastTournaments(ctx, c.guildID, historyLimit)
	if err != nil {
		c.replyError(err)
		return
	}
	c.reply(formatHistory(records))
}

// newMessageHandler routes messages to appropriate handlers with a DiscordSession interface
// botUserID is the bot's user ID to prevent self-responses
func (b *Bot) newMessageHandler(session DiscordSession, message *discordgo.MessageCreate, botUserID string) {
	// Prevent bot from responding to its own messages and to other bots
	if message.Author == nil || message.Author.ID == botUserID || message.Author.Bot {
		return
	}
	if !startsWith(message.Content, "!") || message.GuildID == "" {
		return
	}
	guildID, err := parseID(message.GuildID)
	if err != nil {
		return
	}
	if !b.limiter.Allow(message.Author.ID) {
		b.Metrics.RateLimited.Inc()
		return
	}

	ctx := context.Background()
	c := command{session: session, message: message, guildID: guildID, channelID: message.ChannelID}

	name := commandName(message.Content)
	handled := true

	// Route to appropriate handler
	switch name {
	case "!help":
		b.helpMessageHandler(c)
	case "!addtd":
		b.directorHandler(ctx, c, true)
	case "!removetd":
		b.directorHandler(ctx, c, false)
	case "!cancel":
		b.cancelHandler(c)
	case "!setup":
		b.setupHandler(ctx, c)
	case "!addreaders":
		b.addReadersHandler(ctx, c)
	case "!removereader":
		b.removeReaderHandler(ctx, c)
	case "!done":
		b.doneHandler(ctx, c)
	case "!rounds":
		b.roundsHandler(ctx, c)
	case "!addteams":
		b.addTeamsHandler(ctx, c)
	case "!addplayer":
		b.addPlayerHandler(ctx, c)
	case "!removeplayer":
		b.removePlayerHandler(ctx, c)
	case "!back":
		b.backHandler(ctx, c)
	case "!start":
		b.startHandler(ctx, c)
	case "!rebracket":
		b.rebracketHandler(ctx, c)
	case "!brackets":
		b.bracketsHandler(ctx, c)
	case "!finals":
		b.finalsHandler(ctx, c)
	case "!end":
		b.endHandler(ctx, c)
	case "!current":
		b.currentHandler(ctx, c)
	case "!schedule":
		b.scheduleHandler(ctx, c)
	case "!history":
		b.historyHandler(ctx, c)
	default:
		handled = false
	}

	if handled {
		b.Metrics.Commands.WithLabelValues(name).Inc()
	}
}
