/* bot.go
 * Contains the Bot and the helpers shared by its handlers. Requires a discord bot token and ApiPtr, both of which are
 * passed in from main.go
 */

package bot

import (
	"errors"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"tournament-assistant/api/api"
	"tournament-assistant/api/registry"

	"github.com/bwmarrin/discordgo"
	"github.com/go-andiamo/splitter"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"
)

const (
	// commandRate is how many commands a single user can send per second once their burst is used
	commandRate  rate.Limit = 1
	commandBurst            = 5
	// maxMessageLength is the longest message Discord accepts
	maxMessageLength = 2000
)

var mentionPattern = regexp.MustCompile(`^<@!?(\d+)>$`)

type Bot struct {
	BotToken string
	APIPtr   *api.API

	Metrics *Metrics

	limiter *UserRateLimiter
}

// NewBot creates a Bot. Metrics are registered with reg, which may be nil
func NewBot(botToken string, apiPtr *api.API, reg prometheus.Registerer) (*Bot, error) {
	if botToken == "" {
		return nil, fmt.Errorf("botToken is required but none was provided")
	}
	if apiPtr == nil {
		return nil, fmt.Errorf("apiPtr is required but none was provided")
	}

	return &Bot{
		BotToken: botToken,
		APIPtr:   apiPtr,
		Metrics:  NewMetrics(reg),
		limiter:  NewUserRateLimiter(commandRate, commandBurst),
	}, nil
}

// Helper function to check if a string starts with a given substring
// Preconditions: Recieves an input string and a substring
// Postconditions: Returns true if the substring is at the start of the string, else returns false
func startsWith(inputString string, substring string) bool {
	return strings.HasPrefix(inputString, substring)
}

// parseID converts a Discord snowflake to the ids used by the api
func parseID(id string) (uint64, error) {
	parsed, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid discord id '%s': %w", id, err)
	}
	return parsed, nil
}

func formatID(id uint64) string {
	return strconv.FormatUint(id, 10)
}

// commandArgs splits everything after the command into words and drops user mentions. Words in double quotes are
// kept together
func commandArgs(content string) []string {
	spaceSplitter, _ := splitter.NewSplitter(' ', splitter.DoubleQuotes, splitter.LeftRightDoubleDoubleQuotes)
	parts, err := spaceSplitter.Split(content)
	if err != nil {
		parts = strings.Fields(content)
	}
	if len(parts) <= 1 {
		return nil
	}

	var args []string
	for _, part := range parts[1:] {
		part = strings.TrimSpace(part)
		if part == "" || mentionPattern.MatchString(part) {
			continue
		}
		args = append(args, part)
	}
	return args
}

// commandText returns everything after the command with mentions removed, as one string
func commandText(content string) string {
	return strings.Trim(strings.Join(commandArgs(content), " "), "\"“”")
}

// commandName returns the first word of the message in lower case
func commandName(content string) string {
	fields := strings.Fields(content)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[0])
}

// rawCommandText returns everything after the first word of the message without any parsing
func rawCommandText(content string) string {
	content = strings.TrimSpace(content)
	end := strings.IndexFunc(content, unicode.IsSpace)
	if end < 0 {
		return ""
	}
	return strings.TrimSpace(content[end:])
}

// userMessage turns an error from the api into the text shown in Discord. Failures that are not the user's fault are
// logged
func userMessage(err error) string {
	switch {
	case errors.Is(err, registry.ErrUnableToGetAccess):
		log.Println(err)
		return "The tournament is busy, try again in a moment"
	case errors.Is(err, registry.ErrActionPanicked):
		log.Println(err)
		return "An unexpected error occurred"
	case errors.Is(err, registry.ErrNoCurrentTournament):
		return "There is no tournament running. A director can start one with `!setup name`"
	}
	return fmt.Sprintf("Error: %s", err)
}

// sendLong sends text to a channel, splitting it on line breaks so each message fits Discord's limit
func sendLong(session DiscordSession, channelID string, text string) {
	var chunk strings.Builder
	for _, line := range strings.SplitAfter(text, "\n") {
		if chunk.Len()+len(line) > maxMessageLength && chunk.Len() > 0 {
			session.ChannelMessageSend(channelID, chunk.String())
			chunk.Reset()
		}
		chunk.WriteString(line)
	}
	if strings.TrimSpace(chunk.String()) != "" {
		session.ChannelMessageSend(channelID, chunk.String())
	}
}

// sendStagePrompt posts the text for a stage the tournament moved to, if there is any
func sendStagePrompt(session DiscordSession, channelID string, update api.StageUpdate) {
	if !update.HasPrompt() {
		return
	}
	session.ChannelMessageSendEmbed(channelID, &discordgo.MessageEmbed{
		Title:       update.Title,
		Description: update.Body,
	})
}

// isAdmin reports whether the author of a message is a server administrator
func isAdmin(session DiscordSession, message *discordgo.MessageCreate) bool {
	permissions, err := session.UserChannelPermissions(message.Author.ID, message.ChannelID)
	if err != nil {
		log.Printf("unable to get permissions for user %s: %v", message.Author.ID, err)
		return false
	}
	return permissions&discordgo.PermissionAdministrator != 0
}
