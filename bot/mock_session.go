/* mock_session.go
 * Contains mock implementation of DiscordSession for testing
 */

package bot

import (
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"
)

// MockDiscordSession implements DiscordSession for testing purposes
type MockDiscordSession struct {
	mu     sync.Mutex
	nextID uint64

	// SentMessages stores all messages sent during tests
	SentMessages []MockMessage
	// Reactions stores every reaction the bot added, keyed by message id
	Reactions map[string][]string
	// Roles and Channels hold what the bot created and has not deleted, keyed by id
	Roles    map[string]string
	Channels map[string]string
	// MemberRoles holds the roles given to each user
	MemberRoles map[string][]string

	// Permissions is returned by UserChannelPermissions for every user
	Permissions int64
	// ErrorToReturn allows tests to simulate errors
	ErrorToReturn error
	// RoleCreateError and ChannelCreateError fail provisioning without failing messages
	RoleCreateError    error
	ChannelCreateError error
}

// MockMessage represents a message sent to a channel
type MockMessage struct {
	ID        string
	ChannelID string
	Content   string
	Embed     *discordgo.MessageEmbed
}

// NewMockDiscordSession creates a new MockDiscordSession for testing
func NewMockDiscordSession() *MockDiscordSession {
	return &MockDiscordSession{
		nextID:       1000,
		SentMessages: make([]MockMessage, 0),
		Reactions:    make(map[string][]string),
		Roles:        make(map[string]string),
		Channels:     make(map[string]string),
		MemberRoles:  make(map[string][]string),
	}
}

func (m *MockDiscordSession) newID() string {
	m.nextID++
	return fmt.Sprintf("%d", m.nextID)
}

// ChannelMessageSend implements DiscordSession.ChannelMessageSend
func (m *MockDiscordSession) ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ErrorToReturn != nil {
		return nil, m.ErrorToReturn
	}

	message := MockMessage{ID: m.newID(), ChannelID: channelID, Content: content}
	m.SentMessages = append(m.SentMessages, message)
	return &discordgo.Message{ID: message.ID, ChannelID: channelID, Content: content}, nil
}

// ChannelMessageSendEmbed implements DiscordSession.ChannelMessageSendEmbed
func (m *MockDiscordSession) ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ErrorToReturn != nil {
		return nil, m.ErrorToReturn
	}

	message := MockMessage{ID: m.newID(), ChannelID: channelID, Embed: embed}
	m.SentMessages = append(m.SentMessages, message)
	return &discordgo.Message{ID: message.ID, ChannelID: channelID, Embeds: []*discordgo.MessageEmbed{embed}}, nil
}

// MessageReactionAdd implements DiscordSession.MessageReactionAdd
func (m *MockDiscordSession) MessageReactionAdd(channelID, messageID, emojiID string, options ...discordgo.RequestOption) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ErrorToReturn != nil {
		return m.ErrorToReturn
	}
	m.Reactions[messageID] = append(m.Reactions[messageID], emojiID)
	return nil
}

// UserChannelPermissions implements DiscordSession.UserChannelPermissions
func (m *MockDiscordSession) UserChannelPermissions(userID, channelID string, fetchOptions ...discordgo.RequestOption) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Permissions, m.ErrorToReturn
}

// GuildRoleCreate implements DiscordSession.GuildRoleCreate
func (m *MockDiscordSession) GuildRoleCreate(guildID string, data *discordgo.RoleParams, options ...discordgo.RequestOption) (*discordgo.Role, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.RoleCreateError != nil {
		return nil, m.RoleCreateError
	}
	role := &discordgo.Role{ID: m.newID(), Name: data.Name}
	m.Roles[role.ID] = role.Name
	return role, nil
}

// GuildRoleDelete implements DiscordSession.GuildRoleDelete
func (m *MockDiscordSession) GuildRoleDelete(guildID, roleID string, options ...discordgo.RequestOption) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Roles[roleID]; !ok {
		return fmt.Errorf("unknown role %s", roleID)
	}
	delete(m.Roles, roleID)
	return nil
}

// GuildMemberRoleAdd implements DiscordSession.GuildMemberRoleAdd
func (m *MockDiscordSession) GuildMemberRoleAdd(guildID, userID, roleID string, options ...discordgo.RequestOption) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Roles[roleID]; !ok {
		return fmt.Errorf("unknown role %s", roleID)
	}
	m.MemberRoles[userID] = append(m.MemberRoles[userID], roleID)
	return nil
}

// GuildChannelCreateComplex implements DiscordSession.GuildChannelCreateComplex
func (m *MockDiscordSession) GuildChannelCreateComplex(guildID string, data discordgo.GuildChannelCreateData, options ...discordgo.RequestOption) (*discordgo.Channel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ChannelCreateError != nil {
		return nil, m.ChannelCreateError
	}
	channel := &discordgo.Channel{ID: m.newID(), GuildID: guildID, Name: data.Name, Type: data.Type}
	m.Channels[channel.ID] = channel.Name
	return channel, nil
}

// ChannelDelete implements DiscordSession.ChannelDelete
func (m *MockDiscordSession) ChannelDelete(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	name, ok := m.Channels[channelID]
	if !ok {
		return nil, fmt.Errorf("unknown channel %s", channelID)
	}
	delete(m.Channels, channelID)
	return &discordgo.Channel{ID: channelID, Name: name}, nil
}

// GetLastMessage returns the last message sent, or empty MockMessage if none
func (m *MockDiscordSession) GetLastMessage() MockMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.SentMessages) == 0 {
		return MockMessage{}
	}
	return m.SentMessages[len(m.SentMessages)-1]
}

// ClearMessages clears all stored messages
func (m *MockDiscordSession) ClearMessages() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SentMessages = nil
}
