/* format.go
 * Contains the formatting of schedules, summaries and archived tournaments for Discord
 */

package bot

import (
	"fmt"
	"strings"

	"tournament-assistant/api/api"
	"tournament-assistant/api/shared"
	"tournament-assistant/api/store"

	"github.com/bwmarrin/discordgo"
)

// formatRounds lists every game of the rounds. firstRound is the number shown for the first round
func formatRounds(rounds []shared.Round, firstRound int) string {
	var res strings.Builder
	for i, round := range rounds {
		res.WriteString(fmt.Sprintf("**Round %d**\n", firstRound+i))
		for room, game := range round.Games {
			res.WriteString(fmt.Sprintf("Room %d: %s vs %s (%s)\n", room+1, game.Teams[0].Name, game.Teams[1].Name, game.Reader.Name))
		}
	}
	return res.String()
}

// formatTeamSchedule lists one team's games, naming the opponent and reader of each
func formatTeamSchedule(schedule api.TeamSchedule) string {
	if len(schedule.Games) == 0 {
		return fmt.Sprintf("%s has no games scheduled", schedule.Team.Name)
	}
	var res strings.Builder
	res.WriteString(fmt.Sprintf("**%s**\n", schedule.Team.Name))
	for i, game := range schedule.Games {
		opponent := game.Teams[0]
		if opponent.Equals(schedule.Team) {
			opponent = game.Teams[1]
		}
		res.WriteString(fmt.Sprintf("Round %d: vs %s (%s)\n", schedule.Rounds[i], opponent.Name, game.Reader.Name))
	}
	return res.String()
}

func summaryEmbed(summary api.Summary) *discordgo.MessageEmbed {
	readers := make([]string, 0, len(summary.Readers))
	for _, reader := range summary.Readers {
		readers = append(readers, reader.Name)
	}

	var teams strings.Builder
	for _, team := range summary.Teams {
		teams.WriteString(fmt.Sprintf("%s (bracket %d, %d players)\n", team.Name, team.Bracket+1, len(team.Players)))
	}

	fields := []*discordgo.MessageEmbedField{
		{Name: "Stage", Value: summary.Stage, Inline: true},
		{Name: "Round robins", Value: fmt.Sprintf("%d", summary.RoundRobins), Inline: true},
		{Name: "Rounds scheduled", Value: fmt.Sprintf("%d", summary.Rounds), Inline: true},
		{Name: "Readers", Value: orNone(strings.Join(readers, ", "))},
		{Name: "Teams", Value: orNone(teams.String())},
	}
	return &discordgo.MessageEmbed{Title: summary.Name, Fields: fields}
}

func formatHistory(records []store.TournamentRecord) string {
	if len(records) == 0 {
		return "No tournaments have been archived"
	}
	var res strings.Builder
	res.WriteString("Past tournaments:\n")
	for _, record := range records {
		res.WriteString(fmt.Sprintf("- %s, ended %s with %d teams and %d rounds\n",
			record.Name, record.EndedAt.Format("2006-01-02"), len(record.Teams), len(record.Rounds)))
	}
	return res.String()
}

func orNone(value string) string {
	if strings.TrimSpace(value) == "" {
		return "None"
	}
	return value
}
