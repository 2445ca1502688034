/* stage.go
 * Contains the stages a tournament moves through and the text shown to directors when a stage is entered
 */

package tournament

import "fmt"

// Stage is a step in the lifecycle of a tournament. Stages are ordered
type Stage int

const (
	Created Stage = iota
	AddReaders
	SetRoundRobins
	AddTeams
	AddPlayers
	BotSetup
	RunningTournament
	Rebracketing
	Finals
	Complete
)

var stageNames = map[Stage]string{
	Created:           "Created",
	AddReaders:        "AddReaders",
	SetRoundRobins:    "SetRoundRobins",
	AddTeams:          "AddTeams",
	AddPlayers:        "AddPlayers",
	BotSetup:          "BotSetup",
	RunningTournament: "RunningTournament",
	Rebracketing:      "Rebracketing",
	Finals:            "Finals",
	Complete:          "Complete",
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Stage(%d)", int(s))
}

// stagePrompt is the title and body shown to directors when a stage is entered
type stagePrompt struct {
	title string
	body  string
}

var stagePrompts = map[Stage]stagePrompt{
	AddReaders: {
		title: "Add Readers",
		body:  "List the mentions of all of the readers. For example, '!addreaders @Reader_1 @Reader_2 @Reader_3'. Use '!done' when every reader has been added.",
	},
	SetRoundRobins: {
		title: "Set the number of round robins",
		body:  "Specify the number of round-robin rounds as an integer (from 1 to 10) with '!rounds <number>'.",
	},
	AddTeams: {
		title: "Add Teams",
		body: "List the names of the teams, separated by commas. Separate brackets with a semicolon. For example, " +
			"'!addteams Team A, Team B; Team C, Team D'. Team names must be unique, regardless of case.",
	},
	AddPlayers: {
		title: "Add Players",
		body: "Players can join a team by reacting to the message with the team's symbol, or a director can add them with " +
			"'!addplayer @Player Team Name'. Once every player is on a team, start the tournament with '!start'.",
	},
	BotSetup: {
		title: "Setting up the tournament",
		body:  "Creating the roles and channels for the tournament. This may take a minute.",
	},
	RunningTournament: {
		title: "Tournament Started",
		body:  "The tournament has started. Use '!schedule' to see the games, '!rebracket' to change brackets and '!finals' to schedule the final.",
	},
	Rebracketing: {
		title: "Rebracket",
		body: "List the teams in each new bracket, separated by commas, with brackets separated by semicolons. For example, " +
			"'!brackets Team A, Team C; Team B, Team D'.",
	},
	Finals: {
		title: "Finals",
		body:  "The final has been scheduled. Use '!end' once it is over.",
	},
}
