/* errors.go
 * Contains the errors returned by the API when an action is not allowed. These are expected outcomes of normal use and
 * their messages are shown to the user as they are
 */

package api

import (
	"errors"

	"tournament-assistant/api/logic"
)

var (
	ErrPermissionDenied      = errors.New("only a director of the tournament or a server administrator can do that")
	ErrInvalidTournamentName = errors.New("a tournament name is required")
	ErrAlreadyDirector       = errors.New("user is already a director of the tournament")
	ErrNotDirector           = errors.New("user is not a director of the tournament")
	ErrAlreadyReader         = errors.New("user is already a reader")
	ErrNotAReader            = errors.New("user is not a reader")
	ErrPlayerOnTeam          = errors.New("player is already on a team")
	ErrNotAPlayer            = errors.New("user is not on a team")
	ErrTeamNotFound          = logic.ErrTeamNotFound
	ErrAmbiguousTeam         = logic.ErrAmbiguousTeamName
	ErrSameTeam              = errors.New("a team cannot play itself")
	ErrNotJoinMessage        = errors.New("message is not a join team message")
	ErrWrongStage            = errors.New("the tournament is not in the right stage for this action")
	ErrInvalidRoundRobins    = errors.New("the number of round robins must be between 1 and 10")
	ErrArchiveDisabled       = errors.New("the tournament archive is not enabled")
)
