/* errors.go
 * Contains the errors returned by the registry
 */

package registry

import "errors"

var (
	ErrUnableToGetAccess        = errors.New("unable to get access to the current tournament")
	ErrNoCurrentTournament      = errors.New("no current tournament is running")
	ErrTournamentNotFound       = errors.New("tournament cannot be found")
	ErrTournamentAlreadyRunning = errors.New("a tournament is already running")
	ErrActionPanicked           = errors.New("tournament action failed unexpectedly")
)
