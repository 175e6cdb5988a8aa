package main

// Cookie configuration constants
const (
	DeviceCookieName = "device_id"
)

// Route constants
const (
	RouteHome      = "/"
	RouteKey       = "/key"
	RouteGuess     = "/guess"
	RouteGameState = "/game-state"
	RouteGameJSON  = "/api/game"
	RouteStats     = "/stats"
	RouteShare     = "/share"
	RouteHealthz   = "/healthz"
)

// User-facing message constants
const (
	ErrorGameOver        = "Game is over."
	ErrorNoPuzzle        = "Today's puzzle is not available yet."
	ErrorGuessTooLong    = "Your guess is already full."
	ErrorIncompleteGuess = "Not enough letters."
	ErrorNotInWordList   = "Not in word list."
	ErrorUnknownKey      = "Unknown key."
	ErrorNotAccepted     = "Guess not accepted."
	ErrorStorage         = "Your game could not be saved."
	ErrorLoadingWords    = "Loading Words..."
)

// htmx event names sent in HX-Trigger
const (
	TriggerNotAccepted = "not_accepted"
	TriggerRateLimited = "rate-limit-exceeded"
)
