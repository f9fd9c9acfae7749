package domain

type PlayerID int

const (
	Empty   PlayerID = 0
	Player1 PlayerID = 1
	Player2 PlayerID = 2
)

const (
	DefaultRows    = 6
	DefaultColumns = 7
	ToWin          = 4
)

// Player is one of the two seats. Color is a display token for the renderer
// and is never looked at by the rules.
type Player struct {
	ID    PlayerID `json:"id"`
	Name  string   `json:"name"`
	Color string   `json:"color"`
}

// to represent the game status
type GameStatus string

const (
	StatusActive GameStatus = "active"
	StatusWon    GameStatus = "won"
	StatusDraw   GameStatus = "draw"
)

type Position struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

// Outcome is the state of a game after a placement. Winner is Empty unless
// Status is StatusWon.
type Outcome struct {
	Status GameStatus `json:"status"`
	Winner PlayerID   `json:"winner"`
}

func (o Outcome) IsTerminal() bool {
	return o.Status == StatusWon || o.Status == StatusDraw
}

// PlacementResult is everything a renderer needs to draw a drop.
type PlacementResult struct {
	Row     int      `json:"row"`
	Column  int      `json:"column"`
	Player  PlayerID `json:"player"`
	Outcome Outcome  `json:"outcome"`
}

// basic error that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrInvalidColumn     Error = "invalid column"
	ErrColumnFull        Error = "column is full"
	ErrGameAlreadyOver   Error = "game already over"
	ErrIllegalPlacement  Error = "illegal placement"
	ErrInvalidDimensions Error = "board must be at least 4x4"
	ErrInvalidPlayers    Error = "players must be player 1 and player 2"
	ErrOutOfBounds       Error = "cell out of bounds"
	ErrCorruptSnapshot   Error = "corrupt game snapshot"
)
