package server

// RecommendRequest asks for the engine's move in a position given either as
// a FEN (default: the initial position) or a PGN, plus optional UCI moves.
type RecommendRequest struct {
	FEN   string   `json:"fen"`
	PGN   string   `json:"pgn"`
	Moves []string `json:"moves"`
	Depth *int     `json:"depth"`
}

type RecommendResponse struct {
	Move       string `json:"move,omitempty"`
	Evaluation int    `json:"evaluation"`
	Depth      int    `json:"depth"`
	Nodes      uint64 `json:"nodes"`
	Cutoffs    uint64 `json:"cutoffs"`
	FEN        string `json:"fen"`
	Status     string `json:"status"`
	Result     string `json:"result"`
}

// NewGameRequest starts a session. EngineColor is "white" or "black".
type NewGameRequest struct {
	FEN         string `json:"fen"`
	EngineColor string `json:"engine_color"`
	Depth       *int   `json:"depth"`
}

type PlayRequest struct {
	Move string `json:"move"`
}

type GameResponse struct {
	GameID      string   `json:"game_id"`
	FEN         string   `json:"fen"`
	EngineColor string   `json:"engine_color"`
	Depth       int      `json:"depth"`
	Moves       []string `json:"moves"`
	LegalMoves  []string `json:"legal_moves"`
	EngineMove  string   `json:"engine_move,omitempty"`
	Evaluation  *int     `json:"evaluation,omitempty"`
	Status      string   `json:"status"`
	Result      string   `json:"result"`
}
