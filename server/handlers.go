package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kz4killua/chess-ai/engine"
	"github.com/kz4killua/chess-ai/position"
)

var errDepthOutOfRange = errors.New("depth out of range")

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Recommend searches a position without keeping any state.
func (s *Server) Recommend(c *gin.Context) {
	var req RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	depth, err := s.depth(req.Depth)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	board, err := boardFromRequest(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	eng := s.newEngine()
	move, score, err := eng.RecommendMove(board, depth)
	if err != nil {
		s.logger.Error().Err(err).Str("fen", board.FEN()).Msg("recommend-failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
		return
	}

	stats := eng.Stats()
	resp := RecommendResponse{
		Evaluation: score,
		Depth:      depth,
		Nodes:      stats.Nodes,
		Cutoffs:    stats.Cutoffs,
		FEN:        board.FEN(),
		Status:     board.Status(true).String(),
		Result:     board.Result(true).String(),
	}
	if move != engine.NoMove {
		resp.Move = move.String()
	}
	c.JSON(http.StatusOK, resp)
}

// NewGame starts a session; the engine moves at once when it has the move.
func (s *Server) NewGame(c *gin.Context) {
	var req NewGameRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
	}

	depth, err := s.depth(req.Depth)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	engineWhite := s.cfg.EngineWhite
	switch strings.ToLower(req.EngineColor) {
	case "":
	case "white":
		engineWhite = true
	case "black":
		engineWhite = false
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "engine_color must be white or black"})
		return
	}

	board := position.New()
	if req.FEN != "" {
		if board, err = position.FromFEN(req.FEN); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	// The session is only published once the engine's opening reply, if
	// any, succeeded.
	g := newGame(board, engineWhite, depth)
	resp, err := s.engineReply(g)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
		return
	}
	s.games.Add(g)
	s.logger.Info().Str("game", g.ID).Bool("engine_white", engineWhite).Int("depth", depth).Msg("game-created")
	c.JSON(http.StatusCreated, resp)
}

func (s *Server) GetGame(c *gin.Context) {
	g, err := s.games.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	c.JSON(http.StatusOK, gameResponse(g))
}

// PlayMove applies the human's move and lets the engine answer.
func (s *Server) PlayMove(c *gin.Context) {
	g, err := s.games.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	var req PlayRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Move == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.Board.IsGameOver(true) {
		c.JSON(http.StatusConflict, gin.H{"error": "game is over", "result": g.Board.Result(true).String()})
		return
	}
	if g.EngineToMove() {
		c.JSON(http.StatusConflict, gin.H{"error": "not your turn"})
		return
	}

	mv, err := g.Board.ParseMove(req.Move)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	g.Board.Apply(mv)
	g.Moves = append(g.Moves, mv.String())
	g.UpdatedAt = time.Now()

	resp, err := s.engineReply(g)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// engineReply plays the engine's move if the game is running and it is the
// engine's turn. g.mu must be held once g is shared.
func (s *Server) engineReply(g *Game) (GameResponse, error) {
	if g.Board.IsGameOver(true) || !g.EngineToMove() {
		return gameResponse(g), nil
	}

	move, score, err := s.newEngine().RecommendMove(g.Board, g.Depth)
	if err != nil {
		s.logger.Error().Err(err).Str("game", g.ID).Str("fen", g.Board.FEN()).Msg("engine-reply-failed")
		return GameResponse{}, err
	}
	if move == engine.NoMove {
		return gameResponse(g), nil
	}

	g.Board.Apply(move)
	g.Moves = append(g.Moves, move.String())
	g.UpdatedAt = time.Now()

	resp := gameResponse(g)
	resp.EngineMove = move.String()
	resp.Evaluation = &score
	return resp, nil
}

func (s *Server) newEngine() *engine.Engine {
	opts := append([]engine.Option{engine.WithLogger(s.logger)}, s.engineOpts...)
	return engine.New(opts...)
}

func gameResponse(g *Game) GameResponse {
	color := "black"
	if g.EngineWhite {
		color = "white"
	}
	legal := g.Board.LegalMoves()
	legalStr := make([]string, len(legal))
	for i := range legal {
		legalStr[i] = legal[i].String()
	}
	moves := make([]string, len(g.Moves))
	copy(moves, g.Moves)
	return GameResponse{
		GameID:      g.ID,
		FEN:         g.Board.FEN(),
		EngineColor: color,
		Depth:       g.Depth,
		Moves:       moves,
		LegalMoves:  legalStr,
		Status:      g.Board.Status(true).String(),
		Result:      g.Board.Result(true).String(),
	}
}

func (s *Server) depth(requested *int) (int, error) {
	if requested == nil {
		return s.cfg.Depth, nil
	}
	if *requested < 0 || *requested > s.cfg.MaxDepth {
		return 0, fmt.Errorf("%w: %d not in [0, %d]", errDepthOutOfRange, *requested, s.cfg.MaxDepth)
	}
	return *requested, nil
}

func boardFromRequest(req RecommendRequest) (*position.Board, error) {
	var (
		board *position.Board
		err   error
	)
	switch {
	case req.PGN != "" && req.FEN != "":
		return nil, errors.New("give either fen or pgn, not both")
	case req.PGN != "":
		board, err = position.FromPGN(req.PGN)
	case req.FEN != "":
		board, err = position.FromFEN(req.FEN)
	default:
		board = position.New()
	}
	if err != nil {
		return nil, err
	}
	for _, mv := range req.Moves {
		if err := board.Push(mv); err != nil {
			return nil, err
		}
	}
	return board, nil
}
