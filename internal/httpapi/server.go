package httpapi

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/wagiedev/stockfish-bridge-go/internal/config"
	"github.com/wagiedev/stockfish-bridge-go/internal/errors"
	"github.com/wagiedev/stockfish-bridge-go/internal/position"
)

const (
	// MaxBatchPositions caps the positions accepted by POST /bestmoves.
	MaxBatchPositions = 16

	// DefaultBatchLimit is the number of engines run at once for a batch.
	DefaultBatchLimit = 4
)

// requestSlack is added on top of the engine's worst case when bounding a
// request.
var requestSlack = 2 * time.Second

// Engine is the bridge surface the HTTP handlers need.
// *stockfishbridge.Bridge satisfies it.
type Engine interface {
	BestMove(ctx context.Context, position string) (string, error)
	BestMoves(ctx context.Context, positions []string, limit int) ([]string, error)
	Timeouts() config.Timeouts
}

// Server bundles the router and the engine it serves.
type Server struct {
	log        *slog.Logger
	r          *chi.Mux
	engine     Engine
	batchLimit int
	callBudget time.Duration
}

type bestMoveRes struct {
	FEN    string `json:"fen"`
	Result string `json:"result"`
}

type bestMovesReq struct {
	Positions []string `json:"positions"`
}

type bestMovesRes struct {
	Results []bestMoveRes `json:"results"`
}

type errorRes struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
	Index  *int   `json:"index,omitempty"`
}

// New constructs a Server, installs middleware and registers routes.
// batchLimit <= 0 selects DefaultBatchLimit.
func New(log *slog.Logger, engine Engine, batchLimit int) *Server {
	if batchLimit <= 0 {
		batchLimit = DefaultBatchLimit
	}

	s := &Server{
		log:        log.With("component", "httpapi"),
		r:          chi.NewRouter(),
		engine:     engine,
		batchLimit: batchLimit,
		callBudget: engine.Timeouts().CallBudget(),
	}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(jsonContentType)

	s.r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.With(chimw.Timeout(s.deadline(1))).Get("/bestmove", s.handleBestMove)
	// The batch deadline depends on the request size; the handler sets it.
	s.r.Post("/bestmoves", s.handleBestMoves)

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Handler exposes the router (useful for tests and embedding).
func (s *Server) Handler() http.Handler { return s.r }

// deadline bounds a request that runs waves engine calls back to back.
func (s *Server) deadline(waves int) time.Duration {
	return time.Duration(waves)*s.callBudget + requestSlack
}

// ListenAndServe serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		s.log.Info("HTTP server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.deadline(1))
		defer cancel()

		s.log.Info("Shutting down HTTP server")

		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleBestMove(w http.ResponseWriter, r *http.Request) {
	fen := r.URL.Query().Get("fen")
	if fen == "" {
		writeJSON(w, http.StatusBadRequest, errorRes{Error: "missing_fen"})

		return
	}

	if err := position.Check(fen); err != nil {
		writeJSON(w, http.StatusBadRequest, errorRes{Error: "invalid_fen", Detail: err.Error()})

		return
	}

	move, err := s.engine.BestMove(r.Context(), fen)
	if err != nil {
		// Cut short by the request deadline or a vanished client; the
		// timeout middleware answers 504 for the former.
		if ctxErr := r.Context().Err(); ctxErr != nil {
			s.log.Warn("Engine call interrupted",
				"request_id", chimw.GetReqID(r.Context()), "error", ctxErr)

			return
		}

		code := errors.CodeOf(err)
		s.log.Warn("Engine call failed",
			"request_id", chimw.GetReqID(r.Context()), "code", code, "error", err)

		writeJSON(w, http.StatusUnprocessableEntity, bestMoveRes{FEN: fen, Result: code.String()})

		return
	}

	writeJSON(w, http.StatusOK, bestMoveRes{FEN: fen, Result: move})
}

func (s *Server) handleBestMoves(w http.ResponseWriter, r *http.Request) {
	var req bestMovesReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorRes{Error: "bad_json"})

		return
	}

	switch {
	case len(req.Positions) == 0:
		writeJSON(w, http.StatusBadRequest, errorRes{Error: "missing_positions"})

		return
	case len(req.Positions) > MaxBatchPositions:
		writeJSON(w, http.StatusRequestEntityTooLarge, errorRes{Error: "too_many_positions"})

		return
	}

	for i, fen := range req.Positions {
		if err := position.Check(fen); err != nil {
			writeJSON(w, http.StatusBadRequest, errorRes{Error: "invalid_fen", Detail: err.Error(), Index: &i})

			return
		}
	}

	waves := (len(req.Positions) + s.batchLimit - 1) / s.batchLimit

	ctx, cancel := context.WithTimeout(r.Context(), s.deadline(waves))
	defer cancel()

	results, err := s.engine.BestMoves(ctx, req.Positions, s.batchLimit)
	if err != nil {
		s.log.Warn("Batch interrupted",
			"request_id", chimw.GetReqID(r.Context()), "positions", len(req.Positions), "error", err)

		if stderrors.Is(err, context.DeadlineExceeded) {
			writeJSON(w, http.StatusGatewayTimeout, errorRes{Error: "timeout"})
		}

		return
	}

	res := bestMovesRes{Results: make([]bestMoveRes, len(results))}
	for i, result := range results {
		res.Results[i] = bestMoveRes{FEN: req.Positions[i], Result: result}
	}

	writeJSON(w, http.StatusOK, res)
}

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
