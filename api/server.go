package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/rs/cors"
	"github.com/snakefield/engine/controller"
	"github.com/snakefield/engine/controller/pb"
	"github.com/snakefield/engine/session"
	log "github.com/sirupsen/logrus"
)

const (
	defaultScoreLimit = 10
	writeWait         = 5 * time.Second
)

// Session is the live game the api exposes. *session.Runner satisfies it.
type Session interface {
	Latest() *pb.Frame
	Send(context.Context, session.Intent) error
	Subscribe() (<-chan *pb.Frame, func())
}

// ScoresResponse lists summaries best first.
type ScoresResponse struct {
	Summaries []*pb.Summary `json:"Summaries"`
}

// ErrorResponse is the body of every non 2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
}

// Server is the http surface of the engine.
type Server struct {
	hs      *http.Server
	session Session
	store   controller.Store
}

// New creates a server listening on addr. store may be nil, in which case
// the score routes answer 404.
func New(addr string, s Session, store controller.Store) *Server {
	srv := &Server{session: s, store: store}

	router := httprouter.New()
	router.GET("/session", srv.getSession)
	router.POST("/session/intents", srv.postIntent)
	router.GET("/session/socket", srv.socket)
	router.GET("/scores", srv.listScores)
	router.GET("/scores/:id", srv.getScore)

	srv.hs = &http.Server{
		Addr:    addr,
		Handler: cors.Default().Handler(router),
	}
	return srv
}

// Handler exposes the routes, mostly for tests.
func (s *Server) Handler() http.Handler { return s.hs.Handler }

// WaitForExit serves until the server is shut down.
func (s *Server) WaitForExit() error {
	log.WithField("listen", s.hs.Addr).Info("engine api listening")
	err := s.hs.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.hs.Shutdown(ctx)
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	writeJSON(w, http.StatusOK, s.session.Latest())
}

func (s *Server) postIntent(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	in := session.Intent{}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, errors.Wrap(err, "invalid intent body"))
		return
	}
	if err := in.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.session.Send(r.Context(), in); err != nil {
		writeError(w, http.StatusServiceUnavailable, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) listScores(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if s.store == nil {
		writeError(w, http.StatusNotFound, controller.ErrNotFound)
		return
	}
	limit := defaultScoreLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, errors.Errorf("invalid limit %q", v))
			return
		}
		limit = n
	}
	list, err := s.store.ListSummaries(r.Context(), limit)
	if err != nil {
		log.WithError(err).Error("unable to list summaries")
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, &ScoresResponse{Summaries: list})
}

func (s *Server) getScore(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if s.store == nil {
		writeError(w, http.StatusNotFound, controller.ErrNotFound)
		return
	}
	sum, err := s.store.GetSummary(r.Context(), ps.ByName("id"))
	if err == controller.ErrNotFound {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		log.WithError(err).WithField("SummaryID", ps.ByName("id")).Error("unable to get summary")
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

// socket streams frames to the client and reads intents from it.
func (s *Server) socket(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Warn("unable to upgrade connection")
		return
	}
	defer ws.Close()

	frames, unsubscribe := s.session.Subscribe()
	defer unsubscribe()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	go s.readIntents(ctx, cancel, ws)

	for {
		select {
		case <-ctx.Done():
			return
		case f, ok := <-frames:
			if !ok {
				writeClose(ws)
				return
			}
			ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := ws.WriteJSON(f); err != nil {
				log.WithError(err).Debug("socket write failed")
				return
			}
		}
	}
}

func (s *Server) readIntents(ctx context.Context, cancel func(), ws *websocket.Conn) {
	defer cancel()
	for {
		mt, message, err := ws.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.WithError(err).Debug("socket read failed")
			}
			return
		}
		if mt != websocket.TextMessage {
			continue
		}
		in := session.Intent{}
		if err := json.Unmarshal(message, &in); err != nil {
			log.WithError(err).Debug("ignoring undecodable intent")
			continue
		}
		if err := s.session.Send(ctx, in); err != nil {
			log.WithError(err).WithField("Intent", in.Type).Debug("intent rejected")
			if ctx.Err() != nil {
				return
			}
		}
	}
}

func writeClose(ws *websocket.Conn) {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	if err := ws.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait)); err != nil {
		log.WithError(err).Debug("unable to send close")
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("unable to write response")
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, &ErrorResponse{Error: err.Error()})
}
