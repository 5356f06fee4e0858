package server

import (
	"encoding/gob"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/zucenko/coinmaze/model"
)

func NewGameServer(cfg model.GameConfig) *GameServer {
	return &GameServer{
		Config:       cfg,
		GameSessions: make([]*GameSession, 0),
		GameRequests: make(chan GameRequest),
		Upgrader:     &websocket.Upgrader{},
		Seeds:        func() int64 { return time.Now().UnixNano() },
		Finished:     make(chan *GameSession, 16),
	}
}

func (s *GameServer) HandleHttpCall() http.HandlerFunc {
	timeout := 200 * time.Millisecond
	return func(w http.ResponseWriter, r *http.Request) {
		log.Printf("HandleHttpCall - connection received")

		q := r.URL.Query()
		cfg, seed, err := s.sessionParams(q.Get("difficulty"), q.Get("seed"))
		if err != nil {
			log.Warnf("HandleHttpCall bad request: %v", err)
			http.Error(w, err.Error(), HTTP_BAD_REQUEST)
			return
		}

		gcas := make(chan GameContextAwaiting, 1)
		select {
		case s.GameRequests <- GameRequest{Config: cfg, Seed: seed, GameContextAwaiting: gcas}:
			log.Printf("HandleHttpCall -> GameServer.GameRequests")
		case <-time.After(timeout):
			log.Warn("GameRequests TIMEOUTED")
			w.WriteHeader(HTTP_TIMEOUT)
			return
		}

		var gca GameContextAwaiting
		select {
		case gca = <-gcas:
			log.Printf("HandleHttpCall GameContextAwaiting <- code:%d", gca.ResponseCode)
			switch gca.ResponseCode {
			case GAME_NOT_FOUND, GAME_INVALIDE:
				msg := "no game"
				if gca.Err != nil {
					msg = gca.Err.Error()
				}
				http.Error(w, msg, gca.ResponseCode.ToHttp())
				return
			case GAME_READY:
			default:
				log.Errorf("gca.ResponseCode not expected:%v", gca.ResponseCode)
				w.WriteHeader(HTTP_SERVER_ERR)
				return
			}
		case <-time.After(timeout):
			log.Warnf("HandleHttpCall GameContextAwaiting <- TIMEOUTED")
			go abandonLate(gcas, timeout)
			w.WriteHeader(HTTP_TIMEOUT)
			return
		}

		// Upgrade answers the client itself when it fails.
		con, err := s.Upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("HandleHttpCall websocket upgrade err %v", err)
			gca.GameSession.abandon(timeout)
			return
		}
		defer con.Close()

		gameOver := make(chan struct{})
		select {
		case gca.GameSession.PlayerConnectRequests <- PlayerConnectRequest{
			Con:      con,
			GameOver: gameOver}:
		case <-time.After(timeout):
			log.Warn("HandleHttpCall PlayerConnectRequests TIMEOUTED")
			gca.GameSession.abandon(timeout)
			return
		}

		<-gameOver
		log.WithFields(log.Fields{"seed": gca.GameSession.Seed}).Info("HandleHttpCall game over")
		_ = con.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "game over"),
			time.Now().Add(time.Second))
	}
}

func (s *GameServer) Loop() {
	log.Printf("GameServer.Loop starting")
	for {
		select {
		case gameReq := <-s.GameRequests:
			gs, err := s.newGameSession(gameReq.Config, gameReq.Seed)
			if err != nil {
				log.Warnf("GameServer.Loop can't create session: %v", err)
				gameReq.GameContextAwaiting <- GameContextAwaiting{
					ResponseCode: GAME_INVALIDE,
					Err:          err,
				}
				continue
			}
			go gs.Loop()
			s.GameSessions = append(s.GameSessions, gs)
			gameReq.GameContextAwaiting <- GameContextAwaiting{
				ResponseCode: GAME_READY,
				GameSession:  gs,
			}
		case gs := <-s.Finished:
			for i, g := range s.GameSessions {
				if g == gs {
					s.GameSessions = append(s.GameSessions[:i], s.GameSessions[i+1:]...)
					break
				}
			}
			log.Printf("GameServer.Loop session over, %d left", len(s.GameSessions))
		}
	}
}

func (s *GameServer) newGameSession(cfg model.GameConfig, seed int64) (*GameSession, error) {
	var m *model.Maze
	if s.Layout != nil {
		m = model.NewMaze(s.Layout.Clone(), cfg)
	} else {
		var err error
		m, err = model.NewSession(cfg, model.NewRandom(seed))
		if err != nil {
			return nil, errors.Wrapf(err, "seed %d", seed)
		}
	}
	return &GameSession{
		State:                 GS_NEW,
		Seed:                  seed,
		Maze:                  m,
		Player:                model.NewPlayer(m, cfg.PlayerColor),
		PlayerSessions:        make([]*PlayerSession, 0),
		Errors:                make(chan int32),
		Events:                make(chan PlayerEvent),
		PlayerConnectRequests: make(chan PlayerConnectRequest),
		done:                  make(chan struct{}),
		finished:              s.Finished,
	}, nil
}

func (gs *GameSession) Loop() {
	log.WithFields(log.Fields{
		"seed":       gs.Seed,
		"difficulty": gs.Maze.Config().Difficulty,
		"coins":      gs.Maze.CoinsLeft(),
	}).Info("GameSession.Loop start")
	defer gs.finish()
	for {
		select {
		case pcr := <-gs.PlayerConnectRequests:
			if len(gs.PlayerSessions) > 0 {
				log.Warn("GameSession.Loop already has its player")
				close(pcr.GameOver)
				continue
			}
			ps := gs.addPlayer(pcr.Con, pcr.GameOver)
			gs.State = GS_PLAY
			gs.Started = time.Now()
			ps.State = PS_PLAY
			ps.MessagesToSend <- ps.MakeGameSetupMessage()
		case errPlayer := <-gs.Errors:
			log.Warnf("killing GS, player %d failed", errPlayer)
			gs.State = GS_ERR
			for _, ps := range gs.PlayerSessions {
				if ps.Id == errPlayer {
					ps.State = PS_ERR
				} else {
					ps.State = PS_ERR_SEC
				}
			}
			return
		case pe := <-gs.Events:
			ps := gs.playerSession(pe.Player)
			if ps == nil {
				log.Warnf("GameSession.Loop event from unknown player %d", pe.Player)
				continue
			}
			ps.MessagesToSend <- gs.Turn(pe)
			if gs.State == GS_OVER {
				ps.State = PS_OVER
				log.WithFields(log.Fields{
					"seed":  gs.Seed,
					"score": gs.Maze.Score(),
					"took":  time.Since(gs.Started),
				}).Info("GameSession.Loop won")
				return
			}
		}
	}
}

// Turn applies one move. Reaching the end moves the session to GS_OVER.
func (gs *GameSession) Turn(pe PlayerEvent) model.ServerMessage {
	d := pe.GameEvent.Direction
	var res model.MoveResult
	if d < model.Right || d > model.Up {
		pos := gs.Player.Position()
		res = model.MoveResult{
			Direction: d,
			Col:       pos.Col,
			Row:       pos.Row,
			Score:     gs.Maze.Score(),
			CoinsLeft: gs.Maze.CoinsLeft(),
		}
	} else {
		res = model.Apply(gs.Maze, gs.Player, d)
	}
	log.Debugf("GameSession.Turn %s -> (%d,%d) moved:%v", d.Name(), res.Col, res.Row, res.Moved)
	if res.Won {
		gs.State = GS_OVER
	}
	return model.ServerMessage{Moves: []model.MoveResult{res}}
}

func (gs *GameSession) playerSession(id int32) *PlayerSession {
	for _, ps := range gs.PlayerSessions {
		if ps.Id == id {
			return ps
		}
	}
	return nil
}

func (gs *GameSession) finish() {
	close(gs.done)
	select {
	case gs.finished <- gs:
	default:
	}
}

// abandonLate waits for the answer to a request whose caller gave up and
// ends the session it brings. Loop answers every request it takes.
func abandonLate(gcas <-chan GameContextAwaiting, timeout time.Duration) {
	gca := <-gcas
	if gca.GameSession != nil {
		log.WithFields(log.Fields{"seed": gca.GameSession.Seed}).Warn("abandoning late session")
		gca.GameSession.abandon(timeout)
	}
}

// abandon ends a session nobody connected to.
func (gs *GameSession) abandon(timeout time.Duration) {
	select {
	case gs.Errors <- 0:
	case <-gs.done:
	case <-time.After(timeout):
		log.Warn("GameSession.abandon TIMEOUTED")
	}
}

func (gs *GameSession) addPlayer(
	conn *websocket.Conn,
	gameOver chan struct{},
) *PlayerSession {
	log.Printf("GameSession.addPlayer")
	ps := &PlayerSession{
		State:          PS_NEW,
		Id:             int32(len(gs.PlayerSessions) + 1),
		GameSession:    gs,
		Conn:           conn,
		GameOver:       gameOver,
		MessagesToSend: make(chan model.ServerMessage, 10),
	}
	conn.SetPingHandler(
		func(message string) error {
			err := conn.WriteControl(websocket.PongMessage, []byte(message), time.Now().Add(time.Second))
			ps.DebugLastPing = time.Now()
			ps.DebugPings++
			if err == websocket.ErrCloseSent {
				return nil
			} else if e, ok := err.(net.Error); ok && e.Temporary() {
				return nil
			}
			return err
		})
	go ps.LoopChannelRead()
	go ps.LoopChannelWrite()
	gs.PlayerSessions = append(gs.PlayerSessions, ps)
	return ps
}

func (ps *PlayerSession) MakeGameSetupMessage() model.ServerMessage {
	gs := ps.GameSession
	return model.ServerMessage{
		Setup: []model.Setup{model.NewSetup(gs.Maze, gs.Player)},
		Moves: []model.MoveResult{},
	}
}

func (ps *PlayerSession) LoopChannelRead() {
	log.Printf("LoopChannelRead STARTED")
loop:
	for {
		_, r, err := ps.Conn.NextReader()
		if err != nil {
			ps.fail(errors.Wrap(err, "reading message from Conn"))
			break loop
		}
		cm := &model.ClientMessage{}
		if err = gob.NewDecoder(r).Decode(cm); err != nil {
			ps.fail(errors.Wrap(err, "decoding client message"))
			break loop
		}
		ps.DebugLastMessage = time.Now()
		ps.DebugInMessages++

		select {
		case ps.GameSession.Events <- PlayerEvent{
			Player:    ps.Id,
			GameEvent: GameEvent{Direction: cm.Move},
		}:
		case <-ps.GameSession.done:
			break loop
		}
	}
	log.Printf("LoopChannelRead ENDED")
}

// LoopChannelWrite is the only writer of data frames and the one that
// releases the HTTP handler through GameOver.
func (ps *PlayerSession) LoopChannelWrite() {
	log.Printf("PlayerSession.LoopChannelWrite STARTED")
	defer ps.end()
loop:
	for {
		select {
		case mes := <-ps.MessagesToSend:
			if err := ps.write(mes); err != nil {
				ps.fail(err)
				break loop
			}
		case <-ps.GameSession.done:
			// flush what the session queued before it ended
			for {
				select {
				case mes := <-ps.MessagesToSend:
					if err := ps.write(mes); err != nil {
						log.Debugf("PlayerSession.LoopChannelWrite flush: %v", err)
						break loop
					}
				default:
					break loop
				}
			}
		}
	}
	log.Printf("LoopChannelWrite ENDED")
}

func (ps *PlayerSession) write(mes model.ServerMessage) error {
	w, err := ps.Conn.NextWriter(websocket.BinaryMessage)
	if err != nil {
		return errors.Wrap(err, "getting writer")
	}
	if err = gob.NewEncoder(w).Encode(mes); err != nil {
		return errors.Wrap(err, "encoding server message")
	}
	if err = w.Close(); err != nil {
		return errors.Wrap(err, "flushing server message")
	}
	ps.DebugOutMessages++
	return nil
}

func (ps *PlayerSession) fail(err error) {
	select {
	case ps.GameSession.Errors <- ps.Id:
		log.Warnf("PlayerSession %d: %v", ps.Id, err)
	case <-ps.GameSession.done:
		log.Debugf("PlayerSession %d after session end: %v", ps.Id, err)
	}
}

func (ps *PlayerSession) end() {
	ps.over.Do(func() { close(ps.GameOver) })
}
