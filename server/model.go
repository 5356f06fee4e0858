package server

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/zucenko/coinmaze/model"
)

type GameServer struct {
	Config       model.GameConfig
	GameSessions []*GameSession
	GameRequests chan GameRequest
	Upgrader     *websocket.Upgrader
	// Seeds hands out one maze seed per session.
	Seeds func() int64
	// Layout, when set, replaces generation: every session plays a copy.
	Layout   *model.Grid
	Finished chan *GameSession
}

type GameSessionState int

const (
	GS_NEW GameSessionState = iota
	GS_WAIT
	GS_PLAY
	GS_ERR
	GS_OVER
)

// GameSession is one generated maze and the player walking it.
type GameSession struct {
	State                 GameSessionState
	Seed                  int64
	Maze                  *model.Maze
	Player                *model.Player
	PlayerSessions        []*PlayerSession
	Errors                chan int32
	Events                chan PlayerEvent
	PlayerConnectRequests chan PlayerConnectRequest
	Started               time.Time

	done     chan struct{}
	finished chan<- *GameSession
}

type PlayerSessionState int

const (
	PS_NEW PlayerSessionState = iota + 1
	PS_PLAY
	PS_OVER
	PS_ERR
	PS_ERR_SEC
)

type PlayerSession struct {
	State       PlayerSessionState
	Id          int32
	GameSession *GameSession
	Conn        *websocket.Conn
	GameOver    chan struct{}
	over        sync.Once

	MessagesToSend chan model.ServerMessage

	DebugInMessages  int
	DebugOutMessages int
	DebugLastMessage time.Time
	DebugLastPing    time.Time
	DebugPings       int
}
