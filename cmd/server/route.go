package main

import (
	"github.com/matryer/way"
)

const URI_WS = "/play"
const URI_SNAPSHOT = "/maze.png"

func (s *Server) routes() {
	s.router = way.NewRouter()
	s.router.HandleFunc("GET", URI_WS, s.GameServer.HandleHttpCall())
	s.router.HandleFunc("GET", URI_SNAPSHOT, s.GameServer.HandleSnapshot())
}
