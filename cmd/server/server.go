package main

import (
	"net/http"
	"os"

	"github.com/matryer/way"
	log "github.com/sirupsen/logrus"

	"github.com/zucenko/coinmaze/server"
)

type Server struct {
	router     *way.Router
	GameServer *server.GameServer
}

func main() {
	if os.Getenv("MAZE_DEBUG") != "" {
		log.SetLevel(log.DebugLevel)
	}
	Server := Server{
		GameServer: server.NewGameServer(server.ConfigFromEnv()),
	}
	if path := os.Getenv("MAZE_FILE"); path != "" {
		layout, err := server.LoadGrid(path)
		if err != nil {
			log.Fatalf("MAZE_FILE: %v", err)
		}
		Server.GameServer.Layout = layout
		log.Printf("Serving fixed maze %s (%dx%d)", path, layout.Rows, layout.Cols)
	}
	go Server.GameServer.Loop()
	Server.routes()
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
		log.Printf("Defaulting to port %s", port)
	}
	log.Fatalln(http.ListenAndServe(":"+port, Server.router))
}
