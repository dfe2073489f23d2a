package main

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/jackc/pgx/v5"
)

var upgrader websocket.Upgrader

type StepJSON struct {
	Board [][]int `json:"board"`
	Move  string  `json:"move,omitempty"`
	Depth int     `json:"depth"`
}

// handleConnectWs serves a session over a websocket. Each text message is a
// newline-separated command batch ("g" to fetch, "s" to solve); the reply is
// the session JSON, followed by one message per solution step the first time
// the session turns solved, so clients can animate the path as it arrives.
func handleConnectWs(w http.ResponseWriter, r *http.Request) {
	sessionId, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	session, err := pg.GetSession(r.Context(), sessionId)
	if errors.Is(err, pgx.ErrNoRows) {
		w.WriteHeader(http.StatusNotFound)
		return
	} else if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.Error(err)
		return
	}
	c, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("upgrade: ", err)
		return
	}
	defer c.Close()
	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				log.Warn("read: ", err)
			}
			break
		}
		if mt != websocket.TextMessage {
			break
		}
		hadSolution := session.Solution != nil
		text := strings.TrimSpace(string(message))
		for _, cmd := range byPiece(text, "\n") {
			if err := executeCommand(r.Context(), session, cmd); err != nil {
				log.Error("command: ", err)
				return
			}
		}
		if err := c.WriteJSON(session); err != nil {
			log.Error("write: ", err)
			break
		}
		if !hadSolution && session.Solution != nil {
			for _, step := range session.Solution.Steps {
				payload := StepJSON{
					Board: step.Board.Rows(),
					Move:  step.Move.String(),
					Depth: step.Depth,
				}
				if err := c.WriteJSON(payload); err != nil {
					log.Error("write: ", err)
					return
				}
			}
		}
	}
}
