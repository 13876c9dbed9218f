package main

import (
	"context"

	"github.com/rs/zerolog/log"
)

type inboundEvent struct {
	client *Client
	msg    clientMessage
}

// Hub owns the registry and every room in it. All mutation happens on the
// run goroutine, one event at a time, so rooms need no locks and events
// from the same sender apply in the order they arrived.
type Hub struct {
	registry *Registry
	clients  map[string]*Client // keyed by player ID

	register   chan *Client
	unregister chan *Client
	inbox      chan inboundEvent
}

func newHub(cfg *Config) *Hub {
	return &Hub{
		registry:   newRegistry(cfg.codeLength, cfg.defaultRounds),
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		inbox:      make(chan inboundEvent, 64),
	}
}

func (h *Hub) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for _, c := range h.clients {
				close(c.send)
			}
			clear(h.clients)
			return

		case c := <-h.register:
			h.clients[c.id] = c
			c.send <- sessionMessage{Type: "session", ID: c.id}

		case c := <-h.unregister:
			h.handleDisconnect(c)

		case ev := <-h.inbox:
			h.dispatch(ev)
		}
	}
}

// dispatch routes one inbound event. Guard failures inside the room
// methods return false and nothing is sent back: wrong-actor and
// wrong-phase attempts from untrusted clients fail closed and quiet.
func (h *Hub) dispatch(ev inboundEvent) {
	c := ev.client
	msg := ev.msg

	switch msg.Type {
	case "room:create":
		room := h.registry.CreateRoom(PlayerInfo{ID: c.id, Name: msg.Name})
		h.send(c, joinedMessage{Type: "room:joined", Code: room.code})
		h.broadcastState(room)
		return

	case "room:join":
		room, err := h.registry.JoinRoom(msg.Code, PlayerInfo{ID: c.id, Name: msg.Name})
		if err != nil {
			h.sendError(c, err.Error())
			return
		}
		h.send(c, joinedMessage{Type: "room:joined", Code: room.code})
		h.broadcastState(room)
		return

	case "prompts:set", "config:setRounds", "game:start", "round:clue",
		"round:guess", "round:lock", "round:revealNow", "round:next", "game:replay":
		// room-scoped, handled below

	default:
		// ignore unknown types
		return
	}

	room, ok := h.registry.Lookup(msg.Code)
	if !ok {
		h.sendError(c, ErrRoomNotFound.Error())
		return
	}

	changed := false

	switch msg.Type {
	case "prompts:set":
		changed = room.SetPromptPool(c.id, msg.Text)

	case "config:setRounds":
		rounds, roundsSet := coerceRounds(msg.TotalRounds)
		changed = room.SetTotalRounds(c.id, rounds, roundsSet)

	case "game:start":
		rounds, roundsSet := coerceRounds(msg.TotalRounds)
		started, err := room.Start(c.id, rounds, roundsSet)
		if err != nil {
			h.sendError(c, err.Error())
			return
		}
		if started {
			roomLogger(room.code).Debug().Int("rounds", room.totalRounds).Msg("Game started")
		}
		changed = started

	case "round:clue":
		changed = room.SubmitClue(c.id, msg.Text)

	case "round:guess":
		changed = room.SubmitGuess(c.id, coerceGuess(msg.Value))

	case "round:lock":
		changed = room.LockGuess(c.id)
		if changed && room.phase == PhaseReveal {
			roomLogger(room.code).Debug().Int("round", room.currentRound).Msg("All guesses locked, revealing")
		}

	case "round:revealNow":
		changed = room.ForceReveal(c.id)

	case "round:next":
		changed = room.NextRound(c.id)

	case "game:replay":
		changed = room.Replay(c.id)
	}

	if changed {
		h.broadcastState(room)
	}
}

func (h *Hub) handleDisconnect(c *Client) {
	if _, ok := h.clients[c.id]; ok {
		delete(h.clients, c.id)
		close(c.send)
	}

	for _, room := range h.registry.Disconnect(c.id) {
		h.broadcastState(room)
	}
}

// broadcastState sends every current player their own copy of the room
// state, since the clue-giver's payload can differ from everyone else's.
func (h *Hub) broadcastState(room *Room) {
	for _, p := range room.players {
		client, ok := h.clients[p.ID]
		if !ok {
			continue
		}
		h.send(client, room.snapshotFor(p.ID))
	}
}

func (h *Hub) sendError(c *Client, text string) {
	h.send(c, errorMessage{Type: "room:error", Message: text})
}

// send delivers without blocking the loop: a client whose buffer is full
// is evicted on the spot and cleaned up when its read pump exits.
func (h *Hub) send(c *Client, msg any) {
	if _, ok := h.clients[c.id]; !ok {
		return
	}

	select {
	case c.send <- msg:
	default:
		log.Warn().Str("player", c.id).Msg("Dropping slow client")
		delete(h.clients, c.id)
		close(c.send)
		_ = c.conn.Close()
	}
}
