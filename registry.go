package main

// Registry maps room codes to rooms. It is owned by the hub goroutine and
// never touched from anywhere else, so no locking is needed: every
// mutation runs to completion before the next event is handled.
type Registry struct {
	rooms         map[string]*Room
	codeLength    int
	defaultRounds int
}

func newRegistry(codeLength, defaultRounds int) *Registry {
	return &Registry{
		rooms:         make(map[string]*Room),
		codeLength:    codeLength,
		defaultRounds: defaultRounds,
	}
}

// CreateRoom seeds a lobby with the creator as sole player, host, and
// initial clue-giver, under a fresh code that no live room shares.
func (reg *Registry) CreateRoom(host PlayerInfo) *Room {
	var code string
	for {
		code = randomRoomCode(reg.codeLength)
		if _, exists := reg.rooms[code]; !exists {
			break
		}
	}

	room := newRoom(code, host, reg.defaultRounds)
	reg.rooms[code] = room
	roomLogger(code).Info().Str("host", host.ID).Msg("Created room")
	return room
}

// JoinRoom adds a player to an existing room. Unknown codes are the one
// join failure reported back to the requester.
func (reg *Registry) JoinRoom(code string, p PlayerInfo) (*Room, error) {
	room, exists := reg.rooms[code]
	if !exists {
		return nil, ErrRoomNotFound
	}
	room.addPlayer(p)
	roomLogger(code).Info().Str("player", p.ID).Msg("Joined room")
	return room, nil
}

// Lookup returns the room for a code, if any.
func (reg *Registry) Lookup(code string) (*Room, bool) {
	room, exists := reg.rooms[code]
	return room, exists
}

// Disconnect removes a departing player from every room they occupy,
// deleting rooms that end up empty. Rooms that remain alive but changed
// are returned so the caller can broadcast their new state.
func (reg *Registry) Disconnect(playerID string) []*Room {
	var changed []*Room

	for code, room := range reg.rooms {
		if !room.removePlayer(playerID) {
			continue
		}
		if len(room.players) == 0 {
			delete(reg.rooms, code)
			roomLogger(code).Info().Msg("Removing empty room")
			continue
		}
		changed = append(changed, room)
	}

	return changed
}
