package wire

// ServerToClientTag identifies a message sent over the reliable TCP
// stream from the server to a connected client.
type ServerToClientTag uint8

const (
	S2CHello ServerToClientTag = iota
	S2CAcceptedPlayer
	S2CGameStarted
	S2CTurn
	S2CGameEnded
	maxS2CTag = S2CGameEnded
)

// ServerToClient is one message in the Server→Client direction.
type ServerToClient struct {
	Tag ServerToClientTag

	// S2CHello
	ServerName      string
	PlayerCount     uint8
	SizeX           uint16
	SizeY           uint16
	GameLength      uint16
	ExplosionRadius uint16
	BombTimer       uint16

	// S2CAcceptedPlayer
	AcceptedID     PlayerId
	AcceptedPlayer Player

	// S2CGameStarted
	Players map[PlayerId]Player

	// S2CTurn
	TurnNumber uint16
	Events     []Event

	// S2CGameEnded
	Scores map[PlayerId]Score
}

// NewHello builds a Hello message.
func NewHello(serverName string, playerCount uint8, sizeX, sizeY, gameLength, explosionRadius, bombTimer uint16) ServerToClient {
	return ServerToClient{
		Tag:             S2CHello,
		ServerName:      serverName,
		PlayerCount:     playerCount,
		SizeX:           sizeX,
		SizeY:           sizeY,
		GameLength:      gameLength,
		ExplosionRadius: explosionRadius,
		BombTimer:       bombTimer,
	}
}

// NewAcceptedPlayer builds an AcceptedPlayer message.
func NewAcceptedPlayer(id PlayerId, p Player) ServerToClient {
	return ServerToClient{Tag: S2CAcceptedPlayer, AcceptedID: id, AcceptedPlayer: p}
}

// NewGameStarted builds a GameStarted message.
func NewGameStarted(players map[PlayerId]Player) ServerToClient {
	return ServerToClient{Tag: S2CGameStarted, Players: players}
}

// NewTurn builds a Turn message.
func NewTurn(turn uint16, events []Event) ServerToClient {
	return ServerToClient{Tag: S2CTurn, TurnNumber: turn, Events: events}
}

// NewGameEnded builds a GameEnded message.
func NewGameEnded(scores map[PlayerId]Score) ServerToClient {
	return ServerToClient{Tag: S2CGameEnded, Scores: scores}
}

// EncodeServerToClient writes m into w.
func EncodeServerToClient(w *WriteBuffer, m ServerToClient) error {
	if err := w.WriteU8(uint8(m.Tag)); err != nil {
		return err
	}
	switch m.Tag {
	case S2CHello:
		if err := w.WriteString(m.ServerName); err != nil {
			return err
		}
		if err := w.WriteU8(m.PlayerCount); err != nil {
			return err
		}
		if err := w.WriteU16(m.SizeX); err != nil {
			return err
		}
		if err := w.WriteU16(m.SizeY); err != nil {
			return err
		}
		if err := w.WriteU16(m.GameLength); err != nil {
			return err
		}
		if err := w.WriteU16(m.ExplosionRadius); err != nil {
			return err
		}
		return w.WriteU16(m.BombTimer)
	case S2CAcceptedPlayer:
		if err := w.WriteU8(uint8(m.AcceptedID)); err != nil {
			return err
		}
		return encodePlayer(w, m.AcceptedPlayer)
	case S2CGameStarted:
		return encodePlayerMap(w, m.Players)
	case S2CTurn:
		if err := w.WriteU16(m.TurnNumber); err != nil {
			return err
		}
		return encodeEventList(w, m.Events)
	case S2CGameEnded:
		return encodeScoreMap(w, m.Scores)
	default:
		return newCodecError(ErrUnknownTag, "unknown server-to-client tag %d", m.Tag)
	}
}

// DecodeServerToClient reads a ServerToClient message from r.
func DecodeServerToClient(r *ReadBuffer) (ServerToClient, error) {
	tag, err := r.ReadU8()
	if err != nil {
		return ServerToClient{}, err
	}
	if tag > uint8(maxS2CTag) {
		return ServerToClient{}, newCodecError(ErrUnknownTag, "server-to-client tag %d out of range", tag)
	}
	switch ServerToClientTag(tag) {
	case S2CHello:
		name, err := r.ReadString()
		if err != nil {
			return ServerToClient{}, err
		}
		count, err := r.ReadU8()
		if err != nil {
			return ServerToClient{}, err
		}
		sx, err := r.ReadU16()
		if err != nil {
			return ServerToClient{}, err
		}
		sy, err := r.ReadU16()
		if err != nil {
			return ServerToClient{}, err
		}
		length, err := r.ReadU16()
		if err != nil {
			return ServerToClient{}, err
		}
		radius, err := r.ReadU16()
		if err != nil {
			return ServerToClient{}, err
		}
		timer, err := r.ReadU16()
		if err != nil {
			return ServerToClient{}, err
		}
		return NewHello(name, count, sx, sy, length, radius, timer), nil
	case S2CAcceptedPlayer:
		id, err := r.ReadU8()
		if err != nil {
			return ServerToClient{}, err
		}
		p, err := decodePlayer(r)
		if err != nil {
			return ServerToClient{}, err
		}
		return NewAcceptedPlayer(PlayerId(id), p), nil
	case S2CGameStarted:
		players, err := decodePlayerMap(r)
		if err != nil {
			return ServerToClient{}, err
		}
		return NewGameStarted(players), nil
	case S2CTurn:
		turn, err := r.ReadU16()
		if err != nil {
			return ServerToClient{}, err
		}
		events, err := decodeEventList(r)
		if err != nil {
			return ServerToClient{}, err
		}
		return NewTurn(turn, events), nil
	case S2CGameEnded:
		scores, err := decodeScoreMap(r)
		if err != nil {
			return ServerToClient{}, err
		}
		return NewGameEnded(scores), nil
	}
	return ServerToClient{}, newCodecError(ErrUnknownTag, "unreachable server-to-client tag %d", tag)
}
