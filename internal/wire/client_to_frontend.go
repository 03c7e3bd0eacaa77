package wire

// ClientToFrontendTag identifies the one logical message carried by a
// UDP datagram from the proxy client to the rendering frontend.
type ClientToFrontendTag uint8

const (
	C2FLobby ClientToFrontendTag = iota
	C2FGame
	maxC2FTag = C2FGame
)

// ClientToFrontend is the materialized view the client sends the
// frontend after every server message except GameStarted.
type ClientToFrontend struct {
	Tag ClientToFrontendTag

	ServerName      string
	PlayerCount     uint8
	SizeX           uint16
	SizeY           uint16
	GameLength      uint16
	ExplosionRadius uint16
	BombTimer       uint16
	Players         map[PlayerId]Player

	// C2FGame only
	Turn             uint16
	PlayerPositions  map[PlayerId]Position
	Blocks           []Position
	Bombs            []Bomb
	Explosions       []Position
	Scores           map[PlayerId]Score
}

// NewLobbyView builds a Lobby frontend message.
func NewLobbyView(serverName string, playerCount uint8, sizeX, sizeY, gameLength, explosionRadius, bombTimer uint16, players map[PlayerId]Player) ClientToFrontend {
	return ClientToFrontend{
		Tag:             C2FLobby,
		ServerName:      serverName,
		PlayerCount:     playerCount,
		SizeX:           sizeX,
		SizeY:           sizeY,
		GameLength:      gameLength,
		ExplosionRadius: explosionRadius,
		BombTimer:       bombTimer,
		Players:         players,
	}
}

// NewGameView builds a Game frontend message.
func NewGameView(serverName string, sizeX, sizeY, gameLength, turn uint16, players map[PlayerId]Player, positions map[PlayerId]Position, blocks []Position, bombs []Bomb, explosions []Position, scores map[PlayerId]Score) ClientToFrontend {
	return ClientToFrontend{
		Tag:             C2FGame,
		ServerName:      serverName,
		SizeX:           sizeX,
		SizeY:           sizeY,
		GameLength:      gameLength,
		Turn:            turn,
		Players:         players,
		PlayerPositions: positions,
		Blocks:          blocks,
		Bombs:           bombs,
		Explosions:      explosions,
		Scores:          scores,
	}
}

// EncodeClientToFrontend writes m into w.
func EncodeClientToFrontend(w *WriteBuffer, m ClientToFrontend) error {
	if err := w.WriteU8(uint8(m.Tag)); err != nil {
		return err
	}
	switch m.Tag {
	case C2FLobby:
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
		if err := w.WriteU16(m.BombTimer); err != nil {
			return err
		}
		return encodePlayerMap(w, m.Players)
	case C2FGame:
		if err := w.WriteString(m.ServerName); err != nil {
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
		if err := w.WriteU16(m.Turn); err != nil {
			return err
		}
		if err := encodePlayerMap(w, m.Players); err != nil {
			return err
		}
		if err := encodePositionMap(w, m.PlayerPositions); err != nil {
			return err
		}
		if err := encodePositionList(w, m.Blocks); err != nil {
			return err
		}
		if err := encodeBombList(w, m.Bombs); err != nil {
			return err
		}
		if err := encodePositionList(w, m.Explosions); err != nil {
			return err
		}
		return encodeScoreMap(w, m.Scores)
	default:
		return newCodecError(ErrUnknownTag, "unknown client-to-frontend tag %d", m.Tag)
	}
}

// DecodeClientToFrontend reads a ClientToFrontend message from r. The
// frontend uses this to decode what the client sends it.
func DecodeClientToFrontend(r *ReadBuffer) (ClientToFrontend, error) {
	tag, err := r.ReadU8()
	if err != nil {
		return ClientToFrontend{}, err
	}
	if tag > uint8(maxC2FTag) {
		return ClientToFrontend{}, newCodecError(ErrUnknownTag, "client-to-frontend tag %d out of range", tag)
	}
	switch ClientToFrontendTag(tag) {
	case C2FLobby:
		name, err := r.ReadString()
		if err != nil {
			return ClientToFrontend{}, err
		}
		count, err := r.ReadU8()
		if err != nil {
			return ClientToFrontend{}, err
		}
		sx, err := r.ReadU16()
		if err != nil {
			return ClientToFrontend{}, err
		}
		sy, err := r.ReadU16()
		if err != nil {
			return ClientToFrontend{}, err
		}
		length, err := r.ReadU16()
		if err != nil {
			return ClientToFrontend{}, err
		}
		radius, err := r.ReadU16()
		if err != nil {
			return ClientToFrontend{}, err
		}
		timer, err := r.ReadU16()
		if err != nil {
			return ClientToFrontend{}, err
		}
		players, err := decodePlayerMap(r)
		if err != nil {
			return ClientToFrontend{}, err
		}
		return NewLobbyView(name, count, sx, sy, length, radius, timer, players), nil
	case C2FGame:
		name, err := r.ReadString()
		if err != nil {
			return ClientToFrontend{}, err
		}
		sx, err := r.ReadU16()
		if err != nil {
			return ClientToFrontend{}, err
		}
		sy, err := r.ReadU16()
		if err != nil {
			return ClientToFrontend{}, err
		}
		length, err := r.ReadU16()
		if err != nil {
			return ClientToFrontend{}, err
		}
		turn, err := r.ReadU16()
		if err != nil {
			return ClientToFrontend{}, err
		}
		players, err := decodePlayerMap(r)
		if err != nil {
			return ClientToFrontend{}, err
		}
		positions, err := decodePositionMap(r)
		if err != nil {
			return ClientToFrontend{}, err
		}
		blocks, err := decodePositionList(r)
		if err != nil {
			return ClientToFrontend{}, err
		}
		bombs, err := decodeBombList(r)
		if err != nil {
			return ClientToFrontend{}, err
		}
		explosions, err := decodePositionList(r)
		if err != nil {
			return ClientToFrontend{}, err
		}
		scores, err := decodeScoreMap(r)
		if err != nil {
			return ClientToFrontend{}, err
		}
		return NewGameView(name, sx, sy, length, turn, players, positions, blocks, bombs, explosions, scores), nil
	}
	return ClientToFrontend{}, newCodecError(ErrUnknownTag, "unreachable client-to-frontend tag %d", tag)
}
