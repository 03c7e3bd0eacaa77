package wire

// ClientToServerTag identifies a message sent over the reliable
// TCP stream from a player's client to the server.
type ClientToServerTag uint8

const (
	C2SJoin ClientToServerTag = iota
	C2SPlaceBomb
	C2SPlaceBlock
	C2SMove
	maxC2STag = C2SMove
)

// ClientToServer is one message in the Client→Server direction.
type ClientToServer struct {
	Tag ClientToServerTag

	JoinName string // C2SJoin
	Move     Direction // C2SMove
}

// NewJoin builds a Join message.
func NewJoin(name string) ClientToServer {
	return ClientToServer{Tag: C2SJoin, JoinName: name}
}

// NewPlaceBomb builds a PlaceBomb message.
func NewPlaceBomb() ClientToServer {
	return ClientToServer{Tag: C2SPlaceBomb}
}

// NewPlaceBlock builds a PlaceBlock message.
func NewPlaceBlock() ClientToServer {
	return ClientToServer{Tag: C2SPlaceBlock}
}

// NewMove builds a Move message.
func NewMove(dir Direction) ClientToServer {
	return ClientToServer{Tag: C2SMove, Move: dir}
}

// EncodeClientToServer writes m into w.
func EncodeClientToServer(w *WriteBuffer, m ClientToServer) error {
	if err := w.WriteU8(uint8(m.Tag)); err != nil {
		return err
	}
	switch m.Tag {
	case C2SJoin:
		return w.WriteString(m.JoinName)
	case C2SPlaceBomb, C2SPlaceBlock:
		return nil
	case C2SMove:
		return w.WriteU8(uint8(m.Move))
	default:
		return newCodecError(ErrUnknownTag, "unknown client-to-server tag %d", m.Tag)
	}
}

// DecodeClientToServer reads a ClientToServer message from r.
func DecodeClientToServer(r *ReadBuffer) (ClientToServer, error) {
	tag, err := r.ReadU8()
	if err != nil {
		return ClientToServer{}, err
	}
	if tag > uint8(maxC2STag) {
		return ClientToServer{}, newCodecError(ErrUnknownTag, "client-to-server tag %d out of range", tag)
	}
	switch ClientToServerTag(tag) {
	case C2SJoin:
		name, err := r.ReadString()
		if err != nil {
			return ClientToServer{}, err
		}
		return NewJoin(name), nil
	case C2SPlaceBomb:
		return NewPlaceBomb(), nil
	case C2SPlaceBlock:
		return NewPlaceBlock(), nil
	case C2SMove:
		dir, err := decodeDirection(r)
		if err != nil {
			return ClientToServer{}, err
		}
		return NewMove(dir), nil
	}
	return ClientToServer{}, newCodecError(ErrUnknownTag, "unreachable client-to-server tag %d", tag)
}
