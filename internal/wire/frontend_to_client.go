package wire

// FrontendToClientTag identifies a message sent from the rendering
// frontend to the proxy client over UDP.
type FrontendToClientTag uint8

const (
	F2CPlaceBomb FrontendToClientTag = iota
	F2CPlaceBlock
	F2CMove
	maxF2CTag = F2CMove
)

// FrontendToClient is one frontend-originated input.
type FrontendToClient struct {
	Tag  FrontendToClientTag
	Move Direction // F2CMove only
}

// NewFrontendPlaceBomb builds a PlaceBomb frontend message.
func NewFrontendPlaceBomb() FrontendToClient {
	return FrontendToClient{Tag: F2CPlaceBomb}
}

// NewFrontendPlaceBlock builds a PlaceBlock frontend message.
func NewFrontendPlaceBlock() FrontendToClient {
	return FrontendToClient{Tag: F2CPlaceBlock}
}

// NewFrontendMove builds a Move frontend message.
func NewFrontendMove(dir Direction) FrontendToClient {
	return FrontendToClient{Tag: F2CMove, Move: dir}
}

// EncodeFrontendToClient writes m into w.
func EncodeFrontendToClient(w *WriteBuffer, m FrontendToClient) error {
	if err := w.WriteU8(uint8(m.Tag)); err != nil {
		return err
	}
	switch m.Tag {
	case F2CPlaceBomb, F2CPlaceBlock:
		return nil
	case F2CMove:
		return w.WriteU8(uint8(m.Move))
	default:
		return newCodecError(ErrUnknownTag, "unknown frontend-to-client tag %d", m.Tag)
	}
}

// DecodeFrontendToClient reads a FrontendToClient message from r.
func DecodeFrontendToClient(r *ReadBuffer) (FrontendToClient, error) {
	tag, err := r.ReadU8()
	if err != nil {
		return FrontendToClient{}, err
	}
	if tag > uint8(maxF2CTag) {
		return FrontendToClient{}, newCodecError(ErrUnknownTag, "frontend-to-client tag %d out of range", tag)
	}
	switch FrontendToClientTag(tag) {
	case F2CPlaceBomb:
		return NewFrontendPlaceBomb(), nil
	case F2CPlaceBlock:
		return NewFrontendPlaceBlock(), nil
	case F2CMove:
		dir, err := decodeDirection(r)
		if err != nil {
			return FrontendToClient{}, err
		}
		return NewFrontendMove(dir), nil
	}
	return FrontendToClient{}, newCodecError(ErrUnknownTag, "unreachable frontend-to-client tag %d", tag)
}
