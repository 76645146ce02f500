package detector

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
)

// ErrFrameTooLarge is returned when an encoded frame does not fit the 4-byte
// length prefix.
var ErrFrameTooLarge = errors.New("frame too large")

// writeFrame sends one encoded image: a 4-byte big-endian length followed by
// the bytes themselves.
func writeFrame(w io.Writer, data []byte) error {
	if uint64(len(data)) > math.MaxUint32 {
		return ErrFrameTooLarge
	}

	var header [4]byte
	binary.BigEndian.PutUint32(header[:], uint32(len(data)))
	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("write length: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write data: %w", err)
	}
	return nil
}

// reply is the one-line JSON answer the service gives for each frame.
type reply struct {
	Hands []jsonHand `json:"hands"`
	Error string     `json:"error,omitempty"`
}

// readReply reads and decodes the answer to one frame.
func readReply(r *bufio.Reader) ([]HandLandmarks, error) {
	line, err := r.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var resp reply
	if err := json.Unmarshal(line, &resp); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("service: %s", resp.Error)
	}

	hands := make([]HandLandmarks, len(resp.Hands))
	for i, h := range resp.Hands {
		hands[i] = h.landmarks()
	}
	return hands, nil
}

type jsonHand struct {
	Points     []jsonPoint `json:"points"`
	Handedness string      `json:"handedness"`
	Score      float64     `json:"score"`
}

type jsonPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// landmarks converts a decoded hand. Missing points stay at the origin and
// extra points are ignored.
func (h jsonHand) landmarks() HandLandmarks {
	lm := HandLandmarks{
		Handedness: h.Handedness,
		Score:      h.Score,
	}
	for i := 0; i < NumLandmarks && i < len(h.Points); i++ {
		p := h.Points[i]
		lm.Points[i] = Point3D{X: p.X, Y: p.Y, Z: p.Z}
	}
	return lm
}
