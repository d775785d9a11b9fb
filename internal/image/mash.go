package image

import (
	"context"
	"errors"
	"image"
)

// Size bounds accepted by the emojik API, inclusive.
const (
	MinSize = 16
	MaxSize = 512
)

var (
	ErrSizeOutOfRange = errors.New("size out of range")
	ErrBadURL         = errors.New("could not build mashup url")
	ErrNetwork        = errors.New("mashup request failed")
	ErrImageDecode    = errors.New("response body is not a decodable image")
)

// Params identifies one mashup. Left and Right are whole emoji sequences,
// not single code points; multi-code-point emoji (flags, ZWJ sequences)
// pass through intact.
type Params struct {
	Left  string `json:"left"`
	Right string `json:"right"`
	Size  int    `json:"size"`
}

// Result holds the decoded mashup and the raw bytes it was decoded from.
// The raw bytes are what gets uploaded; the decode proves they are an image.
type Result struct {
	Image image.Image
	Data  []byte
}

type Masher interface {
	Mash(context.Context, Params) (*Result, error)
}
