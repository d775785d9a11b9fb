package image

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/disintegration/imaging"
	"github.com/samber/do"
	"github.com/zcutlerf/emojimash/internal/log"
)

const emojikHost = "emojik.vercel.app"

type EmojikMasher struct {
	Client *http.Client
	Host   string
}

func NewEmojikMasher(i *do.Injector) (Masher, error) {
	return &EmojikMasher{
		Client: do.MustInvoke[*http.Client](i),
		Host:   emojikHost,
	}, nil
}

// mashURL builds the endpoint URL for a pair. net/url percent-encodes the
// emoji bytes in the path segment.
func mashURL(host string, params Params) (string, error) {
	if params.Left == "" || params.Right == "" {
		return "", fmt.Errorf("%w: empty emoji component", ErrBadURL)
	}
	u := url.URL{
		Scheme:   "https",
		Host:     host,
		Path:     "/s/" + params.Left + "_" + params.Right,
		RawQuery: url.Values{"size": {strconv.Itoa(params.Size)}}.Encode(),
	}
	return u.String(), nil
}

func (m *EmojikMasher) Mash(ctx context.Context, params Params) (*Result, error) {
	log := log.FromContextOrDiscard(ctx).WithGroup("emojik").With("params", params)

	if params.Size < MinSize || params.Size > MaxSize {
		return nil, fmt.Errorf("%w: %d not in [%d, %d]", ErrSizeOutOfRange, params.Size, MinSize, MaxSize)
	}

	u, err := mashURL(m.Host, params)
	if err != nil {
		return nil, err
	}
	log.Info("fetching mashup", "url", u)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadURL, err)
	}

	resp, err := m.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	log.Info("received mashup", "bytes", len(data))

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageDecode, err)
	}
	return &Result{Image: img, Data: data}, nil
}
