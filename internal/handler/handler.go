package handler

import (
	"context"
	"strconv"
	"time"

	"github.com/samber/do"
	"github.com/samber/lo"
	"github.com/zcutlerf/emojimash/internal/emoji"
	"github.com/zcutlerf/emojimash/internal/feed"
	"github.com/zcutlerf/emojimash/internal/image"
	"github.com/zcutlerf/emojimash/internal/log"
	"github.com/zcutlerf/emojimash/internal/page"
	"github.com/zcutlerf/emojimash/internal/post"
	"github.com/zcutlerf/emojimash/internal/store"
)

const defaultSize = 256

type Input struct {
	Date  string `json:"date,omitempty"`
	Left  string `json:"left,omitempty"`
	Right string `json:"right,omitempty"`
	Size  int    `json:"size,omitempty"`
}

func (i Input) toMashParams() image.Params {
	return image.Params{
		Left:  i.Left,
		Right: i.Right,
		Size:  i.Size,
	}
}

func (i Input) toPageParams() page.Params {
	return page.Params{
		Image: i.Date + ".png",
		Left:  i.Left,
		Right: i.Right,
		Size:  strconv.Itoa(i.Size),
	}
}

func (i Input) toMetadata() map[string]string {
	return map[string]string{
		"date":  i.Date,
		"left":  i.Left,
		"right": i.Right,
		"size":  strconv.Itoa(i.Size),
	}
}

type Output Input

type Handler struct {
	randomizer  *emoji.Randomizer
	masher      image.Masher
	uploader    store.Uploader
	invalidator store.Invalidator
	templator   *page.Templator
	feeder      feed.Generator
	poster      post.Poster
}

func NewHandler(i *do.Injector) (*Handler, error) {
	return &Handler{
		randomizer:  do.MustInvoke[*emoji.Randomizer](i),
		masher:      do.MustInvoke[image.Masher](i),
		uploader:    do.MustInvoke[store.Uploader](i),
		invalidator: do.MustInvoke[store.Invalidator](i),
		templator:   do.MustInvoke[*page.Templator](i),
		feeder:      do.MustInvoke[feed.Generator](i),
		poster:      do.MustInvoke[post.Poster](i),
	}, nil
}

func (h *Handler) Handle(ctx context.Context, input Input) (Output, error) {
	log := log.FromContextOrDiscard(ctx).WithGroup("Handler").With("input", input)
	log.Info("handling lambda invocation")

	if input.Left == "" || input.Right == "" {
		left, right, err := h.randomizer.Randomize(ctx)
		if err != nil {
			return Output{}, err
		}
		input.Left = lo.Ternary(input.Left != "", input.Left, left)
		input.Right = lo.Ternary(input.Right != "", input.Right, right)
	}

	if input.Size == 0 {
		input.Size = defaultSize
	}

	latest := false
	if input.Date == "" {
		input.Date = time.Now().UTC().Format("20060102")
		latest = true
	}

	result, err := h.masher.Mash(ctx, input.toMashParams())
	if err != nil {
		return Output{}, err
	}

	html, err := h.templator.Template(ctx, input.toPageParams())
	if err != nil {
		return Output{}, err
	}

	metadata := input.toMetadata()
	uploads := []store.UploadParams{
		{
			Name:        input.Date + ".png",
			Data:        result.Data,
			ContentType: "image/png",
			Metadata:    metadata,
		},
		{
			Name:        input.Date + ".html",
			Data:        html,
			ContentType: "text/html",
			Metadata:    metadata,
		},
	}
	if latest {
		uploads = append(uploads,
			store.UploadParams{
				Name:        "latest.png",
				Data:        result.Data,
				ContentType: "image/png",
				Metadata:    metadata,
			},
			store.UploadParams{
				Name:        "latest.html",
				Data:        html,
				ContentType: "text/html",
				Metadata:    metadata,
			},
		)
	}
	for _, u := range uploads {
		if err := h.uploader.Upload(ctx, u); err != nil {
			return Output{}, err
		}
	}

	// The feed lists what is in the bucket, so it has to regenerate after
	// the dated artifacts land.
	rss, err := h.feeder.Generate(ctx)
	if err != nil {
		return Output{}, err
	}
	if err := h.uploader.Upload(ctx, store.UploadParams{
		Name:        "feed.xml",
		Data:        rss,
		ContentType: "application/rss+xml",
	}); err != nil {
		return Output{}, err
	}

	paths := []string{"/" + input.Date + ".png", "/" + input.Date + ".html", "/feed.xml"}
	if latest {
		paths = append(paths, "/latest.png", "/latest.html")
	}
	if err := h.invalidator.Invalidate(ctx, paths); err != nil {
		return Output{}, err
	}

	if latest {
		if err := h.poster.Post(ctx, post.Params{
			Date:  input.Date,
			Left:  input.Left,
			Right: input.Right,
		}); err != nil {
			return Output{}, err
		}
	}

	return Output(input), nil
}
