package feed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/gorilla/feeds"
	"github.com/samber/do"
	"github.com/samber/lo"
	"github.com/zcutlerf/emojimash/internal/log"
	"golang.org/x/sync/errgroup"
)

type Generator interface {
	Generate(context.Context) ([]byte, error)
}

type S3Generator struct {
	client *s3.Client
	bucket string
}

func NewS3Generator(i *do.Injector) (Generator, error) {
	client := do.MustInvoke[*s3.Client](i)
	bucket := do.MustInvokeNamed[string](i, "bucket")
	return &S3Generator{client, bucket}, nil
}

func (g *S3Generator) Generate(ctx context.Context) ([]byte, error) {
	log := log.FromContextOrDiscard(ctx).WithGroup("feed")
	log.Info("generating rss feed")

	feed := feeds.Feed{
		Title:       "EmojiMash",
		Description: "Daily Emoji Mashups",
		Link:        &feeds.Link{Href: "https://emojimash.io"},
		Updated:     time.Now(),
	}

	pager := s3.NewListObjectsV2Paginator(g.client, &s3.ListObjectsV2Input{
		Bucket: &g.bucket,
	})

	items := make(chan *feeds.Item)
	done := make(chan struct{})

	go func(items <-chan *feeds.Item) {
		for i := range items {
			feed.Add(i)
		}
		close(done)
	}(items)

	group, gctx := errgroup.WithContext(ctx)
	var pageErr error
	for pager.HasMorePages() {
		page, err := pager.NextPage(gctx)
		if err != nil {
			pageErr = err
			break
		}

		objs := lo.Filter(page.Contents, func(o s3types.Object, _ int) bool {
			return strings.HasSuffix(*o.Key, ".png") && !strings.HasPrefix(*o.Key, "latest")
		})

		for _, obj := range objs {
			obj := obj
			group.Go(func() error {
				out, err := g.client.HeadObject(gctx, &s3.HeadObjectInput{
					Bucket: &g.bucket,
					Key:    obj.Key,
				})
				if err != nil {
					return err
				}

				meta := out.Metadata
				items <- &feeds.Item{
					Title:   fmt.Sprintf("%s + %s @ %s", meta["left"], meta["right"], meta["size"]),
					Link:    &feeds.Link{Href: fmt.Sprintf("https://emojimash.io/%s.html", meta["date"])},
					Updated: *out.LastModified,
				}
				return nil
			})
		}
	}

	// The collector owns feed.Items until the channel drains; wait for it
	// before reading the feed back.
	groupErr := group.Wait()
	close(items)
	<-done

	if pageErr != nil {
		return nil, pageErr
	}
	if groupErr != nil {
		return nil, groupErr
	}

	feed.Sort(func(a, b *feeds.Item) bool {
		return a.Updated.Before(b.Updated)
	})
	rss, err := feed.ToRss()
	return []byte(rss), err
}
