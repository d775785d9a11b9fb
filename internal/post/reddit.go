package post

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/samber/do"
	"github.com/samber/lo"
	"github.com/vartanbeno/go-reddit/v2/reddit"
	"github.com/zcutlerf/emojimash/internal/log"
)

type RedditPoster struct {
	client    *reddit.Client
	subreddit string
}

// revision tolerates binaries built without module info, where
// debug.ReadBuildInfo reports nothing.
func revision(info *debug.BuildInfo, ok bool) string {
	if !ok || info == nil {
		return "unknown"
	}
	setting := lo.FindOrElse(info.Settings, debug.BuildSetting{Value: "unknown"}, func(s debug.BuildSetting) bool {
		return s.Key == "vcs.revision"
	})
	return setting.Value
}

func NewRedditPoster(i *do.Injector) (Poster, error) {
	id := do.MustInvokeNamed[string](i, "reddit_client_id")
	secret := do.MustInvokeNamed[string](i, "reddit_client_secret")
	username := do.MustInvokeNamed[string](i, "reddit_username")
	password := do.MustInvokeNamed[string](i, "reddit_password")
	subreddit := do.MustInvokeNamed[string](i, "subreddit")

	info, ok := debug.ReadBuildInfo()
	client, err := reddit.NewClient(
		reddit.Credentials{ID: id, Secret: secret, Username: username, Password: password},
		reddit.WithUserAgent("web:emojimash:"+revision(info, ok)),
	)
	if err != nil {
		return nil, err
	}

	return &RedditPoster{client, subreddit}, nil
}

func (p *RedditPoster) Post(ctx context.Context, params Params) error {
	log.FromContextOrDiscard(ctx).Info("posting to reddit", "subreddit", p.subreddit)
	_, _, err := p.client.Post.SubmitLink(ctx, reddit.SubmitLinkRequest{
		Subreddit:   p.subreddit,
		Title:       fmt.Sprintf("%s - %s + %s", params.Date, params.Left, params.Right),
		URL:         fmt.Sprintf("https://emojimash.io/%s.html", params.Date),
		SendReplies: lo.ToPtr(false),
	})
	return err
}
