package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// stubS3 answers the two calls Generate makes: a ListObjectsV2 page and one
// HeadObject per png key.
type stubS3 struct {
	keys []string
}

func (s *stubS3) Do(req *http.Request) (*http.Response, error) {
	if req.Method == http.MethodHead {
		return s.head(req)
	}
	return s.list()
}

func (s *stubS3) list() (*http.Response, error) {
	var contents strings.Builder
	for _, key := range s.keys {
		fmt.Fprintf(&contents, "<Contents><Key>%s</Key></Contents>", key)
	}
	body := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<ListBucketResult xmlns="http://s3.amazonaws.com/doc/2006-03-01/">
<Name>mashups</Name><KeyCount>%d</KeyCount><IsTruncated>false</IsTruncated>%s
</ListBucketResult>`, len(s.keys), contents.String())

	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": []string{"application/xml"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}, nil
}

func (s *stubS3) head(req *http.Request) (*http.Response, error) {
	key := req.URL.Path[strings.LastIndex(req.URL.Path, "/")+1:]
	date := strings.TrimSuffix(key, ".png")

	// Last-Modified tracks the dated key so sort order is observable.
	modified, err := time.Parse("20060102", date)
	if err != nil {
		return nil, fmt.Errorf("unexpected head key %q: %v", key, err)
	}

	header := http.Header{}
	header.Set("Last-Modified", modified.UTC().Format(http.TimeFormat))
	header.Set("Content-Length", "0")
	header.Set("x-amz-meta-date", date)
	header.Set("x-amz-meta-left", "🥹")
	header.Set("x-amz-meta-right", "😗")
	header.Set("x-amz-meta-size", "256")

	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     header,
		Body:       io.NopCloser(strings.NewReader("")),
	}, nil
}

func newStubGenerator(keys []string) *S3Generator {
	client := s3.New(s3.Options{
		Region:       "us-east-1",
		Credentials:  aws.AnonymousCredentials{},
		HTTPClient:   &stubS3{keys: keys},
		UsePathStyle: true,
	})
	return &S3Generator{client: client, bucket: "mashups"}
}

func TestGenerate_AllItemsPresentAndSorted(t *testing.T) {
	// Deliberately unsorted, with keys the feed must skip.
	g := newStubGenerator([]string{
		"20240105.png",
		"20240101.png",
		"latest.png",
		"20240103.png",
		"20240101.html",
		"20240102.png",
		"20240104.png",
		"20240107.png",
		"20240106.png",
		"20240108.png",
	})

	rss, err := g.Generate(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := string(rss)

	if strings.Contains(out, "latest") {
		t.Fatal("feed includes the latest alias")
	}
	if !strings.Contains(out, "🥹 + 😗 @ 256") {
		t.Fatal("feed missing mashup title")
	}

	// Every dated mashup must appear, oldest first. The last finisher used
	// to be droppable when the feed was read before the collector drained.
	prev := -1
	for day := 1; day <= 8; day++ {
		link := fmt.Sprintf("https://emojimash.io/2024010%d.html", day)
		idx := strings.Index(out, link)
		if idx < 0 {
			t.Fatalf("feed missing item %s:\n%s", link, out)
		}
		if idx < prev {
			t.Fatalf("item %s out of order", link)
		}
		prev = idx
	}
}

func TestGenerate_EmptyBucket(t *testing.T) {
	g := newStubGenerator(nil)

	rss, err := g.Generate(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(rss), "<title>EmojiMash</title>") {
		t.Fatalf("unexpected feed: %s", rss)
	}
}
