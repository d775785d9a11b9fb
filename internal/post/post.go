package post

import "context"

type Params struct {
	Date  string
	Left  string
	Right string
}

type Poster interface {
	Post(context.Context, Params) error
}
