package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/samber/do"
	"github.com/zcutlerf/emojimash/internal/handler"
	"github.com/zcutlerf/emojimash/internal/inject"
	"github.com/zcutlerf/emojimash/internal/log"
)

func main() {
	ctx := log.NewContext(context.Background(), log.New(os.Stderr))
	injector := inject.Setup(ctx)
	handler := do.MustInvoke[*handler.Handler](injector)
	lambda.StartWithOptions(handler.Handle, lambda.WithContext(ctx), lambda.WithEnableSIGTERM(func() {
		_ = injector.Shutdown()
	}))
}
