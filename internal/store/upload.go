package store

import (
	"context"
	"os"

	"github.com/zcutlerf/emojimash/internal/log"
)

type UploadParams struct {
	Name        string
	Data        []byte
	ContentType string
	Metadata    map[string]string
}

type Uploader interface {
	Upload(context.Context, UploadParams) error
}

// FileUploader writes mashups to the working directory for local runs.
type FileUploader struct{}

func (*FileUploader) Upload(ctx context.Context, params UploadParams) error {
	log := log.FromContextOrDiscard(ctx).WithGroup("file")
	log.Info("writing", "file", params.Name)
	return os.WriteFile(params.Name, params.Data, 0600)
}
