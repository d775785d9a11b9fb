package page

import (
	"bytes"
	"context"
	_ "embed"
	"html/template"
	"sync"

	"github.com/samber/do"
	"github.com/zcutlerf/emojimash/internal/log"
)

//go:embed assets/mashup.html
var mashupTmpl string

type Params struct {
	Image string
	Left  string
	Right string
	Size  string
}

type Templator struct {
	tmpl *template.Template
	once sync.Once
}

func NewTemplator(i *do.Injector) (*Templator, error) {
	return &Templator{}, nil
}

func (g *Templator) Template(ctx context.Context, params Params) ([]byte, error) {
	g.once.Do(func() {
		g.tmpl = template.Must(template.New("mashup").Parse(mashupTmpl))
	})

	log := log.FromContextOrDiscard(ctx).WithGroup("templator")
	log.Info("generating page", "image", params.Image)

	var data bytes.Buffer
	if err := g.tmpl.Execute(&data, params); err != nil {
		return nil, err
	}
	return data.Bytes(), nil
}
