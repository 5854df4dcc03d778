package render

import (
	"fmt"
	"io"
	"time"

	"intelvest/internal/domain"
)

// Renderer is the narrow contract chart collaborators implement. The core
// hands a container id and a series over this boundary and never reaches
// into the rendering surface itself.
type Renderer interface {
	Render(container string, series []domain.PredictionPoint) error
	Teardown(container string) error
}

// TextRenderer writes series as plain text. It backs the CLI and stands in
// for the embeddable chart widgets the web frontend uses.
type TextRenderer struct {
	Out io.Writer
}

func (r TextRenderer) Render(container string, series []domain.PredictionPoint) error {
	if _, err := fmt.Fprintf(r.Out, "[%s]\n", container); err != nil {
		return err
	}
	for _, point := range series {
		_, err := fmt.Fprintf(
			r.Out,
			"%s  %s  (conf %.2f)\n",
			point.Date.Format(time.DateOnly),
			point.Pred.StringFixed(2),
			point.Conf,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r TextRenderer) Teardown(container string) error {
	_, err := fmt.Fprintf(r.Out, "[%s cleared]\n", container)
	return err
}
