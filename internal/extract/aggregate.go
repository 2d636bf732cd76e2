package extract

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"
)

const maxParallelExtractions = 4

// Role extracts every file of one document role and concatenates the results
// into a single labeled stream. Each block is framed with a start marker so
// the oracle can attribute content back to a specific sub-file. Output order
// always follows input order, whatever order the extractions finish in.
func (e *Extractor) Role(ctx context.Context, paths []string, labelBase string) (string, error) {
	clean := make([]string, 0, len(paths))
	for _, p := range paths {
		if strings.TrimSpace(p) != "" {
			clean = append(clean, p)
		}
	}
	if len(clean) == 0 {
		return "", nil
	}

	texts := make([]string, len(clean))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelExtractions)
	for i, path := range clean {
		g.Go(func() error {
			label := fmt.Sprintf("%s_%d", labelBase, i+1)
			text, err := e.File(path, label)
			if err != nil {
				return err
			}
			texts[i] = text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}

	var out strings.Builder
	for i, text := range texts {
		fmt.Fprintf(&out, "\n\n===== INÍCIO %s_%d =====\n\n%s", labelBase, i+1, text)
	}
	return strings.TrimSpace(out.String()), nil
}
