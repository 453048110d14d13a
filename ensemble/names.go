package ensemble

import (
	"fmt"

	"github.com/morinlab/ensemble-caller/encoding/vcf"
)

// Names returns a display name for each reader: the ##source meta value
// when declared and non-empty, else a positional "method_<i>" fallback
// (1-based).
func Names(readers []*vcf.Reader) []string {
	names := make([]string, len(readers))
	for i, r := range readers {
		name := r.Meta().Source()
		if name == "" {
			name = fmt.Sprintf("method_%d", i+1)
		}
		names[i] = name
	}
	return names
}
