package encode

import "github.com/signadot/wrl2/format"

type EncodeOption func(*EncState)

func EncodeFormat(f format.Format) EncodeOption {
	return func(es *EncState) { es.format = f }
}

// FormatFromOpts extracts the format from encode options.
func FormatFromOpts(opts ...EncodeOption) format.Format {
	es := &EncState{}
	for _, opt := range opts {
		opt(es)
	}
	return es.format
}

// MaxDepth stops tree output below depth n.  Zero means no limit.
func MaxDepth(n int) EncodeOption {
	return func(es *EncState) { es.maxDepth = n }
}

// EncodeFields includes scalar field values in tree output.  Other
// formats always include them.
func EncodeFields(v bool) EncodeOption {
	return func(es *EncState) { es.fields = v }
}

func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) { es.Color = c.Color }
}

func Indent(n int) EncodeOption {
	return func(es *EncState) { es.indent = n }
}
