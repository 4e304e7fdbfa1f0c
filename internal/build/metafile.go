package build

// Metafile mirrors the esbuild metafile JSON shape so existing bundle
// analysis tooling can read our output reports.
type Metafile struct {
	Inputs  map[string]MetafileInput  `json:"inputs"`
	Outputs map[string]MetafileOutput `json:"outputs"`
}

type MetafileInput struct {
	Bytes int `json:"bytes"`
}

type MetafileOutput struct {
	Bytes      int                     `json:"bytes"`
	Inputs     map[string]InputContrib `json:"inputs"`
	EntryPoint string                  `json:"entryPoint,omitempty"`
}

type InputContrib struct {
	BytesInOutput int `json:"bytesInOutput"`
}

func newMetafile() *Metafile {
	return &Metafile{
		Inputs:  make(map[string]MetafileInput),
		Outputs: make(map[string]MetafileOutput),
	}
}

func (m *Metafile) record(input string, inputBytes int, output string, outputBytes int, entry bool) {
	m.Inputs[input] = MetafileInput{Bytes: inputBytes}

	out, ok := m.Outputs[output]
	if !ok {
		out = MetafileOutput{Inputs: make(map[string]InputContrib)}
	}
	out.Bytes = outputBytes
	out.Inputs[input] = InputContrib{BytesInOutput: inputBytes}
	if entry {
		out.EntryPoint = input
	}
	m.Outputs[output] = out
}
