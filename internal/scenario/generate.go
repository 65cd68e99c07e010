package scenario

// Generate builds and resolves one scenario. It is the single entry point
// for renderers, templaters and writers: identical configs, seed included,
// produce identical results.
func Generate(cfg Config) (*Result, error) {
	sc, err := Build(cfg)
	if err != nil {
		return nil, err
	}
	return Resolve(sc)
}
