package metrics

const (
	defaultEnabled   = true
	defaultNamespace = "smart"
)
