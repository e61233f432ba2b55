package event

const (
	// defaultEnabled publishes apply outcomes on the in-process bus.
	defaultEnabled = true

	// defaultTopicPrefix namespaces every topic published by the processor.
	defaultTopicPrefix = "smart"

	defaultHistorySize = 100
)
