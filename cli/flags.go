package cli

const (
	FlagHome      = "home"
	FlagFormat    = "format"
	FlagAlgorithm = "algorithm"
	FlagOutput    = "output"
	FlagEncoding  = "encoding"
	FlagWorkers   = "workers"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)
