package cfg

type Cfg struct {
	// Application configuration
	Port          string
	BaseUrl       string
	EnrichWorkers int
	FetchTimeout  int

	// Application metadata
	UserAgent string
	Debug     bool
	Version   string
}
