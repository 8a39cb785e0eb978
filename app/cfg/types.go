package cfg

type Cfg struct {
	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Application configuration
	SourcesFile    string
	Port           string
	APIAccessKey   string
	FetchPerSource int
	StaleAfter     int

	// Classification service
	HFToken    string
	HFEndpoint string

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
