// Package container wires the service together with samber/do. Each
// XxxPackage function registers one concern's providers on the injector.
package container

// Options holds the service configuration, parsed by humacli.
type Options struct {
	Port           int    `default:"8888"            help:"Port to listen on"                                          short:"p"`
	RedisAddr      string `default:"localhost:6379"  help:"Redis server address"                                       short:"r"`
	Backend        string `default:"memory"          help:"State backend for cache and rate limiting: memory or redis"`
	PostgresDSN    string `default:""                help:"PostgreSQL DSN for the analytics consumer; empty logs events instead"`
	LibraryDataset string `default:"library_list.xlsx" help:"Path to the library reference dataset"`
	SearchURL      string `default:"https://www.aladin.co.kr/ttb/api/ItemSearch.aspx" help:"Book search provider endpoint"`
	SearchKey      string `default:""                help:"Book search provider key"`
	CheckURL       string `default:"http://data4library.kr/api/bookExist" help:"Availability provider endpoint"`
	CheckKey       string `default:""                help:"Availability provider auth key"`
	RateLimit      int64  `default:"10"              help:"Calls allowed per client per window"`
	RateWindowSecs int    `default:"60"              help:"Rate limit window in seconds"`
	LogFormat      string `default:"console"         help:"Log format: console or json"`
}

// BackendRedis selects the Redis-backed cache and rate limit stores.
const BackendRedis = "redis"
