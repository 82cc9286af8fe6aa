package mongo

import (
	"net"
	"strconv"
	"time"
)

const (
	// DefaultHost is used when Config.Host is empty.
	DefaultHost = "localhost"
	// DefaultPort is the standard MongoDB port, used when Config.Port is zero.
	DefaultPort = 27017
)

// Config represents the configuration for the database connection.
type Config struct {
	Host            string        `env:"MONGODB_HOST" envDefault:"localhost"`          // Host is the MongoDB server host name.
	Port            int           `env:"MONGODB_PORT" envDefault:"27017"`              // Port is the MongoDB server port.
	Database        string        `env:"MONGODB_DATABASE"`                             // Database is the name of the database. There is no default.
	Username        string        `env:"MONGODB_USERNAME"`                             // Username enables authentication when set.
	Password        string        `env:"MONGODB_PASSWORD"`                             // Password is used together with Username.
	ConnectTimeout  time.Duration `env:"MONGODB_CONNECT_TIMEOUT" envDefault:"10s"`     // ConnectTimeout is the timeout for connecting to the database.
	MaxPoolSize     uint64        `env:"MONGODB_MAX_POOL_SIZE" envDefault:"100"`       // MaxPoolSize is the maximum number of connections in the connection pool.
	MinPoolSize     uint64        `env:"MONGODB_MIN_POOL_SIZE" envDefault:"1"`         // MinPoolSize is the minimum number of connections in the connection pool.
	MaxConnIdleTime time.Duration `env:"MONGODB_MAX_CONN_IDLE_TIME" envDefault:"300s"` // MaxConnIdleTime is the maximum time that a connection can remain idle in the pool.
	RetryWrites     bool          `env:"MONGODB_RETRY_WRITES" envDefault:"true"`       // RetryWrites lets the driver retry write operations once.
	RetryReads      bool          `env:"MONGODB_RETRY_READS" envDefault:"true"`        // RetryReads lets the driver retry read operations once.
	RetryAttempts   int           `env:"MONGODB_RETRY_ATTEMPTS" envDefault:"3"`        // RetryAttempts is the number of attempts to establish the initial connection.
	RetryInterval   time.Duration `env:"MONGODB_RETRY_INTERVAL" envDefault:"5s"`       // RetryInterval is the pause between connection attempts.
}

// URI builds the connection string from Host and Port, falling back to
// DefaultHost and DefaultPort for unset values.
func (c Config) URI() string {
	host := c.Host
	if host == "" {
		host = DefaultHost
	}
	port := c.Port
	if port == 0 {
		port = DefaultPort
	}
	return "mongodb://" + net.JoinHostPort(host, strconv.Itoa(port))
}

// attempts never returns less than one so that a zero-valued Config still dials once.
func (c Config) attempts() int {
	if c.RetryAttempts < 1 {
		return 1
	}
	return c.RetryAttempts
}
