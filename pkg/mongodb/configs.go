package mongodb

import "time"

type Config struct {
	Connection        Connection
	ConnectionDetails ConnectionDetails
}

type Connection struct {
	Host     string
	Port     string
	User     string
	Password string

	// AuthSource is the database used to verify credentials.
	// Defaults to "admin" when credentials are set.
	AuthSource string
}

type ConnectionDetails struct {
	MaxPoolSize    uint64
	MinPoolSize    uint64
	ConnectTimeout time.Duration

	// ServerSelectionTimeout bounds how long the driver waits for a
	// suitable server before a blocking operation fails.
	ServerSelectionTimeout time.Duration
}
