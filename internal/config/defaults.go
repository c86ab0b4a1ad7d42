package config

// Default values for optional configuration keys.
const (
	DefaultLogLevel      = "info"
	DefaultBotPrefix     = "@"
	DefaultStoreBackend  = BackendFile
	DefaultStoreRoot     = "data"
	DefaultStoreFormat   = "json"
	DefaultDatabasePath  = "data/atbot.db"
	DefaultRedisPrefix   = "atbot:"
	DefaultS3Prefix      = "atbot/"
	DefaultS3Region      = "us-east-1"
	MaintenanceTaskName  = "store_maintenance"
	DefaultMaintenanceAt = "0 30 4 * * *" // daily at 04:30:00
)

var defaults = map[string]any{
	"log.level": DefaultLogLevel,
	"log.json":  false,

	"bot.nick":   "",
	"bot.prefix": DefaultBotPrefix,

	"store.backend": DefaultStoreBackend,
	"store.root":    DefaultStoreRoot,
	"store.format":  DefaultStoreFormat,

	"database.path": DefaultDatabasePath,

	"redis.addr":     "",
	"redis.password": "",
	"redis.db":       0,
	"redis.prefix":   DefaultRedisPrefix,

	"s3.bucket":     "",
	"s3.region":     DefaultS3Region,
	"s3.endpoint":   "",
	"s3.path_style": false,
	"s3.prefix":     DefaultS3Prefix,

	"telegram.enabled": false,
	"telegram.token":   "",

	"discord.enabled": false,
	"discord.token":   "",

	"metrics.addr": "",

	"scheduler.tasks." + MaintenanceTaskName + ".enabled":  true,
	"scheduler.tasks." + MaintenanceTaskName + ".schedule": DefaultMaintenanceAt,
}
