package config

// DB holds the database configuration settings.
// Driver selects the gorm dialect: mysql, postgres or sqlite.
// Path is only used by the sqlite driver.
type DB struct {
	Driver   string
	Extras   string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	Path     string
}
