package proactiva

type Database interface {
	Close() error
	Migrate() error
}
